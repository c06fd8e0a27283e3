package runner

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"HaliteBot/internal/match/domain"
)

// Outcome 是一局对局进程的结果。Seat 为胜者座次（1 或 2），0 表示没有解析出胜者。
type Outcome struct {
	Seat   int
	Winner string
	Lines  []string
}

// Halite 调用 halite 环境程序跑一局：halite -q -t -s <seed> -d "<w> <h>" <bot1> <bot2>。
type Halite struct {
	Bin string
	// 测试注入，默认 exec.CommandContext
	command func(ctx context.Context, name string, args ...string) *exec.Cmd
}

func NewHalite(bin string) *Halite {
	if bin == "" {
		bin = "halite"
	}
	return &Halite{Bin: bin, command: exec.CommandContext}
}

func Args(g domain.Game) []string {
	return []string{
		"-q", "-t",
		"-s", strconv.Itoa(g.Seed),
		"-d", strconv.Itoa(g.Width) + " " + strconv.Itoa(g.Height),
		g.Seat1, g.Seat2,
	}
}

// CommandLine 是写入日志的等价命令行。
func CommandLine(bin string, g domain.Game) string {
	return bin + " -q -t -s " + strconv.Itoa(g.Seed) +
		` -d "` + strconv.Itoa(g.Width) + " " + strconv.Itoa(g.Height) + `" ` +
		g.Seat1 + " " + g.Seat2
}

func (h *Halite) Run(ctx context.Context, g domain.Game) (Outcome, error) {
	cmd := h.command(ctx, h.Bin, Args(g)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return Outcome{}, domain.ErrRunnerFailed.WithCause(err).WithDataMap(map[string]any{
			"game":   g.Number,
			"cmd":    CommandLine(h.Bin, g),
			"stderr": strings.TrimSpace(stderr.String()),
		})
	}
	o := ParseOutcome(out)
	switch o.Seat {
	case 1:
		o.Winner = g.Seat1
	case 2:
		o.Winner = g.Seat2
	}
	return o, nil
}

// ParseOutcome 找 "1 1" / "2 1" 两种排名行：第一名的座次即胜者，以最后出现的为准。
func ParseOutcome(out []byte) Outcome {
	var o Outcome
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		o.Lines = append(o.Lines, line)
		switch line {
		case "1 1":
			o.Seat = 1
		case "2 1":
			o.Seat = 2
		}
	}
	return o
}
