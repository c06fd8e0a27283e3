package stdio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"HaliteBot/internal/engine/grid"
	"HaliteBot/internal/shared/transport"
	"HaliteBot/modules/kit/errx"
)

func TestTransport_完整对局流程(t *testing.T) {
	in := strings.Join([]string{
		"1",
		"2 2",
		"3 4 5 6",
		"1 1 3 0 100 7 8 9",
		"2 1 2 0 90 80 8 9",
	}, "\n") + "\n"
	var out bytes.Buffer
	tr := New(strings.NewReader(in), &out, nil)
	ctx := context.Background()

	g, self, err := tr.ReceiveInitialState(ctx)
	if err != nil {
		t.Fatalf("ReceiveInitialState err=%v", err)
	}
	if self != 1 || g.Width() != 2 || g.Height() != 2 {
		t.Fatalf("初始状态错误 self=%d %dx%d", self, g.Width(), g.Height())
	}
	if c := g.At(0, 0); c.Owner != 1 || c.Strength != 100 || c.Production != 3 {
		t.Fatalf("(0,0) 解码错误: %v", c)
	}

	if err := tr.SendInit(ctx, "zbot"); err != nil {
		t.Fatalf("SendInit err=%v", err)
	}
	next, err := tr.ReceiveTurnUpdate(ctx, g)
	if err != nil {
		t.Fatalf("ReceiveTurnUpdate err=%v", err)
	}
	if c := next.At(1, 0); c.Owner != 1 || c.Strength != 80 || c.Production != 4 {
		t.Fatalf("(1,0) 解码错误: %v", c)
	}
	if err := tr.SendMoves(ctx, []grid.Move{{X: 0, Y: 0, Direction: grid.East}}); err != nil {
		t.Fatalf("SendMoves err=%v", err)
	}
	if out.String() != "zbot\n0 0 2\n" {
		t.Fatalf("输出不符: %q", out.String())
	}

	if _, err := tr.ReceiveTurnUpdate(ctx, next); !errors.Is(err, transport.ErrGameOver) {
		t.Fatalf("期望 EOF 视为对局结束, got=%v", err)
	}
}

func TestTransport_初始化协议错误(t *testing.T) {
	tr := New(strings.NewReader("1\nfoo bar\n"), io.Discard, nil)
	if _, _, err := tr.ReceiveInitialState(context.Background()); !errors.Is(err, errx.ErrProtocol) {
		t.Fatalf("期望 ErrProtocol, got=%v", err)
	}
}

func TestTransport_等待超时(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	tr := New(pr, io.Discard, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := tr.ReceiveTurnUpdate(ctx, NewGrid(1, 1, []int{1})); !errors.Is(err, errx.ErrTimeout) {
		t.Fatalf("期望 ErrTimeout, got=%v", err)
	}
}
