package stdio

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"HaliteBot/internal/engine/grid"
	"HaliteBot/internal/shared/transport"
	"HaliteBot/modules/kit/errx"
	"HaliteBot/modules/kit/logx"
)

type lineResult struct {
	line string
	err  error
}

// Transport 走标准输入输出与对局服务器通信，一行一条消息。
// 读取在独立 goroutine 上进行，ctx 取消时调用方立即返回。
type Transport struct {
	r   *bufio.Reader
	w   *bufio.Writer
	log logx.Logger

	once  sync.Once
	lines chan lineResult
}

var _ transport.Transport = (*Transport)(nil)

func New(r io.Reader, w io.Writer, l logx.Logger) *Transport {
	if l == nil {
		l = logx.Nop()
	}
	return &Transport{
		r:     bufio.NewReaderSize(r, 64*1024),
		w:     bufio.NewWriter(w),
		log:   l,
		lines: make(chan lineResult, 1),
	}
}

func (t *Transport) readLoop() {
	defer close(t.lines)
	for {
		line, err := t.r.ReadString('\n')
		if line != "" {
			t.lines <- lineResult{line: strings.TrimRight(line, "\r\n")}
		}
		if err != nil {
			t.lines <- lineResult{err: err}
			return
		}
	}
}

func (t *Transport) readLine(ctx context.Context, field string) (string, error) {
	t.once.Do(func() { go t.readLoop() })
	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", errx.ErrTimeout.WithData("field", field).WithCause(ctx.Err())
		}
		return "", ctx.Err()
	case res, ok := <-t.lines:
		if !ok || errors.Is(res.err, io.EOF) {
			return "", transport.ErrGameOver
		}
		if res.err != nil {
			return "", errx.ErrUnavailable.WithData("field", field).WithCause(res.err)
		}
		return res.line, nil
	}
}

func (t *Transport) writeLine(line string) error {
	if _, err := t.w.WriteString(line); err != nil {
		return errx.ErrUnavailable.WithCause(err)
	}
	if err := t.w.WriteByte('\n'); err != nil {
		return errx.ErrUnavailable.WithCause(err)
	}
	if err := t.w.Flush(); err != nil {
		return errx.ErrUnavailable.WithCause(err)
	}
	return nil
}

func (t *Transport) ReceiveInitialState(ctx context.Context) (*grid.Grid, grid.AgentID, error) {
	tagLine, err := t.readLine(ctx, "player_tag")
	if err != nil {
		return nil, 0, err
	}
	self, err := ParseTag(tagLine)
	if err != nil {
		return nil, 0, err
	}

	sizeLine, err := t.readLine(ctx, "size")
	if err != nil {
		return nil, 0, err
	}
	width, height, err := ParseSize(sizeLine)
	if err != nil {
		return nil, 0, err
	}

	prodLine, err := t.readLine(ctx, "productions")
	if err != nil {
		return nil, 0, err
	}
	productions, err := ParseProductions(prodLine, width, height)
	if err != nil {
		return nil, 0, err
	}

	frame, err := t.readLine(ctx, "frame")
	if err != nil {
		return nil, 0, err
	}
	g, err := DecodeFrame(frame, NewGrid(width, height, productions))
	if err != nil {
		return nil, 0, err
	}

	t.log.WithContext(ctx).Info("stdio init",
		zap.Int("self", int(self)),
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return g, self, nil
}

func (t *Transport) SendInit(_ context.Context, botName string) error {
	return t.writeLine(botName)
}

func (t *Transport) ReceiveTurnUpdate(ctx context.Context, prev *grid.Grid) (*grid.Grid, error) {
	frame, err := t.readLine(ctx, "frame")
	if err != nil {
		return nil, err
	}
	return DecodeFrame(frame, prev)
}

func (t *Transport) SendMoves(_ context.Context, moves []grid.Move) error {
	return t.writeLine(EncodeMoves(moves))
}
