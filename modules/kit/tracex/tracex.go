package tracex

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type traceIDKey struct{}
type spanIDKey struct{}
type turnKey struct{}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

func TraceIDFrom(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(traceIDKey{}).(string)
	return s, ok && s != ""
}

func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, spanIDKey{}, spanID)
}

func SpanIDFrom(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(spanIDKey{}).(string)
	return s, ok && s != ""
}

// NewTraceID 为调试请求生成随机 trace_id。
func NewTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func WithTurn(ctx context.Context, turn int) context.Context {
	return context.WithValue(ctx, turnKey{}, turn)
}

func TurnFrom(ctx context.Context) (int, bool) {
	turn, ok := ctx.Value(turnKey{}).(int)
	return turn, ok
}

// NewSessionID 为一局对局生成唯一 id。
func NewSessionID() string {
	return uuid.NewString()
}

// TurnContext 返回带 `<session>-<turn>` trace id 与回合号的 ctx。
func TurnContext(parent context.Context, session string, turn int) context.Context {
	ctx := WithTraceID(parent, fmt.Sprintf("%s-%d", session, turn))
	return WithTurn(ctx, turn)
}
