package logx

import (
	"context"
	"errors"
	"testing"
	"time"

	"HaliteBot/modules/kit/errx"

	"go.uber.org/zap"
)

func TestBuildErrorLog_能提取语义与栈(t *testing.T) {
	cause := errors.New("stdin closed")
	e := errx.ErrUnavailable.WithData("stage", "frame").WithCause(cause)

	meta := BuildErrorLog(e)
	if meta.Error == "" || meta.Code != string(errx.CodeUnavailable) {
		t.Fatalf("期望 Error/Code 被提取, got=%+v", meta)
	}
	if meta.Msg == "" {
		t.Fatalf("期望 meta.Msg 非空")
	}
	if meta.Data["stage"] != "frame" {
		t.Fatalf("期望 meta.Data 包含 stage=frame, got=%v", meta.Data)
	}
	if len(meta.CauseChain) == 0 {
		t.Fatalf("期望 cause 链非空")
	}
	if meta.Origin == "" || meta.Stack == "" {
		t.Fatalf("期望 origin/stack 非空 origin=%q stack=%q", meta.Origin, meta.Stack)
	}
}

func TestBuildErrorLog_普通错误(t *testing.T) {
	meta := BuildErrorLog(errors.New("plain"))
	if meta.Code != "" || meta.Stack != "" {
		t.Fatalf("期望普通错误没有 code/stack, got=%+v", meta)
	}
	if empty := BuildErrorLog(nil); empty.Error != "" || empty.Data != nil {
		t.Fatalf("期望 nil 错误返回零值")
	}
}

type recordLogger struct {
	levels []string
}

func (r *recordLogger) Info(string, ...zap.Field)  { r.levels = append(r.levels, "info") }
func (r *recordLogger) Error(string, ...zap.Field) { r.levels = append(r.levels, "error") }
func (r *recordLogger) Debug(string, ...zap.Field) { r.levels = append(r.levels, "debug") }
func (r *recordLogger) Warn(string, ...zap.Field)  { r.levels = append(r.levels, "warn") }
func (r *recordLogger) WithContext(context.Context) Logger {
	return r
}

func TestReportTurn_超预算升级为Warn(t *testing.T) {
	l := &recordLogger{}
	ctx := context.Background()
	ReportTurnWithLoggerContext(ctx, l, TurnLog{Owned: 3, Elapsed: 10 * time.Millisecond}, time.Second)
	ReportTurnWithLoggerContext(ctx, l, TurnLog{Owned: 3, Elapsed: 2 * time.Second}, time.Second)
	if len(l.levels) != 2 || l.levels[0] != "debug" || l.levels[1] != "warn" {
		t.Fatalf("期望 debug 后 warn, got=%v", l.levels)
	}
}

func TestReportAccess_按状态码分级(t *testing.T) {
	l := &recordLogger{}
	ctx := context.Background()
	ReportAccessWithLoggerContext(ctx, l, "GET /healthz", 200)
	ReportAccessWithLoggerContext(ctx, l, "GET /debug/state", 401)
	ReportAccessWithLoggerContext(ctx, l, "GET /debug/state", 503)
	want := []string{"info", "warn", "error"}
	for i, lv := range want {
		if l.levels[i] != lv {
			t.Fatalf("第 %d 条期望 %s, got=%v", i, lv, l.levels)
		}
	}
}
