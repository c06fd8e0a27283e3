package logx

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// SysLog 是技术错误日志的强类型输入，避免参数顺序误传。
type SysLog struct {
	Action string
	Err    error
}

func NewSysLog(action string, err error) SysLog {
	return SysLog{Action: action, Err: err}
}

// TurnLog 是每回合摘要日志的输入。
type TurnLog struct {
	Owned     int
	Moves     int
	Attacking bool
	Elapsed   time.Duration
}

// ReportSysErrorWithLoggerContext 记录技术错误：ERROR、err_type=sys，带 code/cause 链/栈。
func ReportSysErrorWithLoggerContext(ctx context.Context, l Logger, sys SysLog, fields ...zap.Field) {
	if sys.Err == nil || l == nil {
		return
	}
	action := sys.Action
	if action == "" {
		action = "sys_error"
	}
	meta := BuildErrorLog(sys.Err)
	base := []zap.Field{
		zap.String("err_type", "sys"),
		zap.String("action", action),
	}
	if meta.Code != "" {
		base = append(base, zap.String("error_code", meta.Code))
	}
	if len(meta.CauseChain) != 0 {
		base = append(base, zap.Strings("cause_chain", meta.CauseChain))
	}
	if len(meta.Data) != 0 {
		base = append(base, zap.Any("error_data", meta.Data))
	}
	if meta.Origin != "" {
		base = append(base, zap.String("origin_caller", meta.Origin))
	}
	if meta.Stack != "" {
		base = append(base, zap.String("stack_origin", meta.Stack))
	}
	base = append(base, fields...)

	msg := fmt.Sprintf("%s, error:%s", action, meta.Error)
	if meta.Msg != "" {
		msg = fmt.Sprintf("%s, error:%s, msg:%s", action, meta.Error, meta.Msg)
	}
	l.WithContext(ctx).Error(msg, base...)
}

// ReportTurnWithLoggerContext 记录回合摘要：正常回合 DEBUG，超出预算的回合 WARN。
func ReportTurnWithLoggerContext(ctx context.Context, l Logger, turn TurnLog, budget time.Duration, fields ...zap.Field) {
	if l == nil {
		return
	}
	base := []zap.Field{
		zap.String("log_type", "turn"),
		zap.Int("owned", turn.Owned),
		zap.Int("moves", turn.Moves),
		zap.Bool("attacking", turn.Attacking),
		zap.Duration("elapsed", turn.Elapsed),
	}
	base = append(base, fields...)
	withCtx := l.WithContext(ctx)
	if budget > 0 && turn.Elapsed > budget {
		withCtx.Warn("turn over budget", base...)
		return
	}
	withCtx.Debug("turn", base...)
}

// ReportAccessWithLoggerContext 记录访问日志：成功 INFO，5xx ERROR，其余 WARN。
func ReportAccessWithLoggerContext(ctx context.Context, l Logger, action string, status int, fields ...zap.Field) {
	if l == nil {
		return
	}
	base := []zap.Field{
		zap.String("log_type", "access"),
		zap.String("action", action),
		zap.Int("status", status),
	}
	base = append(base, fields...)
	withCtx := l.WithContext(ctx)
	switch {
	case status < 400:
		withCtx.Info("access", base...)
	case status >= 500:
		withCtx.Error("access", base...)
	default:
		withCtx.Warn("access", base...)
	}
}
