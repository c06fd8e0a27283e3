package app

import "HaliteBot/modules/kit/errx"

type Code = errx.Code

const (
	// 以下复用 kit 的统一系统码。
	CodeInternalServer Code = errx.CodeInternal
	CodeUnavailable    Code = errx.CodeUnavailable
	CodeProtocol       Code = errx.CodeProtocol
)

type Error = errx.Error

// Wrap 创建系统类错误并挂载 cause（第一次 wrap 处捕获一次栈）。
func Wrap(code Code, msg string, cause error) *Error {
	return errx.NewSys(code, msg).WithCause(cause)
}

// 哨兵错误：禁止直接修改其 data/cause（通过 WithData/WithCause 派生新对象）。
var (
	ErrTransportBroken = errx.NewSys(CodeUnavailable, "对局连接中断")
	ErrHandshake       = errx.NewSys(CodeProtocol, "初始化握手失败")
	ErrPlanInvariant   = errx.NewSys(CodeInternalServer, "移动列表不满足一格一令")
)
