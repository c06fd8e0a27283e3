package domain

import "HaliteBot/modules/kit/errx"

type Code = errx.Code

const (
	CodeRunnerFailed      Code = "MATCH_RUNNER_FAILED"
	CodeSystemUnavailable Code = errx.CodeUnavailable
)

var (
	ErrRunnerFailed      = errx.NewSys(CodeRunnerFailed, "对局进程执行失败")
	ErrSystemUnavailable = errx.ErrUnavailable
)
