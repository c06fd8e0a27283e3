package http

const (
	codeOK           = 0
	codeNotReady     = 1001
	codeUnauthorized = 1002
	codeInvalidParam = 1003
	codeSystemError  = 1100
)

type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

func success(data any) Response {
	return Response{Code: codeOK, Msg: "ok", Data: data}
}

func failure(code int, msg string) Response {
	return Response{Code: code, Msg: msg}
}

type attackView struct {
	Turn      int     `json:"turn"`
	Attacking bool    `json:"attacking"`
	Enemy     int     `json:"enemy"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Rows      [][]int `json:"rows"`
}
