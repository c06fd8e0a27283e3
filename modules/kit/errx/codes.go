package errx

// 跨组件统一的系统类错误码。
//
// 约束：
// - 只放 transport / 存储 / 配置这类技术错误
// - 引擎内部的规则错误由各自包定义，不集中在 kit
const (
	// CodeInternal 兜底的内部错误，通常意味着不变量被破坏。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 依赖不可用（对局连接断开、Mongo/MySQL 不可达）。
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeTimeout 等待对局服务器超时。
	CodeTimeout Code = "TIMEOUT"
	// CodeProtocol 对局协议数据格式错误。
	CodeProtocol Code = "PROTOCOL_ERROR"
	// CodeBadConfig 配置缺失或非法。
	CodeBadConfig Code = "BAD_CONFIG"
)

var (
	ErrInternal    = NewSys(CodeInternal, "内部错误")
	ErrUnavailable = NewSys(CodeUnavailable, "依赖不可用")
	ErrTimeout     = NewSys(CodeTimeout, "等待超时")
	ErrProtocol    = NewSys(CodeProtocol, "协议数据非法")
	ErrBadConfig   = NewBiz(CodeBadConfig, "配置非法")
)
