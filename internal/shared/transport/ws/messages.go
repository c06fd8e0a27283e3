package ws

// ReqBody 是 bot 发往服务端的消息，RespBody 是服务端推送的消息。
// 握手之后两者都以 JSON -> AES-CBC -> gzip 的二进制帧传输。
type ReqBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Msg  any    `json:"msg"`
}

type RespBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Code int    `json:"code"`
	Msg  any    `json:"msg"`
}

type Handshake struct {
	Key string `json:"key" mapstructure:"key"`
}

// InitMsg 的 productions 与 frame 沿用 stdio 协议的文本格式。
type InitMsg struct {
	PlayerTag   int    `json:"player_tag" mapstructure:"player_tag"`
	Width       int    `json:"width" mapstructure:"width"`
	Height      int    `json:"height" mapstructure:"height"`
	Productions string `json:"productions" mapstructure:"productions"`
	Frame       string `json:"frame" mapstructure:"frame"`
}

type FrameMsg struct {
	Frame string `json:"frame" mapstructure:"frame"`
}

type InitAckMsg struct {
	BotName string `json:"bot_name" mapstructure:"bot_name"`
}

type MovesMsg struct {
	Moves string `json:"moves" mapstructure:"moves"`
}

const (
	HandshakeMsg = "handshake"
	InitName     = "init"
	FrameName    = "frame"
	GameOverName = "game_over"
	InitAckName  = "init_ack"
	MovesName    = "moves"
)
