package transport

import (
	"context"
	"errors"

	"HaliteBot/internal/engine/grid"
)

// ErrGameOver 表示对局正常结束（输入流关闭或服务端通知），不是故障。
var ErrGameOver = errors.New("game over")

// Transport 是对局服务器的接入端口：stdio 或 websocket。
// 所有方法只在回合循环所在的 goroutine 上调用。
type Transport interface {
	// ReceiveInitialState 读取初始地图与己方 id，只调用一次。
	ReceiveInitialState(ctx context.Context) (*grid.Grid, grid.AgentID, error)
	// SendInit 回报 bot 名称，完成初始化握手。
	SendInit(ctx context.Context, botName string) error
	// ReceiveTurnUpdate 基于 prev 生成新一回合的 Grid，不修改 prev。对局结束返回 ErrGameOver。
	ReceiveTurnUpdate(ctx context.Context, prev *grid.Grid) (*grid.Grid, error)
	// SendMoves 发送本回合的全部移动。
	SendMoves(ctx context.Context, moves []grid.Move) error
}
