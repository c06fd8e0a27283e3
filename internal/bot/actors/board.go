package actors

import (
	"context"
	"errors"
	"time"

	"HaliteBot/internal/bot/domain"

	protoactor "github.com/asynkron/protoactor-go/actor"
)

const defaultAskTimeout = time.Second

var ErrBoardClosed = errors.New("snapshot board 未初始化")

// Board 是快照 actor 的外部入口：Publish 由回合循环调用，查询由调试接口调用。
type Board struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	pid     *protoactor.PID
	timeout time.Duration
}

func NewBoard(history int, askTimeout time.Duration) *Board {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}
	system := protoactor.NewActorSystem()
	root := system.Root
	props := protoactor.PropsFromProducer(func() protoactor.Actor {
		return NewBoardActor(history)
	})
	return &Board{
		system:  system,
		root:    root,
		pid:     root.Spawn(props),
		timeout: askTimeout,
	}
}

// Publish 把快照投递到邮箱后立即返回。快照里的切片归 Board 所有，调用方不得再修改。
func (b *Board) Publish(s domain.TurnSnapshot) {
	if b == nil || b.root == nil {
		return
	}
	b.root.Send(b.pid, &publishSnapshot{Snapshot: s})
}

// Latest 返回最近一回合的快照，尚无快照时 ok=false。
func (b *Board) Latest(ctx context.Context) (domain.TurnSnapshot, bool, error) {
	res, err := b.request(ctx, &latestRequest{})
	if err != nil {
		return domain.TurnSnapshot{}, false, err
	}
	resp, ok := res.(*latestResponse)
	if !ok {
		return domain.TurnSnapshot{}, false, errors.New("unexpected board response")
	}
	return resp.Snapshot, resp.OK, nil
}

// History 按回合顺序返回最近 limit 个快照摘要（不含标签图），limit<=0 表示全部。
func (b *Board) History(ctx context.Context, limit int) ([]domain.TurnSnapshot, error) {
	res, err := b.request(ctx, &historyRequest{Limit: limit})
	if err != nil {
		return nil, err
	}
	resp, ok := res.(*historyResponse)
	if !ok {
		return nil, errors.New("unexpected board response")
	}
	return resp.Snapshots, nil
}

func (b *Board) Shutdown() {
	if b == nil {
		return
	}
	if b.root != nil && b.pid != nil {
		b.root.Stop(b.pid)
	}
	if b.system != nil {
		b.system.Shutdown()
	}
}

func (b *Board) request(ctx context.Context, msg any) (any, error) {
	if b == nil || b.root == nil || b.pid == nil {
		return nil, ErrBoardClosed
	}
	future := b.root.RequestFuture(b.pid, msg, b.timeoutFromContext(ctx))
	return future.Result()
}

func (b *Board) timeoutFromContext(ctx context.Context) time.Duration {
	if ctx == nil {
		return b.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return b.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	return min(remain, b.timeout)
}
