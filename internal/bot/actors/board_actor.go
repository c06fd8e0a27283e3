package actors

import (
	"HaliteBot/internal/bot/domain"

	"github.com/asynkron/protoactor-go/actor"
)

const defaultHistory = 64

type publishSnapshot struct {
	Snapshot domain.TurnSnapshot
}

type latestRequest struct{}

type latestResponse struct {
	Snapshot domain.TurnSnapshot
	OK       bool
}

type historyRequest struct {
	Limit int
}

type historyResponse struct {
	Snapshots []domain.TurnSnapshot
}

// BoardActor 独占最近的回合快照，回合循环只发不等。
type BoardActor struct {
	latest  domain.TurnSnapshot
	has     bool
	history []domain.TurnSnapshot
	max     int
}

func NewBoardActor(max int) *BoardActor {
	if max <= 0 {
		max = defaultHistory
	}
	return &BoardActor{max: max}
}

func (b *BoardActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *publishSnapshot:
		b.latest = msg.Snapshot
		b.has = true
		// 历史只保留摘要，标签图只在 latest 上
		summary := msg.Snapshot
		summary.Labels = nil
		b.history = append(b.history, summary)
		if len(b.history) > b.max {
			b.history = b.history[len(b.history)-b.max:]
		}
	case *latestRequest:
		ctx.Respond(&latestResponse{Snapshot: b.latest, OK: b.has})
	case *historyRequest:
		n := len(b.history)
		if msg.Limit > 0 && msg.Limit < n {
			n = msg.Limit
		}
		out := make([]domain.TurnSnapshot, n)
		copy(out, b.history[len(b.history)-n:])
		ctx.Respond(&historyResponse{Snapshots: out})
	}
}
