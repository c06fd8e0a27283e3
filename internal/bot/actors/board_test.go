package actors

import (
	"context"
	"testing"
	"time"

	"HaliteBot/internal/bot/domain"
)

func TestBoard_发布后可查询最新快照(t *testing.T) {
	b := NewBoard(4, time.Second)
	defer b.Shutdown()

	if _, ok, err := b.Latest(context.Background()); err != nil || ok {
		t.Fatalf("初始应无快照, ok=%v err=%v", ok, err)
	}

	for turn := 1; turn <= 6; turn++ {
		b.Publish(domain.TurnSnapshot{Turn: turn, Width: 1, Height: 1, Labels: []int{turn}})
	}

	// 同一发送方的消息按序到达，请求排在所有 Publish 之后
	s, ok, err := b.Latest(context.Background())
	if err != nil || !ok {
		t.Fatalf("期望有快照, ok=%v err=%v", ok, err)
	}
	if s.Turn != 6 || s.Labels[0] != 6 {
		t.Fatalf("期望第 6 回合, got=%+v", s)
	}

	hist, err := b.History(context.Background(), 0)
	if err != nil {
		t.Fatalf("History err=%v", err)
	}
	if len(hist) != 4 || hist[0].Turn != 3 || hist[3].Turn != 6 {
		t.Fatalf("期望保留 3..6, got=%+v", hist)
	}
	if hist[3].Labels != nil {
		t.Fatalf("历史摘要不应带标签图")
	}
	if hist, _ := b.History(context.Background(), 2); len(hist) != 2 || hist[0].Turn != 5 {
		t.Fatalf("期望最近两条, got=%+v", hist)
	}
}

func TestBoard_nil安全(t *testing.T) {
	var b *Board
	b.Publish(domain.TurnSnapshot{})
	if _, _, err := b.Latest(context.Background()); err != ErrBoardClosed {
		t.Fatalf("期望 ErrBoardClosed, got=%v", err)
	}
	b.Shutdown()
}
