package mongodb

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"HaliteBot/internal/replay"
)

func TestTurnDoc_BSON往返(t *testing.T) {
	rec := replay.TurnRecord{
		Session: "s-1", Turn: 12, Self: 1, Attacking: true, Enemy: 2,
		EnemyTerritory: 20, MyCount: 9, Width: 2, Height: 1,
		Labels:     []int{1, -2},
		Moves:      []replay.Move{{X: 1, Y: 0, Direction: 4, Reason: "press"}},
		RecordedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	raw, err := bson.Marshal(toDoc(rec))
	if err != nil {
		t.Fatalf("marshal err=%v", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal err=%v", err)
	}
	if _, ok := m["enemy_territory"]; !ok || m["session"] != "s-1" {
		t.Fatalf("字段名不符: %v", m)
	}

	var d turnDoc
	if err := bson.Unmarshal(raw, &d); err != nil {
		t.Fatalf("unmarshal doc err=%v", err)
	}
	back := fromDoc(d)
	if back.Turn != 12 || back.Moves[0].Reason != "press" || back.Labels[1] != -2 || !back.RecordedAt.Equal(rec.RecordedAt) {
		t.Fatalf("往返不一致: %+v", back)
	}
}

func TestTurnRepository_未初始化返回错误(t *testing.T) {
	var r *TurnRepository
	if err := r.Save(context.Background(), replay.TurnRecord{}); err == nil {
		t.Fatalf("期望 nil repo 返回错误")
	}
}
