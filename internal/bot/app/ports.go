package app

import (
	"context"

	"HaliteBot/internal/bot/domain"
	"HaliteBot/internal/engine/tuning"
	"HaliteBot/internal/replay"
)

// Recorder 保存战役回合，失败只记日志。
type Recorder interface {
	Save(ctx context.Context, rec replay.TurnRecord) error
}

// SnapshotPublisher 接收每回合的快照，不得阻塞回合循环。
type SnapshotPublisher interface {
	Publish(s domain.TurnSnapshot)
}

type HealthReporter interface {
	SetServing(serving bool)
}

// TuningSource 在每回合开始时被调用一次。
type TuningSource func() tuning.Tuning
