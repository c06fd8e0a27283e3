package replay

import (
	"context"
	"time"
)

// TurnRecord 是战役期间某一回合的存档：进攻区标签图、战役进度与本回合的移动。
type TurnRecord struct {
	Session        string
	Turn           int
	Self           int
	Attacking      bool
	Engaged        bool
	Ended          bool
	Enemy          int
	EnemyTerritory int
	MyCount        int
	Width          int
	Height         int
	// 行优先的标签图，战役结束的回合记录的是结束判定前的标签
	Labels     []int
	Moves      []Move
	RecordedAt time.Time
}

type Move struct {
	X         int
	Y         int
	Direction int
	Reason    string
}

// Repository 保存与查询回放记录。
type Repository interface {
	Save(ctx context.Context, rec TurnRecord) error
	ListBySession(ctx context.Context, session string, limit int) ([]TurnRecord, error)
}
