package replay

import (
	"context"
	"sync"
)

// MemoryRepository 在进程内保存回放，未配置 Mongo 时使用。
type MemoryRepository struct {
	mu      sync.RWMutex
	records []TurnRecord
	max     int
}

// NewMemoryRepository max<=0 表示不限条数，否则只保留最近 max 条。
func NewMemoryRepository(max int) *MemoryRepository {
	return &MemoryRepository{max: max}
}

func (r *MemoryRepository) Save(_ context.Context, rec TurnRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.Labels = append([]int(nil), rec.Labels...)
	rec.Moves = append([]Move(nil), rec.Moves...)
	r.records = append(r.records, rec)
	if r.max > 0 && len(r.records) > r.max {
		r.records = r.records[len(r.records)-r.max:]
	}
	return nil
}

func (r *MemoryRepository) ListBySession(_ context.Context, session string, limit int) ([]TurnRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []TurnRecord
	for _, rec := range r.records {
		if rec.Session != session {
			continue
		}
		out = append(out, rec)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// NopRepository 丢弃所有记录。
type NopRepository struct{}

func (NopRepository) Save(context.Context, TurnRecord) error { return nil }

func (NopRepository) ListBySession(context.Context, string, int) ([]TurnRecord, error) {
	return nil, nil
}
