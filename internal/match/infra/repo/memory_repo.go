package repo

import (
	"context"
	"sync"
	"time"

	"HaliteBot/internal/match/domain"
)

// MemoryResultRepo 在未启用 MySQL 时保存本次批量对局的结果。
type MemoryResultRepo struct {
	mu     sync.Mutex
	nextID int
	rows   []domain.Result
}

func NewMemoryResultRepo() *MemoryResultRepo {
	return &MemoryResultRepo{}
}

func (r *MemoryResultRepo) Save(_ context.Context, res *domain.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	res.Id = r.nextID
	if res.CTime.IsZero() {
		res.CTime = time.Now()
	}
	r.rows = append(r.rows, *res)
	return nil
}

func (r *MemoryResultRepo) ListByBatch(_ context.Context, batch string) ([]domain.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Result
	for _, row := range r.rows {
		if row.Batch == batch {
			out = append(out, row)
		}
	}
	return out, nil
}
