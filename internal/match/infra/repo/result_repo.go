package repo

import (
	"context"

	"gorm.io/gorm"

	"HaliteBot/internal/match/domain"
)

type ResultRepo struct {
	db *gorm.DB
}

func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{
		db: db,
	}
}

// Migrate 建表 match_result。
func (r *ResultRepo) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&domain.Result{}); err != nil {
		return domain.ErrSystemUnavailable.WithData("table", domain.Result{}.TableName()).WithCause(err)
	}
	return nil
}

func (r *ResultRepo) Save(ctx context.Context, res *domain.Result) error {
	err := r.db.WithContext(ctx).Create(res).Error
	if err != nil {
		return domain.ErrSystemUnavailable.WithDataMap(map[string]any{
			"batch": res.Batch,
			"game":  res.GameNo,
		}).WithCause(err)
	}
	return nil
}

func (r *ResultRepo) ListByBatch(ctx context.Context, batch string) ([]domain.Result, error) {
	var out []domain.Result
	err := r.db.WithContext(ctx).Where("batch = ?", batch).Order("game_no").Find(&out).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("batch", batch).WithCause(err)
	}
	return out, nil
}
