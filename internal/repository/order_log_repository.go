package repository

import (
	"context"

	"gorm.io/gorm"

	"tapcard/internal/model"
)

// OrderLogRepository defines order log persistence operations.
type OrderLogRepository interface {
	Create(ctx context.Context, log *model.OrderLog) error
	CreateBatch(ctx context.Context, logs []model.OrderLog) error
}

type orderLogRepository struct {
	db *gorm.DB
}

// NewOrderLogRepository creates a new order log repository.
func NewOrderLogRepository(db *gorm.DB) OrderLogRepository {
	return &orderLogRepository{db: db}
}

// Create creates a new order log entry.
func (r *orderLogRepository) Create(ctx context.Context, log *model.OrderLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// CreateBatch creates multiple order log entries in one insert.
func (r *orderLogRepository) CreateBatch(ctx context.Context, logs []model.OrderLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&logs).Error
}

