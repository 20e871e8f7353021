package notification

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CreateLog(ctx context.Context, log *NotificationLog) error
	ListLogs(ctx context.Context, canal string, limit, offset int) ([]NotificationLog, error)
	ListLogsByCodigo(ctx context.Context, codigo string) ([]NotificationLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateLog(ctx context.Context, log *NotificationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) ListLogs(ctx context.Context, canal string, limit, offset int) ([]NotificationLog, error) {
	var logs []NotificationLog

	query := r.db.WithContext(ctx).Model(&NotificationLog{})
	if canal != "" {
		query = query.Where("canal = ?", canal)
	}
	if limit <= 0 {
		limit = 50
	}

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	return logs, err
}

func (r *repository) ListLogsByCodigo(ctx context.Context, codigo string) ([]NotificationLog, error) {
	var logs []NotificationLog
	err := r.db.WithContext(ctx).
		Where("codigo = ?", codigo).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
