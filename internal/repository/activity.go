package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/socialhub/socialhub/internal/models"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// ActivityFilter narrows a user's activity page. Zero values mean "no filter".
type ActivityFilter struct {
	ActivityType models.ActivityType
	StartDate    *time.Time
	EndDate      *time.Time
}

func (r *ActivityRepository) Create(ctx context.Context, log *models.ActivityLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to create activity log: %w", err)
	}
	return nil
}

// ListByUser returns a page of the user's activity rows, newest first, plus
// the total count before paging.
func (r *ActivityRepository) ListByUser(ctx context.Context, userID uint, filter ActivityFilter, offset, limit int) ([]*models.ActivityLog, int64, error) {
	var count int64
	if err := r.filtered(ctx, userID, filter).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count activity logs: %w", err)
	}

	var logs []*models.ActivityLog
	if err := r.filtered(ctx, userID, filter).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list activity logs: %w", err)
	}
	return logs, count, nil
}

func (r *ActivityRepository) filtered(ctx context.Context, userID uint, filter ActivityFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.ActivityLog{}).Where("user_id = ?", userID)
	if filter.ActivityType != "" {
		query = query.Where("activity_type = ?", filter.ActivityType)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}
	return query
}
