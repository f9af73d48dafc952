package repository

import (
	"context"
	"fmt"

	"github.com/socialhub/socialhub/internal/models"
	"gorm.io/gorm"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		return fmt.Errorf("failed to create follow: %w", err)
	}
	return nil
}

func (r *FollowRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Follow{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	return nil
}

func (r *FollowRepository) GetByID(ctx context.Context, id uint) (*models.Follow, error) {
	var follow models.Follow
	if err := r.db.WithContext(ctx).
		Preload("Followed").
		First(&follow, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get follow: %w", err)
	}
	return &follow, nil
}

func (r *FollowRepository) GetByPair(ctx context.Context, followerID, followedID uint) (*models.Follow, error) {
	var follow models.Follow
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		First(&follow).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get follow by pair: %w", err)
	}
	return &follow, nil
}

// FollowedIDs returns the ids of every user the given user follows. An empty
// result is the normal case for a user with no follow edges.
func (r *FollowRepository) FollowedIDs(ctx context.Context, followerID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("followed_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to get followed ids: %w", err)
	}
	return ids, nil
}

func (r *FollowRepository) ListFollowers(ctx context.Context, userID uint, offset, limit int) ([]*models.Follow, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followed_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count followers: %w", err)
	}

	var follows []*models.Follow
	if err := r.db.WithContext(ctx).
		Preload("Follower").
		Where("followed_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&follows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list followers: %w", err)
	}
	return follows, count, nil
}

func (r *FollowRepository) ListFollowing(ctx context.Context, userID uint, offset, limit int) ([]*models.Follow, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count following: %w", err)
	}

	var follows []*models.Follow
	if err := r.db.WithContext(ctx).
		Preload("Followed").
		Where("follower_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&follows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list following: %w", err)
	}
	return follows, count, nil
}
