package repository

import (
	"context"
	"fmt"

	"github.com/socialhub/socialhub/internal/models"
	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&post, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// List returns a page of all posts, newest first, plus the total before paging.
func (r *PostRepository) List(ctx context.Context, offset, limit int) ([]*models.Post, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, count, nil
}

// ListByAuthors returns a page of posts authored by any of the given users,
// newest first. The count reflects all matching posts, not just the page.
func (r *PostRepository) ListByAuthors(ctx context.Context, authorIDs []uint, offset, limit int) ([]*models.Post, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("user_id IN ?", authorIDs).
		Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts by authors: %w", err)
	}

	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id IN ?", authorIDs).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list posts by authors: %w", err)
	}
	return posts, count, nil
}

func (r *PostRepository) ListByHashtag(ctx context.Context, hashtagID uint, offset, limit int) ([]*models.Post, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Joins("JOIN post_hashtags ON post_hashtags.post_id = posts.id").
		Where("post_hashtags.hashtag_id = ?", hashtagID)

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts by hashtag: %w", err)
	}

	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN post_hashtags ON post_hashtags.post_id = posts.id").
		Where("post_hashtags.hashtag_id = ?", hashtagID).
		Order("posts.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list posts by hashtag: %w", err)
	}
	return posts, count, nil
}
