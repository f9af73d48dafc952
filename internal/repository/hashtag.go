package repository

import (
	"context"
	"fmt"

	"github.com/socialhub/socialhub/internal/models"
	"gorm.io/gorm"
)

type HashtagRepository struct {
	db *gorm.DB
}

func NewHashtagRepository(db *gorm.DB) *HashtagRepository {
	return &HashtagRepository{db: db}
}

// GetOrCreate finds the hashtag with the given (already normalized) name,
// creating it on first use.
func (r *HashtagRepository) GetOrCreate(ctx context.Context, name string) (*models.Hashtag, error) {
	var hashtag models.Hashtag
	if err := r.db.WithContext(ctx).
		Where(models.Hashtag{Name: name}).
		FirstOrCreate(&hashtag).Error; err != nil {
		return nil, fmt.Errorf("failed to get or create hashtag: %w", err)
	}
	return &hashtag, nil
}

func (r *HashtagRepository) GetByID(ctx context.Context, id uint) (*models.Hashtag, error) {
	var hashtag models.Hashtag
	if err := r.db.WithContext(ctx).First(&hashtag, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get hashtag: %w", err)
	}
	return &hashtag, nil
}

func (r *HashtagRepository) GetByName(ctx context.Context, name string) (*models.Hashtag, error) {
	var hashtag models.Hashtag
	if err := r.db.WithContext(ctx).First(&hashtag, "name = ?", name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get hashtag by name: %w", err)
	}
	return &hashtag, nil
}

func (r *HashtagRepository) List(ctx context.Context) ([]*models.Hashtag, error) {
	var hashtags []*models.Hashtag
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&hashtags).Error; err != nil {
		return nil, fmt.Errorf("failed to list hashtags: %w", err)
	}
	return hashtags, nil
}

func (r *HashtagRepository) AttachToPost(ctx context.Context, postID, hashtagID uint) error {
	row := &models.PostHashtag{PostID: postID, HashtagID: hashtagID}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to attach hashtag to post: %w", err)
	}
	return nil
}

// NamesByPostID returns the post's hashtag names in join-table insertion order.
func (r *HashtagRepository) NamesByPostID(ctx context.Context, postID uint) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&models.PostHashtag{}).
		Joins("JOIN hashtags ON hashtags.id = post_hashtags.hashtag_id").
		Where("post_hashtags.post_id = ?", postID).
		Order("post_hashtags.hashtag_id ASC").
		Pluck("hashtags.name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to get hashtag names for post: %w", err)
	}
	return names, nil
}
