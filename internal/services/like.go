package services

import (
	"context"
	"fmt"

	"github.com/socialhub/socialhub/internal/models"
	"github.com/socialhub/socialhub/internal/repository"
	"github.com/socialhub/socialhub/pkg/logger"
	"github.com/socialhub/socialhub/pkg/queue"
	"gorm.io/gorm"
)

type LikeService struct {
	db       *gorm.DB
	postRepo *repository.PostRepository
	likeRepo *repository.LikeRepository
	producer *queue.KafkaProducer
	logger   *logger.Logger
}

func NewLikeService(
	db *gorm.DB,
	postRepo *repository.PostRepository,
	likeRepo *repository.LikeRepository,
	producer *queue.KafkaProducer,
	logger *logger.Logger,
) *LikeService {
	return &LikeService{
		db:       db,
		postRepo: postRepo,
		likeRepo: likeRepo,
		producer: producer,
		logger:   logger,
	}
}

// LikePost creates the like and its POST_LIKE activity row in one transaction.
func (s *LikeService) LikePost(ctx context.Context, userID, postID uint) (*models.Like, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("post %w", ErrNotFound)
	}

	existing, err := s.likeRepo.GetByPair(ctx, userID, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to check like status: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("like %w", ErrAlreadyExists)
	}

	like := &models.Like{
		UserID: userID,
		PostID: postID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewLikeRepository(tx).Create(ctx, like); err != nil {
			return err
		}
		log := models.NewActivityLog(userID, models.LikeRef(like.ID))
		return repository.NewActivityRepository(tx).Create(ctx, log)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create like: %w", err)
	}

	s.publish(ctx, queue.Event{
		Type:      queue.EventPostLiked,
		UserID:    userID,
		EntityID:  like.ID,
		Timestamp: like.CreatedAt,
	})

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"post_id": postID,
	}).Info("Post liked successfully")

	return like, nil
}

func (s *LikeService) UnlikePost(ctx context.Context, userID, likeID uint) error {
	like, err := s.likeRepo.GetByID(ctx, likeID)
	if err != nil {
		return fmt.Errorf("failed to get like: %w", err)
	}
	if like == nil {
		return fmt.Errorf("like %w", ErrNotFound)
	}
	if like.UserID != userID {
		return fmt.Errorf("%w: you can only delete your own likes", ErrForbidden)
	}

	if err := s.likeRepo.Delete(ctx, likeID); err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}

	s.logger.WithField("like_id", likeID).Info("Like deleted successfully")
	return nil
}

func (s *LikeService) ListByPost(ctx context.Context, postID uint, offset, limit int) ([]*models.Like, int64, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, 0, fmt.Errorf("post %w", ErrNotFound)
	}

	likes, count, err := s.likeRepo.ListByPost(ctx, postID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list likes: %w", err)
	}
	return likes, count, nil
}

func (s *LikeService) publish(ctx context.Context, event queue.Event) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, fmt.Sprint(event.UserID), event); err != nil {
		s.logger.WithError(err).Error("Failed to publish like event")
	}
}
