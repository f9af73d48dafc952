package services

import (
	"context"
	"fmt"
	"time"

	"github.com/socialhub/socialhub/internal/models"
	"github.com/socialhub/socialhub/internal/repository"
	"github.com/socialhub/socialhub/pkg/logger"
	"github.com/socialhub/socialhub/pkg/queue"
	"gorm.io/gorm"
)

type FollowService struct {
	db         *gorm.DB
	userRepo   *repository.UserRepository
	followRepo *repository.FollowRepository
	producer   *queue.KafkaProducer
	logger     *logger.Logger
}

func NewFollowService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	followRepo *repository.FollowRepository,
	producer *queue.KafkaProducer,
	logger *logger.Logger,
) *FollowService {
	return &FollowService{
		db:         db,
		userRepo:   userRepo,
		followRepo: followRepo,
		producer:   producer,
		logger:     logger,
	}
}

// Follow creates the edge follower -> followed and its USER_FOLLOW activity
// row in one transaction.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID uint) (*models.Follow, error) {
	if followerID == followedID {
		return nil, fmt.Errorf("%w: cannot follow yourself", ErrInvalidInput)
	}

	followed, err := s.userRepo.GetByID(ctx, followedID)
	if err != nil {
		return nil, fmt.Errorf("failed to get followed user: %w", err)
	}
	if followed == nil {
		return nil, fmt.Errorf("user to follow %w", ErrNotFound)
	}

	existing, err := s.followRepo.GetByPair(ctx, followerID, followedID)
	if err != nil {
		return nil, fmt.Errorf("failed to check follow status: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("follow %w", ErrAlreadyExists)
	}

	follow := &models.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewFollowRepository(tx).Create(ctx, follow); err != nil {
			return err
		}
		log := models.NewActivityLog(followerID, models.FollowRef(follow.ID))
		return repository.NewActivityRepository(tx).Create(ctx, log)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create follow: %w", err)
	}

	s.publish(ctx, queue.Event{
		Type:      queue.EventUserFollowed,
		UserID:    followerID,
		EntityID:  follow.ID,
		Timestamp: follow.CreatedAt,
	})

	s.logger.WithFields(map[string]interface{}{
		"follower_id": followerID,
		"followed_id": followedID,
	}).Info("User followed successfully")

	return follow, nil
}

// Unfollow removes the edge by its id. The USER_UNFOLLOW row references the
// followed user's id, written in the same transaction as the delete, so the
// log survives the edge.
func (s *FollowService) Unfollow(ctx context.Context, userID, followID uint) error {
	follow, err := s.followRepo.GetByID(ctx, followID)
	if err != nil {
		return fmt.Errorf("failed to get follow: %w", err)
	}
	if follow == nil {
		return fmt.Errorf("follow %w", ErrNotFound)
	}
	if follow.FollowerID != userID {
		return fmt.Errorf("%w: you can only unfollow users that you follow", ErrForbidden)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		log := models.NewActivityLog(userID, models.UnfollowRef(follow.FollowedID))
		if err := repository.NewActivityRepository(tx).Create(ctx, log); err != nil {
			return err
		}
		return repository.NewFollowRepository(tx).Delete(ctx, follow.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	s.publish(ctx, queue.Event{
		Type:      queue.EventUserUnfollowed,
		UserID:    userID,
		EntityID:  follow.FollowedID,
		Timestamp: time.Now(),
	})

	s.logger.WithFields(map[string]interface{}{
		"follower_id": userID,
		"followed_id": follow.FollowedID,
	}).Info("User unfollowed successfully")

	return nil
}

func (s *FollowService) Followers(ctx context.Context, userID uint, offset, limit int) ([]*models.Follow, int64, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, 0, err
	}
	follows, count, err := s.followRepo.ListFollowers(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get followers: %w", err)
	}
	return follows, count, nil
}

func (s *FollowService) Following(ctx context.Context, userID uint, offset, limit int) ([]*models.Follow, int64, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, 0, err
	}
	follows, count, err := s.followRepo.ListFollowing(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get following: %w", err)
	}
	return follows, count, nil
}

func (s *FollowService) requireUser(ctx context.Context, userID uint) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return fmt.Errorf("user %w", ErrNotFound)
	}
	return nil
}

func (s *FollowService) publish(ctx context.Context, event queue.Event) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, fmt.Sprint(event.UserID), event); err != nil {
		s.logger.WithError(err).Error("Failed to publish follow event")
	}
}
