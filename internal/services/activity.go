package services

import (
	"context"
	"fmt"
	"time"

	"github.com/socialhub/socialhub/internal/models"
	"github.com/socialhub/socialhub/internal/repository"
	"github.com/socialhub/socialhub/pkg/logger"
)

// ActivityService reads a user's activity page and enriches each row by
// resolving its polymorphic (activity_type, entity_id) reference.
type ActivityService struct {
	userRepo     *repository.UserRepository
	postRepo     *repository.PostRepository
	likeRepo     *repository.LikeRepository
	followRepo   *repository.FollowRepository
	activityRepo *repository.ActivityRepository
	logger       *logger.Logger
}

func NewActivityService(
	userRepo *repository.UserRepository,
	postRepo *repository.PostRepository,
	likeRepo *repository.LikeRepository,
	followRepo *repository.FollowRepository,
	activityRepo *repository.ActivityRepository,
	logger *logger.Logger,
) *ActivityService {
	return &ActivityService{
		userRepo:     userRepo,
		postRepo:     postRepo,
		likeRepo:     likeRepo,
		followRepo:   followRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

type ActivityQuery struct {
	ActivityType models.ActivityType
	StartDate    *time.Time
	EndDate      *time.Time
	Offset       int
	Limit        int
}

// EnrichedActivity is an activity row with its resolved detail payload.
// Exactly one of the detail fields is set per type; all stay empty when the
// referent no longer exists (the log is an audit trail, not a foreign key).
type EnrichedActivity struct {
	ID        uint                `json:"id"`
	Type      models.ActivityType `json:"type"`
	CreatedAt time.Time           `json:"created_at"`

	Post     *models.Post   `json:"post,omitempty"`
	Like     *models.Like   `json:"like,omitempty"`
	Follow   *models.Follow `json:"follow,omitempty"`
	Followed *models.User   `json:"followed,omitempty"`
}

// GetUserActivity returns one enriched page of the user's activity, newest
// first. An unknown user is not-found; an unknown activity type filter is
// invalid input.
func (s *ActivityService) GetUserActivity(ctx context.Context, userID uint, query ActivityQuery) ([]*EnrichedActivity, int64, error) {
	if query.ActivityType != "" && !query.ActivityType.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown activity type %q", ErrInvalidInput, query.ActivityType)
	}

	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return nil, 0, fmt.Errorf("user %w", ErrNotFound)
	}

	filter := repository.ActivityFilter{
		ActivityType: query.ActivityType,
		StartDate:    query.StartDate,
		EndDate:      query.EndDate,
	}
	rows, count, err := s.activityRepo.ListByUser(ctx, userID, filter, query.Offset, query.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get activity page: %w", err)
	}

	enriched, err := s.Enrich(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return enriched, count, nil
}

// Enrich resolves each row's reference independently, one point lookup per
// row, preserving input order and cardinality. A lookup miss keeps the row
// with empty details; it is never an error and never drops the row.
func (s *ActivityService) Enrich(ctx context.Context, rows []*models.ActivityLog) ([]*EnrichedActivity, error) {
	enriched := make([]*EnrichedActivity, 0, len(rows))
	for _, row := range rows {
		item := &EnrichedActivity{
			ID:        row.ID,
			Type:      row.ActivityType,
			CreatedAt: row.CreatedAt,
		}

		switch row.ActivityType {
		case models.ActivityPostCreate:
			post, err := s.postRepo.GetByID(ctx, row.EntityID)
			if err != nil {
				return nil, fmt.Errorf("failed to enrich post activity: %w", err)
			}
			item.Post = post
		case models.ActivityPostLike:
			like, err := s.likeRepo.GetByID(ctx, row.EntityID)
			if err != nil {
				return nil, fmt.Errorf("failed to enrich like activity: %w", err)
			}
			item.Like = like
		case models.ActivityUserFollow:
			follow, err := s.followRepo.GetByID(ctx, row.EntityID)
			if err != nil {
				return nil, fmt.Errorf("failed to enrich follow activity: %w", err)
			}
			item.Follow = follow
		case models.ActivityUserUnfollow:
			// entity_id names the unfollowed user, not the removed edge
			followed, err := s.userRepo.GetByID(ctx, row.EntityID)
			if err != nil {
				return nil, fmt.Errorf("failed to enrich unfollow activity: %w", err)
			}
			item.Followed = followed
		default:
			s.logger.WithFields(map[string]interface{}{
				"activity_id":   row.ID,
				"activity_type": row.ActivityType,
			}).Warn("Unknown activity type, returning row without details")
		}

		enriched = append(enriched, item)
	}
	return enriched, nil
}
