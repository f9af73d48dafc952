package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/socialhub/socialhub/internal/models"
	"github.com/socialhub/socialhub/internal/repository"
	"github.com/socialhub/socialhub/pkg/logger"
	"github.com/socialhub/socialhub/pkg/queue"
	"gorm.io/gorm"
)

type PostService struct {
	db          *gorm.DB
	postRepo    *repository.PostRepository
	likeRepo    *repository.LikeRepository
	hashtagRepo *repository.HashtagRepository
	producer    *queue.KafkaProducer
	logger      *logger.Logger
}

func NewPostService(
	db *gorm.DB,
	postRepo *repository.PostRepository,
	likeRepo *repository.LikeRepository,
	hashtagRepo *repository.HashtagRepository,
	producer *queue.KafkaProducer,
	logger *logger.Logger,
) *PostService {
	return &PostService{
		db:          db,
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		hashtagRepo: hashtagRepo,
		producer:    producer,
		logger:      logger,
	}
}

type CreatePostRequest struct {
	Content  string   `json:"content" binding:"required,min=1,max=2000"`
	Hashtags []string `json:"hashtags" binding:"omitempty,dive,min=1,max=50"`
}

type UpdatePostRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// PostView is a post decorated for responses: author, hashtag names and the
// like count.
type PostView struct {
	models.Post
	Hashtags  []string `json:"hashtags"`
	LikeCount int64    `json:"like_count"`
}

// CreatePost stores the post, lazily creates its hashtags, attaches the join
// rows and writes the POST_CREATE activity row, all in one transaction.
func (s *PostService) CreatePost(ctx context.Context, userID uint, req *CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		UserID:  userID,
		Content: req.Content,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewPostRepository(tx).Create(ctx, post); err != nil {
			return err
		}

		hashtagRepo := repository.NewHashtagRepository(tx)
		seen := make(map[string]bool, len(req.Hashtags))
		for _, raw := range req.Hashtags {
			name := strings.ToLower(strings.TrimSpace(raw))
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true

			hashtag, err := hashtagRepo.GetOrCreate(ctx, name)
			if err != nil {
				return err
			}
			if err := hashtagRepo.AttachToPost(ctx, post.ID, hashtag.ID); err != nil {
				return err
			}
		}

		log := models.NewActivityLog(userID, models.PostRef(post.ID))
		return repository.NewActivityRepository(tx).Create(ctx, log)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.publish(ctx, queue.Event{
		Type:      queue.EventPostCreated,
		UserID:    userID,
		EntityID:  post.ID,
		Timestamp: post.CreatedAt,
	})

	s.logger.WithFields(map[string]interface{}{
		"post_id": post.ID,
		"user_id": userID,
	}).Info("Post created successfully")

	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, postID uint) (*PostView, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("post %w", ErrNotFound)
	}

	views, err := s.buildViews(ctx, []*models.Post{post})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *PostService) ListPosts(ctx context.Context, offset, limit int) ([]*PostView, int64, error) {
	posts, count, err := s.postRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	views, err := s.buildViews(ctx, posts)
	if err != nil {
		return nil, 0, err
	}
	return views, count, nil
}

// ListPostsByHashtag returns an empty page, not an error, for an unknown tag.
func (s *PostService) ListPostsByHashtag(ctx context.Context, tag string, offset, limit int) ([]*PostView, int64, error) {
	hashtag, err := s.hashtagRepo.GetByName(ctx, strings.ToLower(tag))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get hashtag: %w", err)
	}
	if hashtag == nil {
		return []*PostView{}, 0, nil
	}

	posts, count, err := s.postRepo.ListByHashtag(ctx, hashtag.ID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts by hashtag: %w", err)
	}

	views, err := s.buildViews(ctx, posts)
	if err != nil {
		return nil, 0, err
	}
	return views, count, nil
}

func (s *PostService) UpdatePost(ctx context.Context, userID, postID uint, req *UpdatePostRequest) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("post %w", ErrNotFound)
	}
	if post.UserID != userID {
		return nil, fmt.Errorf("%w: you can only update your own posts", ErrForbidden)
	}

	post.Content = req.Content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	s.logger.WithField("post_id", post.ID).Info("Post updated successfully")
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return fmt.Errorf("post %w", ErrNotFound)
	}
	if post.UserID != userID {
		return fmt.Errorf("%w: you can only delete your own posts", ErrForbidden)
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.WithField("post_id", postID).Info("Post deleted successfully")
	return nil
}

// buildViews attaches hashtag names and like counts, one lookup per post.
func (s *PostService) buildViews(ctx context.Context, posts []*models.Post) ([]*PostView, error) {
	views := make([]*PostView, 0, len(posts))
	for _, post := range posts {
		names, err := s.hashtagRepo.NamesByPostID(ctx, post.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get hashtags for post: %w", err)
		}
		likeCount, err := s.likeRepo.CountByPost(ctx, post.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count likes for post: %w", err)
		}
		views = append(views, &PostView{
			Post:      *post,
			Hashtags:  names,
			LikeCount: likeCount,
		})
	}
	return views, nil
}

func (s *PostService) publish(ctx context.Context, event queue.Event) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, fmt.Sprint(event.UserID), event); err != nil {
		s.logger.WithError(err).Error("Failed to publish post event")
	}
}
