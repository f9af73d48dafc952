package services

import (
	"context"
	"fmt"

	"github.com/socialhub/socialhub/internal/config"
	"github.com/socialhub/socialhub/internal/repository"
	"github.com/socialhub/socialhub/pkg/cache"
	"github.com/socialhub/socialhub/pkg/logger"
)

type FeedService struct {
	postRepo    *repository.PostRepository
	followRepo  *repository.FollowRepository
	likeRepo    *repository.LikeRepository
	hashtagRepo *repository.HashtagRepository
	cache       *cache.RedisClient
	config      *config.FeedConfig
	logger      *logger.Logger
}

func NewFeedService(
	postRepo *repository.PostRepository,
	followRepo *repository.FollowRepository,
	likeRepo *repository.LikeRepository,
	hashtagRepo *repository.HashtagRepository,
	cache *cache.RedisClient,
	config *config.FeedConfig,
	logger *logger.Logger,
) *FeedService {
	return &FeedService{
		postRepo:    postRepo,
		followRepo:  followRepo,
		likeRepo:    likeRepo,
		hashtagRepo: hashtagRepo,
		cache:       cache,
		config:      config,
		logger:      logger,
	}
}

type feedPage struct {
	Posts []*PostView `json:"posts"`
	Total int64       `json:"total"`
}

// ResolveFeedSources returns the ids whose posts appear in the user's feed:
// everyone the user follows plus the user themself. The result is never
// empty and holds no duplicates; order carries no meaning.
func (s *FeedService) ResolveFeedSources(ctx context.Context, userID uint) ([]uint, error) {
	followedIDs, err := s.followRepo.FollowedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve feed sources: %w", err)
	}

	sources := make([]uint, 0, len(followedIDs)+1)
	seen := map[uint]bool{userID: true}
	sources = append(sources, userID)
	for _, id := range followedIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		sources = append(sources, id)
	}
	return sources, nil
}

// GetFeed assembles one page of the user's feed: posts by the resolved
// sources, newest first, each decorated with author, hashtags and like count.
// Total counts every matching post, not just the page.
func (s *FeedService) GetFeed(ctx context.Context, userID uint, offset, limit int) ([]*PostView, int64, error) {
	cacheKey := fmt.Sprintf("feed:%d:%d:%d", userID, limit, offset)
	if s.cache != nil {
		var page feedPage
		if err := s.cache.GetJSON(ctx, cacheKey, &page); err == nil {
			return page.Posts, page.Total, nil
		}
	}

	sources, err := s.ResolveFeedSources(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	posts, count, err := s.postRepo.ListByAuthors(ctx, sources, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get feed posts: %w", err)
	}

	views := make([]*PostView, 0, len(posts))
	for _, post := range posts {
		names, err := s.hashtagRepo.NamesByPostID(ctx, post.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to get hashtags for post: %w", err)
		}
		likeCount, err := s.likeRepo.CountByPost(ctx, post.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to count likes for post: %w", err)
		}
		views = append(views, &PostView{
			Post:      *post,
			Hashtags:  names,
			LikeCount: likeCount,
		})
	}

	if s.cache != nil {
		page := feedPage{Posts: views, Total: count}
		if err := s.cache.SetJSON(ctx, cacheKey, page, s.config.CacheTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache feed page")
		}
	}

	return views, count, nil
}
