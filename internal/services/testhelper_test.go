package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/socialhub/socialhub/internal/config"
	"github.com/socialhub/socialhub/internal/models"
	"github.com/socialhub/socialhub/internal/repository"
	"github.com/socialhub/socialhub/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db *gorm.DB

	userRepo     *repository.UserRepository
	followRepo   *repository.FollowRepository
	postRepo     *repository.PostRepository
	likeRepo     *repository.LikeRepository
	hashtagRepo  *repository.HashtagRepository
	activityRepo *repository.ActivityRepository

	users      *UserService
	follows    *FollowService
	posts      *PostService
	likes      *LikeService
	feed       *FeedService
	activities *ActivityService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "socialhub_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Like{},
		&models.Hashtag{},
		&models.PostHashtag{},
		&models.ActivityLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := logger.NewNopLogger()
	feedCfg := &config.FeedConfig{DefaultPageSize: 10, MaxPageSize: 100}

	env := &testEnv{
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		followRepo:   repository.NewFollowRepository(db),
		postRepo:     repository.NewPostRepository(db),
		likeRepo:     repository.NewLikeRepository(db),
		hashtagRepo:  repository.NewHashtagRepository(db),
		activityRepo: repository.NewActivityRepository(db),
	}

	env.users = NewUserService(env.userRepo, nil, log)
	env.follows = NewFollowService(db, env.userRepo, env.followRepo, nil, log)
	env.posts = NewPostService(db, env.postRepo, env.likeRepo, env.hashtagRepo, nil, log)
	env.likes = NewLikeService(db, env.postRepo, env.likeRepo, nil, log)
	env.feed = NewFeedService(env.postRepo, env.followRepo, env.likeRepo, env.hashtagRepo, nil, feedCfg, log)
	env.activities = NewActivityService(env.userRepo, env.postRepo, env.likeRepo, env.followRepo, env.activityRepo, log)

	return env
}

func (e *testEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()

	user, err := e.users.Register(context.Background(), &RegisterRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "secret123",
	})
	if err != nil {
		t.Fatalf("register user %s: %v", email, err)
	}
	return user
}
