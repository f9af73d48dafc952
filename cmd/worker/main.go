package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/socialhub/socialhub/internal/config"
	"github.com/socialhub/socialhub/pkg/cache"
	"github.com/socialhub/socialhub/pkg/logger"
	"github.com/socialhub/socialhub/pkg/queue"
)

// The worker consumes activity events and keeps per-type daily counters in
// redis. Counters are best-effort observability, not part of the serving path.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.NewLogger()
	logger.Info("Starting activity worker...")

	if !cfg.Kafka.Enabled || !cfg.Redis.Enabled {
		logger.Fatal("Worker requires both kafka and redis to be enabled")
	}

	redisClient := cache.NewRedisClient(
		cfg.Redis.Addr(),
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
		cfg.Redis.MinIdleConns,
	)
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()); err != nil {
		logger.WithError(err).Fatal("Failed to connect to Redis")
	}

	consumer := queue.NewKafkaConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topics.ActivityEvents, "activity-counter-group")
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down worker...")
		cancel()
	}()

	err = consumer.Subscribe(ctx, func(event queue.Event) error {
		day := event.Timestamp.Format("2006-01-02")
		key := fmt.Sprintf("activity:%s:%s", event.Type, day)

		if _, err := redisClient.IncrBy(ctx, key, 1); err != nil {
			logger.WithError(err).Error("Failed to increment activity counter")
			return err
		}
		// counters are only interesting for a few days
		if err := redisClient.Expire(ctx, key, 7*24*time.Hour); err != nil {
			logger.WithError(err).Warn("Failed to set counter TTL")
		}

		logger.WithFields(map[string]interface{}{
			"type":    event.Type,
			"user_id": event.UserID,
		}).Debug("Counted activity event")
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("Worker stopped with error")
	}

	logger.Info("Worker exited")
}
