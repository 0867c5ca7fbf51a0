package app

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"marketAPI/internal/config"
	"marketAPI/internal/database"
	"marketAPI/internal/queue"
	"marketAPI/internal/repository"
	"marketAPI/internal/service"
	"marketAPI/internal/storage"
)

// Deps holds the long-lived clients the server needs after wiring.
type Deps struct {
	DB       *database.DB
	Redis    *redis.Client
	Services *service.Service
}

func (d *Deps) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			log.Printf("failed to close redis: %v", err)
		}
	}
	if err := d.DB.CloseDB(); err != nil {
		log.Printf("failed to close database: %v", err)
	}
}

// RateLimiter returns the Redis client as a script runner, or nil when
// Redis is not configured.
func (d *Deps) RateLimiter() redis.Scripter {
	if d.Redis == nil {
		return nil
	}
	return d.Redis
}

func App(cfg *config.Config) *Deps {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("failed to initialize MinIO: %v", err)
	}

	var publisher queue.Publisher = queue.NoopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		publisher = queue.NewRabbitPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		log.Printf("publishing message events to queue %s", cfg.RabbitMQ.Queue)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, minioClient, publisher)

	return &Deps{
		DB:       db,
		Redis:    connectRedis(cfg.Redis),
		Services: services,
	}
}

// connectRedis returns nil when Redis is not configured or not reachable,
// which turns rate limiting off.
func connectRedis(cfg config.Redis) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("warning: redis at %s unavailable, rate limiting disabled: %v", cfg.Addr, err)
		_ = client.Close()
		return nil
	}

	log.Printf("connected to redis at %s", cfg.Addr)
	return client
}
