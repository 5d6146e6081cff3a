// Package main provides the API server entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"accounthub/internal/application/account"
	"accounthub/internal/config"
	httphandler "accounthub/internal/handler/http"
	"accounthub/internal/infrastructure/auth"
	mongodbinfra "accounthub/internal/infrastructure/mongodb"
	"accounthub/internal/infrastructure/ratelimit"
	"accounthub/internal/infrastructure/repository/mongodb"
)

// Container initialization timeouts.
const (
	containerInitTimeout   = 30 * time.Second
	redisPingTimeout       = 5 * time.Second
	mongoDisconnectTimeout = 10 * time.Second
)

// Container holds all application dependencies and manages their lifecycle.
type Container struct {
	// Configuration
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	MongoDB        *mongo.Client
	Redis          *redis.Client
	RateLimitStore *ratelimit.RedisStore

	// Repositories
	UserRepo *mongodb.UserRepository

	// Auth
	Hasher *auth.PasswordHasher
	Tokens *auth.TokenManager

	// Services
	AccountService *account.Service

	// HTTP Handlers
	UserHandler *httphandler.UserHandler
}

// ContainerOption configures the Container.
type ContainerOption func(*Container)

// WithLogger sets a custom logger for the container.
func WithLogger(logger *slog.Logger) ContainerOption {
	return func(c *Container) {
		c.Logger = logger
	}
}

// NewContainer creates a new dependency injection container.
func NewContainer(cfg *config.Config, opts ...ContainerOption) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.setupInfrastructure(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to setup infrastructure: %w", err)
	}

	c.setupServices()
	c.setupHTTPHandlers()

	return c, nil
}

// setupInfrastructure initializes MongoDB and, when configured, Redis.
func (c *Container) setupInfrastructure() error {
	ctx, cancel := context.WithTimeout(context.Background(), containerInitTimeout)
	defer cancel()

	if err := c.setupMongoDB(ctx); err != nil {
		return fmt.Errorf("mongodb: %w", err)
	}

	if c.Config.RateLimitEnabled() {
		if err := c.setupRedis(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	} else {
		c.Logger.Warn("rate limiting disabled, credential routes are unthrottled")
	}

	return nil
}

// setupMongoDB connects to MongoDB and ensures the collection indexes exist.
func (c *Container) setupMongoDB(ctx context.Context) error {
	clientOpts := options.Client().
		ApplyURI(c.Config.MongoDB.URI).
		SetMaxPoolSize(c.Config.MongoDB.MaxPoolSize)

	client, connectErr := mongo.Connect(clientOpts)
	if connectErr != nil {
		return fmt.Errorf("failed to connect: %w", connectErr)
	}

	pingCtx, cancel := context.WithTimeout(ctx, c.Config.MongoDB.Timeout)
	defer cancel()

	if pingErr := client.Ping(pingCtx, nil); pingErr != nil {
		return fmt.Errorf("failed to ping: %w", pingErr)
	}

	c.MongoDB = client

	c.Logger.InfoContext(ctx, "connected to MongoDB",
		slog.String("database", c.Config.MongoDB.Database),
	)

	// The unique username index is the uniqueness constraint the sign-up
	// flow relies on; the service must not start without it.
	db := client.Database(c.Config.MongoDB.Database)
	indexCtx, indexCancel := context.WithTimeout(ctx, c.Config.MongoDB.Timeout)
	defer indexCancel()

	if indexErr := mongodbinfra.EnsureIndexes(indexCtx, db); indexErr != nil {
		return fmt.Errorf("failed to create indexes: %w", indexErr)
	}

	return nil
}

// setupRedis connects to Redis and builds the rate limit counter store.
func (c *Container) setupRedis(ctx context.Context) error {
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if pingErr := c.Redis.Ping(pingCtx).Err(); pingErr != nil {
		return fmt.Errorf("failed to ping: %w", pingErr)
	}

	c.RateLimitStore = ratelimit.NewRedisStore(ratelimit.RedisStoreConfig{
		Client: c.Redis,
	})

	c.Logger.InfoContext(ctx, "connected to Redis",
		slog.String("addr", c.Config.Redis.Addr),
	)

	return nil
}

// setupServices builds the repositories, auth components, and the account service.
func (c *Container) setupServices() {
	collection := c.MongoDB.
		Database(c.Config.MongoDB.Database).
		Collection(mongodbinfra.CollectionUsers)

	c.UserRepo = mongodb.NewUserRepository(collection, mongodb.WithUserRepoLogger(c.Logger))
	c.Hasher = auth.NewPasswordHasher(c.Config.Auth.BcryptCost)
	c.Tokens = auth.NewTokenManager(c.Config.Auth.JWTSecret, c.Config.Auth.TokenTTL)
	c.AccountService = account.NewService(c.UserRepo, c.Hasher, c.Tokens, c.Logger)
}

// setupHTTPHandlers builds the HTTP handlers.
func (c *Container) setupHTTPHandlers() {
	c.UserHandler = httphandler.NewUserHandler(c.AccountService, c.Logger)
}

// Healthy reports whether the storage backends are reachable.
func (c *Container) Healthy(ctx context.Context) bool {
	if c.MongoDB == nil {
		return false
	}
	if err := c.MongoDB.Ping(ctx, nil); err != nil {
		return false
	}
	if c.Redis != nil {
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			return false
		}
	}
	return true
}

// Close releases all container resources.
func (c *Container) Close() error {
	c.Logger.Info("closing container resources...")

	var errs []error

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}

	if c.MongoDB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), mongoDisconnectTimeout)
		defer cancel()
		if err := c.MongoDB.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mongodb disconnect: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	c.Logger.Info("container resources closed")
	return nil
}
