package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	menuUsecases "github.com/tiffin-inc/tiffin/internal/application/menu/usecases"
	"github.com/tiffin-inc/tiffin/internal/domain/shared/events"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/auth"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/config"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/permission"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/ratelimit"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/scheduler"
	"github.com/tiffin-inc/tiffin/internal/interfaces/http/middleware"
	"github.com/tiffin-inc/tiffin/internal/shared/db"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases,
// handlers and background jobs. It wires everything together and provides
// Shutdown for graceful termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter

	jwtSvc   *auth.JWTService
	enforcer *permission.Enforcer

	schedulerManager *scheduler.SchedulerManager
}

// NewContainer wires the application. Redis is only dialled when enabled in
// cfg; publisher receives the subscription lifecycle events.
func NewContainer(database *gorm.DB, publisher events.Publisher, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     database,
		cfg:    cfg,
		log:    log,
	}

	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initUseCases(db.NewTransactionManager(database), publisher)
	c.initHandlers()

	if err := c.initAuth(); err != nil {
		c.closeRedis()
		return nil, err
	}

	return c, nil
}

// initInfrastructure connects Redis and builds the repositories.
func (c *Container) initInfrastructure() error {
	if c.cfg.Redis.Enabled {
		client, err := initRedis(c.cfg, c.log)
		if err != nil {
			return err
		}
		c.redis = client
	}

	c.repos = newRepositories(c.db, c.redis, c.log)
	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

func (c *Container) initAuth() error {
	c.jwtSvc = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.AccessExpMinutes)
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log)

	enforcer, err := permission.NewEnforcer(c.db, c.cfg.Permission.ModelPath, c.log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := enforcer.InitDefaultPolicies(); err != nil {
		return fmt.Errorf("failed to initialize default permissions: %w", err)
	}
	c.enforcer = enforcer
	c.permissionMiddleware = middleware.NewPermissionMiddleware(enforcer, c.log)

	var limiter middleware.Limiter
	if c.redis != nil && c.cfg.RateLimit.Enabled {
		limiter = ratelimit.NewRedisRateLimiter(c.redis, ratelimit.Limits{
			PerMinute: c.cfg.RateLimit.RequestsPerMinute,
			PerHour:   c.cfg.RateLimit.RequestsPerHour,
		})
	}
	c.rateLimiter = middleware.NewRateLimiter(limiter, c.log)

	return nil
}

// StartScheduler registers the enabled subscription jobs and starts them.
// It does nothing when neither job is enabled.
func (c *Container) StartScheduler() error {
	sub := c.cfg.Subscription
	if !sub.ExpiryEnabled && !sub.AutoRenewEnabled {
		c.log.Infow("subscription jobs disabled")
		return nil
	}

	manager, err := scheduler.NewSchedulerManager(c.log)
	if err != nil {
		return err
	}
	if sub.ExpiryEnabled {
		if err := manager.RegisterExpiryJob(c.ucs.expireSubscriptionsUC, sub.ExpiryInterval); err != nil {
			return err
		}
	}
	if sub.AutoRenewEnabled {
		if err := manager.RegisterAutoRenewJob(c.ucs.renewDueSubscriptionsUC, sub.AutoRenewInterval); err != nil {
			return err
		}
	}

	manager.Start()
	c.schedulerManager = manager
	return nil
}

// ExpiryJob returns the batch that expires subscriptions past their end date.
func (c *Container) ExpiryJob() scheduler.BatchJob {
	return c.ucs.expireSubscriptionsUC
}

// AutoRenewJob returns the batch that renews subscriptions flagged for
// automatic renewal.
func (c *Container) AutoRenewJob() scheduler.BatchJob {
	return c.ucs.renewDueSubscriptionsUC
}

// MenuCreator returns the use case that validates and stores new menus.
func (c *Container) MenuCreator() *menuUsecases.CreateMenuUseCase {
	return c.ucs.createMenuUC
}

func (c *Container) JWTService() *auth.JWTService {
	return c.jwtSvc
}

// GetEngine returns the Gin engine
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}

// Shutdown stops background jobs and releases the Redis connection.
func (c *Container) Shutdown() {
	if c.schedulerManager != nil {
		if err := c.schedulerManager.Stop(); err != nil {
			c.log.Errorw("failed to stop scheduler", "error", err)
		}
	}
	c.closeRedis()
}

func (c *Container) closeRedis() {
	if c.redis == nil {
		return
	}
	if err := c.redis.Close(); err != nil {
		c.log.Warnw("failed to close Redis client", "error", err)
	}
	c.redis = nil
}
