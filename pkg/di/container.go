package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"study-tracker/application/serviceimpl"
	"study-tracker/domain/ports"
	"study-tracker/domain/repositories"
	"study-tracker/domain/services"
	"study-tracker/infrastructure/memory"
	"study-tracker/infrastructure/messaging"
	natspkg "study-tracker/infrastructure/nats"
	"study-tracker/infrastructure/postgres"
	redispkg "study-tracker/infrastructure/redis"
	"study-tracker/interfaces/api/handlers"
	"study-tracker/interfaces/api/middleware"
	"study-tracker/interfaces/api/routes"
	"study-tracker/pkg/config"
	"study-tracker/pkg/logger"
	"study-tracker/pkg/metrics"
	"study-tracker/pkg/scheduler"
	"study-tracker/pkg/utils"
)

const (
	jobEvictLoginLimiter = "evict-login-limiter"
	loginLimiterIdle     = 10 * time.Minute
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB           // nil เมื่อ STORE_DRIVER=memory
	RedisClient    *redispkg.Client   // optional
	NATSClient     *natspkg.Client    // optional
	NATSPublisher  *natspkg.Publisher // optional
	EventScheduler scheduler.EventScheduler

	// Metrics
	Registry *prometheus.Registry
	Metrics  *metrics.Collector

	// Repositories
	UserRepository repositories.UserRepository
	TaskRepository repositories.TaskRepository

	// Ports
	EventPublisher ports.EventPublisher
	StatsCache     ports.StatsCache

	// Services
	TokenIssuer     *utils.TokenIssuer
	UserService     services.UserService
	TaskService     services.TaskService
	PomodoroService *serviceimpl.PomodoroServiceImpl

	LoginLimiter *middleware.LoginRateLimiter
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	c.initMetrics()

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
		Service:    c.Config.App.Name,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

func (c *Container) initMetrics() {
	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.Metrics = metrics.NewCollector(c.Registry)
}

func (c *Container) initInfrastructure() error {
	if c.Config.Store.Driver == config.StoreDriverPostgres {
		db, err := postgres.NewDatabase(c.Config.Database, c.Config.IsDevelopment())
		if err != nil {
			return err
		}
		c.DB = db
		logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

		if err := postgres.Migrate(db); err != nil {
			return err
		}
		logger.Info("Database migrated")
	} else {
		logger.Warn("Using in-memory store; data is lost on restart")
	}

	// Redis (optional - graceful degradation)
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (stats cache disabled)", "error", err)
		} else {
			c.RedisClient = redisClient
			c.StatsCache = redispkg.NewStatsCache(redisClient, c.Config.Redis.StatsTTL)
			logger.Info("Redis client initialized", "url", c.Config.Redis.URL)
		}
	}

	// NATS (optional)
	c.EventPublisher = messaging.NewNoopEventPublisher()
	if c.Config.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{URL: c.Config.NATS.URL})
		if err != nil {
			logger.Warn("NATS client initialization failed (events disabled)", "error", err)
		} else {
			c.NATSClient = natsClient
			c.NATSPublisher = natspkg.NewPublisher(natsClient)
			c.EventPublisher = messaging.NewNATSEventPublisher(c.NATSPublisher)
			logger.Info("NATS client initialized", "url", c.Config.NATS.URL)
		}
	}

	return nil
}

func (c *Container) initRepositories() error {
	if c.DB != nil {
		c.UserRepository = postgres.NewUserRepository(c.DB)
		c.TaskRepository = postgres.NewTaskRepository(c.DB)
	} else {
		c.UserRepository = memory.NewUserRepository()
		c.TaskRepository = memory.NewTaskRepository()
	}
	logger.Info("Repositories initialized", "driver", c.Config.Store.Driver)
	return nil
}

func (c *Container) initServices() error {
	c.TokenIssuer = utils.NewTokenIssuer(c.Config.JWT.Secret, c.Config.JWT.TTL)
	c.UserService = serviceimpl.NewUserService(c.UserRepository, c.TokenIssuer, c.Config.Auth.BcryptCost)

	orderPolicy, err := serviceimpl.NewOrderPolicy(c.Config.Tasks.OrderPolicy, c.TaskRepository)
	if err != nil {
		return fmt.Errorf("task order policy: %w", err)
	}

	c.TaskService = serviceimpl.NewTaskService(c.TaskRepository, orderPolicy, c.StatsCache, c.EventPublisher, c.Metrics)
	c.PomodoroService = serviceimpl.NewPomodoroService(c.TaskRepository, c.EventPublisher, c.Metrics, clockwork.NewRealClock())

	c.LoginLimiter = middleware.NewLoginRateLimiter(c.Config.RateLimit.LoginPerMinute, c.Config.RateLimit.LoginBurst, c.Metrics)

	logger.Info("Services initialized", "order_policy", c.Config.Tasks.OrderPolicy)
	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()

	err := c.EventScheduler.AddJob(jobEvictLoginLimiter, "*/5 * * * *", func() {
		if removed := c.LoginLimiter.Evict(loginLimiterIdle); removed > 0 {
			logger.Debug("Evicted idle login limiters", "count", removed)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", jobEvictLoginLimiter, err)
	}

	c.EventScheduler.Start()
	logger.Info("Event scheduler started", "jobs", len(c.EventScheduler.ListJobs()))
	return nil
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	if c.PomodoroService != nil {
		c.PomodoroService.CloseAll()
		logger.Info("Pomodoro sessions closed")
	}

	if c.EventScheduler != nil && c.EventScheduler.IsRunning() {
		c.EventScheduler.Stop()
		logger.Info("Event scheduler stopped")
	}

	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("Failed to close NATS connection", "error", err)
		} else {
			logger.Info("NATS connection closed")
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database connection", "error", err)
			} else {
				logger.Info("Database connection closed")
			}
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

// HealthChecks probes the optional backends that are connected
func (c *Container) HealthChecks() map[string]routes.HealthCheck {
	checks := make(map[string]routes.HealthCheck)
	if c.DB != nil {
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := c.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if c.RedisClient != nil {
		checks["redis"] = c.RedisClient.Ping
	}
	if c.NATSClient != nil {
		checks["nats"] = func(context.Context) error {
			if !c.NATSClient.IsConnected() {
				return errors.New("not connected")
			}
			return nil
		}
	}
	return checks
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		UserService:     c.UserService,
		TaskService:     c.TaskService,
		PomodoroService: c.PomodoroService,
	}
}
