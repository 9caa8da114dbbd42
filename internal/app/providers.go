package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/kitchen-stock/internal/alert"
	alerthttp "github.com/tair/kitchen-stock/internal/alert/delivery/http"
	"github.com/tair/kitchen-stock/internal/config"
	"github.com/tair/kitchen-stock/internal/expiry"
	"github.com/tair/kitchen-stock/internal/order/verification"
	"github.com/tair/kitchen-stock/internal/replenishment"
	"github.com/tair/kitchen-stock/internal/scheduler"
	jobhttp "github.com/tair/kitchen-stock/internal/scheduler/delivery/http"
	"github.com/tair/kitchen-stock/kafka"
	"github.com/tair/kitchen-stock/pkg/auth"
	"github.com/tair/kitchen-stock/pkg/clock"
	"github.com/tair/kitchen-stock/pkg/health"
	"github.com/tair/kitchen-stock/pkg/lock"
	"github.com/tair/kitchen-stock/pkg/logger"
	"github.com/tair/kitchen-stock/pkg/middleware"
)

// AlertQueue is the head chef's point-to-point channel.
type AlertQueue interface {
	alert.Publisher
	alert.Inbox
}

// ProvideClock provides the wall clock
func ProvideClock() clock.Clock {
	return clock.Real{}
}

// ProvideMetricsRegistry provides a registry carrying the Go runtime and
// process collectors.
func ProvideMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideRedisClient connects to Redis when REDIS_ADDR is set. Without it the
// client is nil and locks stay process-local.
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Redis.Enabled() {
		return nil, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Logger.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")
	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to close redis client")
		}
	}
	return client, cleanup, nil
}

// ProvideLocker provides Redis locks when a client is configured
func ProvideLocker(client *redis.Client) lock.Locker {
	if client == nil {
		logger.Logger.Info().Msg("Using process-local locks")
		return lock.NewLocalLocker()
	}
	return lock.NewRedisLocker(client, "kitchen:")
}

// ProvideRateLimiter returns nil, meaning no limit, without Redis
func ProvideRateLimiter(cfg *config.Config, client *redis.Client) *middleware.RateLimiter {
	if client == nil || cfg.RateLimit.Requests <= 0 {
		return nil
	}
	return middleware.NewRateLimiter(client, cfg.RateLimit.Requests, cfg.RateLimit.Window)
}

// ProvideAlertQueue provides the RabbitMQ queue, or an in-memory one when
// ALERT_QUEUE_DRIVER=memory.
func ProvideAlertQueue(cfg *config.Config) (AlertQueue, func(), error) {
	if cfg.RabbitMQ.Driver != config.DriverRabbitMQ {
		logger.Logger.Info().Msg("Using in-memory alert queue")
		return alert.NewMemoryQueue(), func() {}, nil
	}

	queue, err := alert.NewRabbitQueue(cfg.RabbitMQ.URL)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := queue.Close(); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to close rabbitmq connection")
		}
	}
	return queue, cleanup, nil
}

// ProvideInbox exposes the queue's drain side
func ProvideInbox(queue AlertQueue) alert.Inbox {
	return queue
}

// ProvideAlertPublisher fans alerts out to the queue and, when Kafka brokers
// are configured, to the broadcast topic.
func ProvideAlertPublisher(cfg *config.Config, reg prometheus.Registerer, queue AlertQueue) (alert.Publisher, func(), error) {
	channels := []alert.Channel{{Name: "queue", Publisher: queue}}
	cleanup := func() {}

	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.AlertTopic)
		if err != nil {
			return nil, nil, err
		}
		channels = append(channels, alert.Channel{Name: "kafka", Publisher: alert.NewBroadcast(producer)})
		cleanup = func() {
			if err := producer.Close(); err != nil {
				logger.Logger.Warn().Err(err).Msg("Failed to close kafka producer")
			}
		}
	}

	return alert.NewFanout(reg, channels...), cleanup, nil
}

// ProvideChecker provides the delivery check
func ProvideChecker(cfg *config.Config) verification.Checker {
	return verification.NewRandomChecker(cfg.Jobs.CheckPassRate)
}

// ProvideTokenManager provides JWT validation
func ProvideTokenManager(cfg *config.Config) *auth.Manager {
	return auth.NewManager(cfg.JWT.Secret, cfg.JWT.Validity)
}

// ProvideGormHealthChecker probes the database, Redis and the alert queue
func ProvideGormHealthChecker(cfg *config.Config, db *gorm.DB, client *redis.Client, queue AlertQueue) *health.Checker {
	database := health.Probe{
		Name: "database",
		Check: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	return health.NewChecker(cfg.Service.Name, append(infrastructureProbes(client, queue), database)...)
}

// ProvideMemoryHealthChecker probes Redis and the alert queue
func ProvideMemoryHealthChecker(cfg *config.Config, client *redis.Client, queue AlertQueue) *health.Checker {
	return health.NewChecker(cfg.Service.Name, infrastructureProbes(client, queue)...)
}

func infrastructureProbes(client *redis.Client, queue AlertQueue) []health.Probe {
	var probes []health.Probe
	if client != nil {
		probes = append(probes, health.Probe{
			Name: "redis",
			Check: func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			},
		})
	}
	if q, ok := queue.(interface{ IsAlive() bool }); ok {
		probes = append(probes, health.Probe{
			Name: "alert_queue",
			Check: func(context.Context) error {
				if !q.IsAlive() {
					return errors.New("rabbitmq connection closed")
				}
				return nil
			},
		})
	}
	return probes
}

// ProvideScheduler schedules the replenishment and expiry jobs. Every tick
// takes a job lock so only one replica runs it.
func ProvideScheduler(
	cfg *config.Config,
	metrics *scheduler.Metrics,
	locker lock.Locker,
	clk clock.Clock,
	replenish *replenishment.Job,
	watchdog *expiry.Watchdog,
) (*scheduler.Registry, error) {
	opts := []scheduler.Option{
		scheduler.WithLocker(locker, cfg.Jobs.LockTTL),
		scheduler.WithClock(clk),
	}

	replenishTask, err := scheduler.NewTask(replenish, cfg.Jobs.ReplenishmentSchedule, metrics, opts...)
	if err != nil {
		return nil, err
	}
	expiryTask, err := scheduler.NewTask(watchdog, cfg.Jobs.ExpiryWatchSchedule, metrics, opts...)
	if err != nil {
		return nil, err
	}

	return scheduler.NewRegistry(replenishTask, expiryTask), nil
}

// Wire sets
var PlatformSet = wire.NewSet(
	ProvideClock,
	ProvideMetricsRegistry,
	wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
	wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
	ProvideRedisClient,
	ProvideLocker,
	ProvideRateLimiter,
	ProvideTokenManager,
	wire.Bind(new(middleware.TokenValidator), new(*auth.Manager)),
	middleware.NewAuthenticator,
	middleware.NewMetrics,
)

var AlertSet = wire.NewSet(
	ProvideAlertQueue,
	ProvideInbox,
	ProvideAlertPublisher,
	alerthttp.NewAlertHandler,
)

var JobSet = wire.NewSet(
	replenishment.NewJob,
	expiry.NewWatchdog,
	scheduler.NewMetrics,
	ProvideScheduler,
	jobhttp.NewJobHandler,
)
