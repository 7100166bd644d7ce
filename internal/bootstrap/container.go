package bootstrap

import (
	"context"

	"taskfeed-be/internal/config"
	"taskfeed-be/internal/controller"
	"taskfeed-be/internal/handler"
	"taskfeed-be/internal/pkg/logger"
	"taskfeed-be/internal/pkg/metrics"
	"taskfeed-be/internal/pkg/serverutils"
	"taskfeed-be/internal/repository/cache"
	"taskfeed-be/internal/repository/contract"
	"taskfeed-be/internal/repository/memory"
	"taskfeed-be/internal/repository/unitofwork"
	"taskfeed-be/internal/service"
	"taskfeed-be/pkg/events"

	pktNats "taskfeed-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

const eventTopic = "events"

type Container struct {
	// Controllers
	MessageController controller.IMessageController
	FollowController  controller.IFollowController
	TeamController    controller.ITeamController

	NotificationHandler *handler.NotificationHandler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger   logger.ILogger
	Registry *prometheus.Registry

	closers []func()
}

// NewContainer wires everything. External infrastructure (NATS, Redis) is
// optional: a failed connection is logged and the in-process fallback is used.
func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	c := &Container{Logger: sysLogger}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.NewMetrics(c.Registry)

	activityLogger := logger.NewIsolatedLogger(cfg.App.ActivityLogPath)
	feedLogger := logger.NewIsolatedLogger(cfg.App.NotificationLogPath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var publisher events.Publisher = service.NewPublisherService(eventTopic, pubSub)
	if cfg.App.EventBus == "nats" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS, using in-process event bus", map[string]interface{}{"error": err.Error()})
		} else {
			if err := natsPub.EnsureStream(context.Background()); err != nil {
				sysLogger.Warn("Bootstrap", "Failed to ensure NATS stream", map[string]interface{}{"error": err.Error()})
			}
			publisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}
	c.ConsumerService = service.NewActivityConsumer(pubSub, eventTopic, activityLogger, appMetrics)

	// 3. Idempotency store
	var idemStore contract.IdempotencyRepository = memory.NewIdempotencyRepository(cfg.Idempotency.TTL)
	if cfg.App.RedisURL != "" {
		rdb, err := cache.NewRedisClient(cfg.App.RedisURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to Redis, keeping idempotency keys in memory", map[string]interface{}{"error": err.Error()})
		} else {
			idemStore = cache.NewRedisIdempotencyRepository(rdb)
			c.closers = append(c.closers, func() { _ = rdb.Close() })
		}
	}
	idempotency := serverutils.Idempotency(idemStore, cfg.Idempotency.TTL, sysLogger)

	// 4. Services
	edgeLedger := service.NewEdgeLedgerService(uowFactory, service.SystemClock)
	threads := service.NewThreadService(uowFactory, cfg.Feed, service.SystemClock)
	memberships := service.NewMembershipService(uowFactory, service.SystemClock)
	notifications := service.NewNotificationService(uowFactory, feedLogger, appMetrics, service.SystemClock)

	interactions := service.NewInteractionService(
		uowFactory,
		edgeLedger,
		threads,
		memberships,
		notifications,
		publisher,
		appMetrics,
		sysLogger,
	)

	// 5. Controllers
	c.MessageController = controller.NewMessageController(interactions, idempotency)
	c.FollowController = controller.NewFollowController(interactions)
	c.TeamController = controller.NewTeamController(interactions, idempotency)
	c.NotificationHandler = handler.NewNotificationHandler(notifications)

	return c
}

// Close releases bus and cache connections in reverse order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
