package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.opentelemetry.io/otel"

	"github.com/greenside-club/golfbot/app/eventbus"
	courseservice "github.com/greenside-club/golfbot/app/modules/course/application"
	coursehandlers "github.com/greenside-club/golfbot/app/modules/course/infrastructure/handlers"
	coursedb "github.com/greenside-club/golfbot/app/modules/course/infrastructure/repositories"
	leaderboardservice "github.com/greenside-club/golfbot/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/greenside-club/golfbot/app/modules/leaderboard/infrastructure/handlers"
	leaderboardqueue "github.com/greenside-club/golfbot/app/modules/leaderboard/infrastructure/queue"
	leaderboarddb "github.com/greenside-club/golfbot/app/modules/leaderboard/infrastructure/repositories"
	playerservice "github.com/greenside-club/golfbot/app/modules/player/application"
	playerhandlers "github.com/greenside-club/golfbot/app/modules/player/infrastructure/handlers"
	playerdb "github.com/greenside-club/golfbot/app/modules/player/infrastructure/repositories"
	scoreservice "github.com/greenside-club/golfbot/app/modules/score/application"
	scorehandlers "github.com/greenside-club/golfbot/app/modules/score/infrastructure/handlers"
	scoredb "github.com/greenside-club/golfbot/app/modules/score/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/attr"
	"github.com/greenside-club/golfbot/app/shared/observability"
	"github.com/greenside-club/golfbot/config"
)

// App wires configuration, storage, messaging, and the module services.
type App struct {
	cfg           *config.Config
	logger        *slog.Logger
	db            *bun.DB
	eventBus      eventbus.EventBus
	router        *message.Router
	queue         leaderboardqueue.QueueService
	metricsServer *observability.Server
}

// NewApp initializes every layer. Nothing runs until Run is called.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	tracer := otel.Tracer("golfbot")

	courseRepo := coursedb.New(db)
	scoreRepo := scoredb.New(db)
	playerRepo := playerdb.New(db)
	store := leaderboarddb.New(db)

	courseSvc := courseservice.NewCourseService(courseRepo, logger, metrics, tracer)
	scoreSvc := scoreservice.NewScoreService(scoreRepo, courseRepo, logger, metrics, tracer)
	playerSvc := playerservice.NewPlayerService(playerRepo, logger, metrics, tracer)
	leaderboardSvc := leaderboardservice.NewLeaderboardService(store, logger, metrics, tracer)

	queue, err := leaderboardqueue.NewService(ctx, db, logger, cfg.Postgres.DSN, metrics, leaderboardSvc, bus)
	if err != nil {
		bus.Close()
		db.Close()
		return nil, err
	}

	router, err := newRouter(logger)
	if err != nil {
		bus.Close()
		db.Close()
		return nil, err
	}
	registerHandlers(router, bus, commandHandlers{
		score:       scorehandlers.NewScoreHandlers(scoreSvc, logger, metrics, tracer),
		player:      playerhandlers.NewPlayerHandlers(playerSvc, logger, metrics, tracer),
		course:      coursehandlers.NewCourseHandlers(courseSvc, logger, metrics, tracer),
		leaderboard: leaderboardhandlers.NewLeaderboardHandlers(leaderboardSvc, queue, logger, metrics, tracer),
	})

	return &App{
		cfg:           cfg,
		logger:        logger,
		db:            db,
		eventBus:      bus,
		router:        router,
		queue:         queue,
		metricsServer: observability.NewServer(cfg.Observability.MetricsAddress, registry, logger),
	}, nil
}

// Run starts the metrics server, the job queue, and the message router, and
// blocks until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	go a.metricsServer.Start()

	if err := a.queue.Start(ctx); err != nil {
		return fmt.Errorf("failed to start queue: %w", err)
	}

	a.logger.InfoContext(ctx, "Application started",
		attr.String("metrics_address", a.cfg.Observability.MetricsAddress),
		attr.String("environment", a.cfg.Observability.Environment),
	)
	return a.router.Run(ctx)
}

// Close shuts everything down in reverse start order.
func (a *App) Close() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	record(a.router.Close())
	record(a.queue.Stop(shutdownCtx))
	record(a.eventBus.Close())
	record(a.metricsServer.Shutdown(shutdownCtx))
	record(a.db.Close())
	return firstErr
}
