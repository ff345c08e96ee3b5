package app

import (
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/greenside-club/golfbot/app/eventbus"
	coursehandlers "github.com/greenside-club/golfbot/app/modules/course/infrastructure/handlers"
	leaderboardhandlers "github.com/greenside-club/golfbot/app/modules/leaderboard/infrastructure/handlers"
	playerhandlers "github.com/greenside-club/golfbot/app/modules/player/infrastructure/handlers"
	scorehandlers "github.com/greenside-club/golfbot/app/modules/score/infrastructure/handlers"
	"github.com/greenside-club/golfbot/app/shared/events"
)

// newRouter builds the watermill router with the standard middleware chain.
func newRouter(logger *slog.Logger) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, err
	}

	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			Logger:          watermill.NewSlogLogger(logger),
		}.Middleware,
	)
	return router, nil
}

type commandHandlers struct {
	score       scorehandlers.Handlers
	player      playerhandlers.Handlers
	course      coursehandlers.Handlers
	leaderboard leaderboardhandlers.Handlers
}

// registerHandlers binds each command subject to its handler. Every handler
// publishes its outcome on the subject's result topic.
func registerHandlers(router *message.Router, bus eventbus.EventBus, handlers commandHandlers) {
	bind := func(subject string, handler message.HandlerFunc) {
		router.AddHandler(
			subject,
			subject,
			bus.Subscriber(),
			events.Result(subject),
			bus.Publisher(),
			handler,
		)
	}

	bind(events.ScoreSubmit, handlers.score.HandleSubmit)
	bind(events.ScoreVerify, handlers.score.HandleVerify)
	bind(events.ScoreDiscard, handlers.score.HandleDiscard)

	bind(events.PlayerNameChange, handlers.player.HandleNameChange)
	bind(events.PlayerProfile, handlers.player.HandleProfile)
	bind(events.PlayerRecent, handlers.player.HandleRecent)

	bind(events.LeaderboardRecompute, handlers.leaderboard.HandleRecompute)
	bind(events.LeaderboardTop, handlers.leaderboard.HandleTop)
	bind(events.LeaderboardExport, handlers.leaderboard.HandleExport)
	bind(events.LeaderboardImport, handlers.leaderboard.HandleImport)

	bind(events.CourseIndices, handlers.course.HandleIndices)
	bind(events.CoursePick, handlers.course.HandlePick)
}
