package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/greenside-club/golfbot/app/shared/attr"
)

// initializeStreams creates the JetStream streams the backend consumes and
// publishes on. Idempotent across restarts.
func initializeStreams(ctx context.Context, js jetstream.JetStream, logger *slog.Logger) error {
	streamConfigs := []jetstream.StreamConfig{
		{
			Name:     "score",
			Subjects: []string{"score.>"},
		},
		{
			Name:     "player",
			Subjects: []string{"player.>"},
		},
		{
			Name:     "leaderboard",
			Subjects: []string{"leaderboard.>"},
		},
		{
			Name:     "course",
			Subjects: []string{"course.>"},
		},
	}

	for _, streamConfig := range streamConfigs {
		_, err := js.Stream(ctx, streamConfig.Name)
		if errors.Is(err, jetstream.ErrStreamNotFound) {
			if _, err := js.CreateStream(ctx, streamConfig); err != nil {
				logger.Error("Failed to create JetStream stream",
					attr.String("stream", streamConfig.Name),
					attr.Error(err),
				)
				return fmt.Errorf("failed to create stream %s: %w", streamConfig.Name, err)
			}
			logger.Info("Created JetStream stream", attr.String("stream", streamConfig.Name))
		} else if err != nil {
			return fmt.Errorf("failed to check stream %s: %w", streamConfig.Name, err)
		}
	}
	return nil
}
