package playerservice

import (
	"context"
	"errors"
	"strings"

	playerdb "github.com/greenside-club/golfbot/app/modules/player/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/attr"
	"github.com/greenside-club/golfbot/app/shared/results"
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// maxNameLength bounds display names in characters, not bytes.
const maxNameLength = 32

// ChangeDisplayName updates a player's display name. Players only exist once
// they have a verified score, so an unknown player is a business failure, not
// an error.
func (s *PlayerService) ChangeDisplayName(ctx context.Context, playerID sharedtypes.PlayerID, playerName string) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "ChangeDisplayName", func(ctx context.Context) (results.OperationResult, error) {
		trimmed := strings.TrimSpace(playerName)
		if trimmed == "" {
			return results.OperationResult{
				Failure: &PlayerFailure{PlayerID: playerID, Reason: "name cannot be empty"},
			}, nil
		}
		if len([]rune(trimmed)) > maxNameLength {
			return results.OperationResult{
				Failure: &PlayerFailure{PlayerID: playerID, Reason: "name cannot exceed 32 characters"},
			}, nil
		}

		err := s.repo.UpdateName(ctx, playerID, trimmed)
		if err != nil {
			if errors.Is(err, playerdb.ErrNotFound) {
				return results.OperationResult{
					Failure: &PlayerFailure{PlayerID: playerID, Reason: "must have at least one verified score"},
				}, nil
			}
			return results.OperationResult{}, err
		}

		s.logger.InfoContext(ctx, "Player display name changed",
			attr.ExtractCorrelationID(ctx),
			attr.Int64("player_id", int64(playerID)),
			attr.String("player_name", trimmed),
		)
		return results.OperationResult{Success: &NameChangeResult{
			PlayerID:   playerID,
			PlayerName: trimmed,
		}}, nil
	})
}
