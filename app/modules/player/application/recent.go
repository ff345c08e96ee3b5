package playerservice

import (
	"context"

	"github.com/greenside-club/golfbot/app/shared/results"
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// recentScoresLimit caps the listing at the rounds that can still influence
// the player's rating.
const recentScoresLimit = 40

// GetRecentScores returns a player's most recent verified rounds, newest
// first. An empty listing is a success, not a failure.
func (s *PlayerService) GetRecentScores(ctx context.Context, playerID sharedtypes.PlayerID) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "GetRecentScores", func(ctx context.Context) (results.OperationResult, error) {
		rows, err := s.repo.PlayerScores(ctx, playerID)
		if err != nil {
			return results.OperationResult{}, err
		}
		if len(rows) > recentScoresLimit {
			rows = rows[:recentScoresLimit]
		}

		scores := make([]RecentScore, len(rows))
		for i, row := range rows {
			scores[i] = RecentScore{
				Timestamp:       row.Timestamp,
				CourseName:      row.CourseName,
				Nine:            row.Nine,
				Character:       row.Character,
				Score:           row.Score,
				DifficultyIndex: row.DifficultyIndex,
				AdjustedScore:   row.AdjustedScore,
				Rating:          row.Rating,
			}
		}

		return results.OperationResult{Success: &RecentScoresResult{
			PlayerID: playerID,
			Scores:   scores,
		}}, nil
	})
}
