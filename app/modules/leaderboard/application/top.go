package leaderboardservice

import (
	"context"

	"github.com/greenside-club/golfbot/app/shared/attr"
	"github.com/greenside-club/golfbot/app/shared/results"
)

// GetTopRanked returns the first n rows of the current ranking with a
// rendered PNG table. Reads the stored ratings as-is; it does not trigger a
// rebuild.
func (s *LeaderboardService) GetTopRanked(ctx context.Context, n int) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "GetTopRanked", func(ctx context.Context) (results.OperationResult, error) {
		if n <= 0 {
			return results.OperationResult{
				Failure: &LeaderboardFailure{Reason: "count must be positive"},
			}, nil
		}

		players, err := s.store.ListPlayers(ctx)
		if err != nil {
			return results.OperationResult{}, err
		}

		ranking := rankPlayers(players)
		if len(ranking) > n {
			ranking = ranking[:n]
		}

		table, err := renderRankingTable(ranking)
		if err != nil {
			s.logger.WarnContext(ctx, "Ranking table rendering failed",
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			table = nil
		}

		return results.OperationResult{Success: &TopRankedResult{
			Entries: ranking,
			Table:   table,
		}}, nil
	})
}
