package leaderboardservice

import (
	"context"
	"sort"

	courseservice "github.com/greenside-club/golfbot/app/modules/course/application"
	coursedb "github.com/greenside-club/golfbot/app/modules/course/infrastructure/repositories"
	leaderboarddb "github.com/greenside-club/golfbot/app/modules/leaderboard/infrastructure/repositories"
	scoredb "github.com/greenside-club/golfbot/app/modules/score/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/attr"
	"github.com/greenside-club/golfbot/app/shared/rating"
	"github.com/greenside-club/golfbot/app/shared/results"
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// RebuildRankings recomputes everything derived from the raw ledger:
// difficulty indices, adjusted scores, rating snapshots, player ratings, and
// the ranking itself. One serializable transaction; an abort leaves the prior
// state intact and the next scheduled run retries. Running it twice against
// the same ledger is a no-op the second time.
func (s *LeaderboardService) RebuildRankings(ctx context.Context) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "RebuildRankings", func(ctx context.Context) (results.OperationResult, error) {
		var rebuilt *RebuildResult

		err := s.store.Atomic(ctx, func(store leaderboarddb.Store) error {
			var err error
			rebuilt, err = s.rebuild(ctx, store)
			return err
		})
		if err != nil {
			return results.OperationResult{}, err
		}

		s.logger.InfoContext(ctx, "Rankings rebuilt",
			attr.ExtractCorrelationID(ctx),
			attr.Int("players", len(rebuilt.Leaderboard)),
			attr.Int("scores", rebuilt.ScoreCount),
			attr.Bool("indices_rewritten", rebuilt.IndicesRewritten),
		)
		return results.OperationResult{Success: rebuilt}, nil
	})
}

// rebuild runs inside an open transaction; ImportWorkbook shares it after
// replacing the ledger.
func (s *LeaderboardService) rebuild(ctx context.Context, store leaderboarddb.Store) (*RebuildResult, error) {
	courses, err := store.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	scores, err := store.AllScores(ctx)
	if err != nil {
		return nil, err
	}

	roster := make([]sharedtypes.CourseID, len(courses))
	currentIndices := make(map[sharedtypes.CourseID]float64, len(courses))
	for i, course := range courses {
		roster[i] = course.CourseID
		currentIndices[course.CourseID] = course.DifficultyIndex
	}

	samples := make([]courseservice.RoundSample, len(scores))
	for i, score := range scores {
		samples[i] = courseservice.RoundSample{
			PlayerID:  score.PlayerID,
			CourseID:  score.CourseID,
			Timestamp: score.Timestamp,
			RoundID:   score.RoundID,
			Score:     score.Score,
		}
	}

	indices := courseservice.ComputeDifficultyIndices(samples, roster)
	rewritten := indices != nil
	if rewritten {
		if err := store.UpdateDifficultyIndices(ctx, indices); err != nil {
			return nil, err
		}
		currentIndices = indices
	}

	// Every adjusted score follows the current indices, whether or not they
	// just changed; the rewrite keeps the ledger consistent after an import.
	adjustedUpdates := make([]leaderboarddb.AdjustedUpdate, len(scores))
	for i := range scores {
		scores[i].AdjustedScore = sharedtypes.AdjustedScore(
			float64(scores[i].Score) - currentIndices[scores[i].CourseID])
		adjustedUpdates[i] = leaderboarddb.AdjustedUpdate{
			RoundID:       scores[i].RoundID,
			AdjustedScore: scores[i].AdjustedScore,
		}
	}
	if err := store.BulkUpdateAdjusted(ctx, adjustedUpdates); err != nil {
		return nil, err
	}

	ratingUpdates, playerRatings := replayAll(scores)
	if err := store.BulkUpdateRatings(ctx, ratingUpdates); err != nil {
		return nil, err
	}
	if err := store.UpsertPlayerRatings(ctx, playerRatings); err != nil {
		return nil, err
	}

	players, err := store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	return &RebuildResult{
		Leaderboard:      rankPlayers(players),
		Indices:          indexEntries(courses, currentIndices),
		ScoreCount:       len(scores),
		IndicesRewritten: rewritten,
	}, nil
}

// replayAll recomputes every rating snapshot from the chronological ledger
// and returns the per-round updates plus each player's final rating.
func replayAll(scores []scoredb.Score) ([]leaderboarddb.RatingUpdate, []leaderboarddb.PlayerRating) {
	type history struct {
		rounds   []sharedtypes.RoundID
		adjusted []sharedtypes.AdjustedScore
	}

	byPlayer := make(map[sharedtypes.PlayerID]*history)
	var order []sharedtypes.PlayerID
	for _, score := range scores {
		h, ok := byPlayer[score.PlayerID]
		if !ok {
			h = &history{}
			byPlayer[score.PlayerID] = h
			order = append(order, score.PlayerID)
		}
		h.rounds = append(h.rounds, score.RoundID)
		h.adjusted = append(h.adjusted, score.AdjustedScore)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	ratingUpdates := make([]leaderboarddb.RatingUpdate, 0, len(scores))
	playerRatings := make([]leaderboarddb.PlayerRating, 0, len(order))
	for _, playerID := range order {
		h := byPlayer[playerID]
		snapshots := rating.Replay(h.adjusted)
		for i, snapshot := range snapshots {
			ratingUpdates = append(ratingUpdates, leaderboarddb.RatingUpdate{
				RoundID: h.rounds[i],
				Rating:  snapshot,
			})
		}
		playerRatings = append(playerRatings, leaderboarddb.PlayerRating{
			PlayerID: playerID,
			Rating:   snapshots[len(snapshots)-1],
		})
	}
	return ratingUpdates, playerRatings
}

func indexEntries(courses []coursedb.Course, indices map[sharedtypes.CourseID]float64) []IndexEntry {
	entries := make([]IndexEntry, len(courses))
	for i, course := range courses {
		entries[i] = IndexEntry{
			CourseID:   course.CourseID,
			CourseName: course.CourseName,
			Nine:       course.Nine,
			Index:      indices[course.CourseID],
		}
	}
	return entries
}
