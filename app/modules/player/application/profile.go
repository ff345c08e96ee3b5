package playerservice

import (
	"context"
	"errors"
	"sort"

	playerdb "github.com/greenside-club/golfbot/app/modules/player/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/attr"
	"github.com/greenside-club/golfbot/app/shared/results"
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// favoriteCharacterCount caps the usage breakdown at the three most-played
// characters.
const favoriteCharacterCount = 3

// GetProfile assembles a player's profile: current rating, favorite
// characters by usage share, per-course raw averages, and a rendered rating
// history chart.
func (s *PlayerService) GetProfile(ctx context.Context, playerID sharedtypes.PlayerID) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "GetProfile", func(ctx context.Context) (results.OperationResult, error) {
		player, err := s.repo.GetPlayer(ctx, playerID)
		if err != nil {
			if errors.Is(err, playerdb.ErrNotFound) {
				return results.OperationResult{
					Failure: &PlayerFailure{PlayerID: playerID, Reason: "player has no verified scores"},
				}, nil
			}
			return results.OperationResult{}, err
		}

		rows, err := s.repo.PlayerScores(ctx, playerID)
		if err != nil {
			return results.OperationResult{}, err
		}

		chartPNG, err := ratingHistoryChart(rows)
		if err != nil {
			s.logger.WarnContext(ctx, "Rating chart rendering failed",
				attr.ExtractCorrelationID(ctx),
				attr.Int64("player_id", int64(playerID)),
				attr.Error(err),
			)
			chartPNG = nil
		}

		return results.OperationResult{Success: &ProfileResult{
			PlayerID:           playerID,
			PlayerName:         player.PlayerName,
			Rating:             player.Rating,
			Rounds:             len(rows),
			FavoriteCharacters: favoriteCharacters(rows),
			CourseAverages:     courseAverages(rows),
			RatingChart:        chartPNG,
		}}, nil
	})
}

// favoriteCharacters ranks characters by rounds played, ties broken by name.
func favoriteCharacters(rows []playerdb.ScoreRow) []CharacterUsage {
	if len(rows) == 0 {
		return nil
	}

	counts := make(map[sharedtypes.Character]int)
	for _, row := range rows {
		counts[row.Character]++
	}

	usage := make([]CharacterUsage, 0, len(counts))
	for character, rounds := range counts {
		usage = append(usage, CharacterUsage{
			Character: character,
			Rounds:    rounds,
			Percent:   100 * float64(rounds) / float64(len(rows)),
		})
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].Rounds == usage[j].Rounds {
			return usage[i].Character < usage[j].Character
		}
		return usage[i].Rounds > usage[j].Rounds
	})

	if len(usage) > favoriteCharacterCount {
		usage = usage[:favoriteCharacterCount]
	}
	return usage
}

// courseAverages computes the mean raw score per course side, sorted by
// course name then nine for stable output.
func courseAverages(rows []playerdb.ScoreRow) []CourseAverage {
	type bucket struct {
		rounds int
		total  int
	}
	type key struct {
		courseName string
		nine       string
	}

	buckets := make(map[key]bucket)
	for _, row := range rows {
		k := key{courseName: row.CourseName, nine: row.Nine}
		b := buckets[k]
		b.rounds++
		b.total += int(row.Score)
		buckets[k] = b
	}

	averages := make([]CourseAverage, 0, len(buckets))
	for k, b := range buckets {
		averages = append(averages, CourseAverage{
			CourseName:   k.courseName,
			Nine:         k.nine,
			Rounds:       b.rounds,
			AverageScore: float64(b.total) / float64(b.rounds),
		})
	}
	sort.Slice(averages, func(i, j int) bool {
		if averages[i].CourseName == averages[j].CourseName {
			return averages[i].Nine < averages[j].Nine
		}
		return averages[i].CourseName < averages[j].CourseName
	})
	return averages
}
