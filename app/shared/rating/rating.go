// Package rating computes player ratings from adjusted score history.
//
// A rating is the arithmetic mean of a player's most recent adjusted scores,
// capped at a rolling window of 40 rounds. Players with fewer than 6 rounds
// are unrated. The functions here are pure: both the verification workflow
// and the ranking rebuild use them, so the two can never disagree.
package rating

import (
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

const (
	// MinRequiredScores is the minimum sample size before a player is rated.
	MinRequiredScores = 6

	// RollingWindow is the maximum number of recent scores a rating covers.
	RollingWindow = 40
)

// Calculate returns the rating for a player's adjusted scores, ordered oldest
// first. Fewer than MinRequiredScores scores yield sharedtypes.Unrated.
func Calculate(adjusted []sharedtypes.AdjustedScore) sharedtypes.Rating {
	if len(adjusted) < MinRequiredScores {
		return sharedtypes.Unrated
	}

	window := adjusted
	if len(adjusted) > RollingWindow {
		window = adjusted[len(adjusted)-RollingWindow:]
	}

	var sum float64
	for _, score := range window {
		sum += float64(score)
	}
	return sharedtypes.Rating(sum / float64(len(window)))
}

// Replay computes the rating as it stood after every round: element k is
// Calculate applied to the first k+1 scores. The snapshot at position k is a
// function of the prefix only, so appending scores never changes earlier
// entries.
func Replay(adjusted []sharedtypes.AdjustedScore) []sharedtypes.Rating {
	snapshots := make([]sharedtypes.Rating, len(adjusted))
	for k := range adjusted {
		snapshots[k] = Calculate(adjusted[:k+1])
	}
	return snapshots
}
