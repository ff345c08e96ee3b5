package playerservice

import (
	"context"

	"github.com/greenside-club/golfbot/app/shared/results"
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// Service is the player profile surface.
type Service interface {
	ChangeDisplayName(ctx context.Context, playerID sharedtypes.PlayerID, playerName string) (results.OperationResult, error)
	GetProfile(ctx context.Context, playerID sharedtypes.PlayerID) (results.OperationResult, error)
	GetRecentScores(ctx context.Context, playerID sharedtypes.PlayerID) (results.OperationResult, error)
}

// NameChangeResult is the success payload of ChangeDisplayName.
type NameChangeResult struct {
	PlayerID   sharedtypes.PlayerID `json:"player_id"`
	PlayerName string               `json:"player_name"`
}

// CharacterUsage is one entry of a profile's favorite-character breakdown.
type CharacterUsage struct {
	Character sharedtypes.Character `json:"character"`
	Rounds    int                   `json:"rounds"`
	Percent   float64               `json:"percent"`
}

// CourseAverage is a player's mean raw score on one course side.
type CourseAverage struct {
	CourseName   string  `json:"course_name"`
	Nine         string  `json:"nine"`
	Rounds       int     `json:"rounds"`
	AverageScore float64 `json:"average_score"`
}

// ProfileResult is the success payload of GetProfile. RatingChart is a
// rendered PNG of the player's rating history.
type ProfileResult struct {
	PlayerID           sharedtypes.PlayerID `json:"player_id"`
	PlayerName         string               `json:"player_name"`
	Rating             sharedtypes.Rating   `json:"rating"`
	Rounds             int                  `json:"rounds"`
	FavoriteCharacters []CharacterUsage     `json:"favorite_characters"`
	CourseAverages     []CourseAverage      `json:"course_averages"`
	RatingChart        []byte               `json:"rating_chart,omitempty"`
}

// RecentScore is one row of a recent-scores listing.
type RecentScore struct {
	Timestamp       int64                     `json:"timestamp"`
	CourseName      string                    `json:"course_name"`
	Nine            string                    `json:"nine"`
	Character       sharedtypes.Character     `json:"character"`
	Score           sharedtypes.Score         `json:"score"`
	DifficultyIndex float64                   `json:"difficulty_index"`
	AdjustedScore   sharedtypes.AdjustedScore `json:"adjusted_score"`
	Rating          sharedtypes.Rating        `json:"rating"`
}

// RecentScoresResult is the success payload of GetRecentScores.
type RecentScoresResult struct {
	PlayerID sharedtypes.PlayerID `json:"player_id"`
	Scores   []RecentScore        `json:"scores"`
}

// PlayerFailure is the shared business-failure payload for player operations.
type PlayerFailure struct {
	PlayerID sharedtypes.PlayerID `json:"player_id"`
	Reason   string               `json:"reason"`
}
