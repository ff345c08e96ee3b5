package leaderboardservice

import (
	"context"

	"github.com/greenside-club/golfbot/app/shared/results"
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// Service is the ranking builder surface.
type Service interface {
	RebuildRankings(ctx context.Context) (results.OperationResult, error)
	GetTopRanked(ctx context.Context, n int) (results.OperationResult, error)
	ExportWorkbook(ctx context.Context) (results.OperationResult, error)
	ImportWorkbook(ctx context.Context, data []byte) (results.OperationResult, error)
}

// RankedPlayer is one row of the ranking. Ranks are dense and 1-based;
// players with equal ratings share a rank.
type RankedPlayer struct {
	Rank       int                  `json:"rank"`
	PlayerID   sharedtypes.PlayerID `json:"player_id"`
	PlayerName string               `json:"player_name"`
	Rating     sharedtypes.Rating   `json:"rating"`
}

// IndexEntry is one course side with its difficulty index.
type IndexEntry struct {
	CourseID   sharedtypes.CourseID `json:"course_id"`
	CourseName string               `json:"course_name"`
	Nine       string               `json:"nine"`
	Index      float64              `json:"index"`
}

// RebuildResult is the success payload of RebuildRankings.
type RebuildResult struct {
	Leaderboard      []RankedPlayer `json:"leaderboard"`
	Indices          []IndexEntry   `json:"indices"`
	ScoreCount       int            `json:"score_count"`
	IndicesRewritten bool           `json:"indices_rewritten"`
}

// TopRankedResult is the success payload of GetTopRanked. Table is a
// rendered PNG of the listing.
type TopRankedResult struct {
	Entries []RankedPlayer `json:"entries"`
	Table   []byte         `json:"table,omitempty"`
}

// ExportResult is the success payload of ExportWorkbook.
type ExportResult struct {
	Workbook []byte `json:"workbook"`
}

// ImportResult is the success payload of ImportWorkbook.
type ImportResult struct {
	ScoreRows  int `json:"score_rows"`
	PlayerRows int `json:"player_rows"`
}

// LeaderboardFailure is the shared business-failure payload.
type LeaderboardFailure struct {
	Reason string `json:"reason"`
}
