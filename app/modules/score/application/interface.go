package scoreservice

import (
	"context"

	"github.com/greenside-club/golfbot/app/shared/results"
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// Service is the submission and verification workflow for scores.
type Service interface {
	// Submit puts a raw score on the pending queue and returns its token.
	Submit(ctx context.Context, input SubmitInput) (results.OperationResult, error)
	// Lookup returns the pending submission for a token.
	Lookup(ctx context.Context, token string) (results.OperationResult, error)
	// Verify promotes a pending submission into the ledger, computing its
	// adjusted score and rating snapshot in one atomic unit.
	Verify(ctx context.Context, token string) (results.OperationResult, error)
	// Discard removes a pending submission without ledger effect.
	Discard(ctx context.Context, token string) (results.OperationResult, error)
	// QueueIsEmpty is a cheap best-effort check used to short-circuit
	// verification attempts.
	QueueIsEmpty(ctx context.Context) (bool, error)
}

// SubmitInput carries a new score submission from the front end.
type SubmitInput struct {
	CourseName string                `json:"course_name"`
	Nine       string                `json:"nine"`
	PlayerID   sharedtypes.PlayerID  `json:"player_id"`
	PlayerName string                `json:"player_name"`
	Character  sharedtypes.Character `json:"character"`
	Score      sharedtypes.Score     `json:"score"`
}

// SubmitResult is the success payload for Submit.
type SubmitResult struct {
	Token      string                `json:"token"`
	CourseName string                `json:"course_name"`
	Nine       string                `json:"nine"`
	PlayerName string                `json:"player_name"`
	Character  sharedtypes.Character `json:"character"`
	Score      sharedtypes.Score     `json:"score"`
}

// PendingResult is the success payload for Lookup.
type PendingResult struct {
	Token      string                `json:"token"`
	CreatedAt  int64                 `json:"created_at"`
	CourseID   sharedtypes.CourseID  `json:"course_id"`
	PlayerID   sharedtypes.PlayerID  `json:"player_id"`
	PlayerName string                `json:"player_name"`
	Character  sharedtypes.Character `json:"character"`
	Score      sharedtypes.Score     `json:"score"`
}

// VerifyResult is the success payload for Verify.
type VerifyResult struct {
	Token         string                    `json:"token"`
	RoundID       sharedtypes.RoundID       `json:"round_id"`
	PlayerID      sharedtypes.PlayerID      `json:"player_id"`
	AdjustedScore sharedtypes.AdjustedScore `json:"adjusted_score"`
	Rating        sharedtypes.Rating        `json:"rating"`
}

// DiscardResult is the success payload for Discard.
type DiscardResult struct {
	Token string `json:"token"`
}

// ScoreFailure is the failure payload for score operations.
type ScoreFailure struct {
	Token  string `json:"token,omitempty"`
	Reason string `json:"reason"`
}
