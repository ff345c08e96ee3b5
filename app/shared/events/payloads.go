package events

import (
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// SubmitRequest is the payload of ScoreSubmit.
type SubmitRequest struct {
	CourseName string                `json:"course_name"`
	Nine       string                `json:"nine"`
	PlayerID   sharedtypes.PlayerID  `json:"player_id"`
	PlayerName string                `json:"player_name"`
	Character  sharedtypes.Character `json:"character"`
	Score      sharedtypes.Score     `json:"score"`
}

// TokenRequest is the payload of ScoreVerify and ScoreDiscard.
type TokenRequest struct {
	Token string `json:"token"`
}

// NameChangeRequest is the payload of PlayerNameChange.
type NameChangeRequest struct {
	PlayerID   sharedtypes.PlayerID `json:"player_id"`
	PlayerName string               `json:"player_name"`
}

// PlayerRequest is the payload of PlayerProfile and PlayerRecent.
type PlayerRequest struct {
	PlayerID sharedtypes.PlayerID `json:"player_id"`
}

// TopRequest is the payload of LeaderboardTop.
type TopRequest struct {
	Count int `json:"count"`
}

// RecomputeRequest is the payload of LeaderboardRecompute.
type RecomputeRequest struct {
	Reason string `json:"reason"`
}

// ImportRequest is the payload of LeaderboardImport. Workbook is the raw
// xlsx bytes, base64 on the wire.
type ImportRequest struct {
	Workbook []byte `json:"workbook"`
}

// PickRequest is the payload of CoursePick.
type PickRequest struct {
	Holes int `json:"holes"`
}

// ResultEnvelope is the payload published on every result subject. Exactly
// one of Success or Failure is set.
type ResultEnvelope struct {
	Success any `json:"success,omitempty"`
	Failure any `json:"failure,omitempty"`
}

// PermissionFailure is published when a moderator-only command arrives
// without the moderator flag.
type PermissionFailure struct {
	Reason string `json:"reason"`
}
