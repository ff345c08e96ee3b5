// Package events defines the command subjects the backend consumes and the
// helpers for building request/result messages.
package events

// Command subjects. Each handler publishes its outcome on the matching
// result subject.
const (
	ScoreSubmit  = "score.submit"
	ScoreVerify  = "score.verify"
	ScoreDiscard = "score.discard"

	PlayerNameChange = "player.name.change"
	PlayerProfile    = "player.profile"
	PlayerRecent     = "player.recent"

	LeaderboardRecompute = "leaderboard.recompute"
	LeaderboardTop       = "leaderboard.top"
	LeaderboardExport    = "leaderboard.export"
	LeaderboardImport    = "leaderboard.import"

	CourseIndices = "course.indices"
	CoursePick    = "course.pick"
)

// Reporting subjects, published after a rebuild commits.
const (
	LeaderboardUpdated   = "leaderboard.updated"
	CourseIndicesUpdated = "course.indices.updated"
	LeaderboardExported  = "leaderboard.exported"
)

// Result returns the result subject for a command subject.
func Result(subject string) string {
	return subject + ".result"
}

// MetadataModerator marks a command as issued by a moderator. Verify,
// discard, recompute, and import refuse messages without it.
const MetadataModerator = "moderator"
