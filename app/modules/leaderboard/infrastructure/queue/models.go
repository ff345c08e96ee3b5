package leaderboardqueue

// RebuildJob triggers a full ranking rebuild. Reason distinguishes scheduled
// runs from on-demand triggers in the job table.
type RebuildJob struct {
	Reason string `json:"reason"`
}

// Kind returns the job type identifier for River.
func (RebuildJob) Kind() string { return "leaderboard_rebuild" }
