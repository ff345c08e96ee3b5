package courseservice

import (
	"sort"

	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// SamplesPerCourse is how many recent rounds per course feed the difficulty
// calculation, and the per-course round count a player needs on every course
// to be included at all.
const SamplesPerCourse = 8

// RoundSample is one verified round as seen by the difficulty calculator.
type RoundSample struct {
	PlayerID  sharedtypes.PlayerID
	CourseID  sharedtypes.CourseID
	Timestamp int64
	RoundID   sharedtypes.RoundID
	Score     sharedtypes.Score
}

// ComputeDifficultyIndices derives a zero-centered difficulty index per
// course from aggregated player behavior.
//
// Only players with at least SamplesPerCourse rounds on every course in the
// roster are counted; partial data would skew the normalization, so such
// players are excluded entirely. For each eligible player and course the
// most recent SamplesPerCourse raw scores are averaged, those averages are
// averaged across players into a course average, and each course's index is
// its average minus the overall average of course averages. The unweighted
// mean of the returned indices is therefore (approximately) zero.
//
// Returns nil when no player is eligible; callers must leave the stored
// indices untouched in that case.
func ComputeDifficultyIndices(samples []RoundSample, roster []sharedtypes.CourseID) map[sharedtypes.CourseID]float64 {
	if len(roster) == 0 {
		return nil
	}

	// Chronological order, round id breaking timestamp ties.
	sorted := make([]RoundSample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Timestamp == sorted[j].Timestamp {
			return sorted[i].RoundID < sorted[j].RoundID
		}
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	perPlayer := make(map[sharedtypes.PlayerID]map[sharedtypes.CourseID][]sharedtypes.Score)
	for _, sample := range sorted {
		byCourse, ok := perPlayer[sample.PlayerID]
		if !ok {
			byCourse = make(map[sharedtypes.CourseID][]sharedtypes.Score)
			perPlayer[sample.PlayerID] = byCourse
		}
		byCourse[sample.CourseID] = append(byCourse[sample.CourseID], sample.Score)
	}

	// Per course, the per-player averages of the last SamplesPerCourse scores
	// for every eligible player.
	playerAverages := make(map[sharedtypes.CourseID][]float64, len(roster))
	eligible := 0
	for _, byCourse := range perPlayer {
		if !isEligible(byCourse, roster) {
			continue
		}
		eligible++
		for _, courseID := range roster {
			scores := byCourse[courseID]
			recent := scores[len(scores)-SamplesPerCourse:]
			var sum float64
			for _, s := range recent {
				sum += float64(s)
			}
			playerAverages[courseID] = append(playerAverages[courseID], sum/float64(len(recent)))
		}
	}

	if eligible == 0 {
		return nil
	}

	courseAverages := make(map[sharedtypes.CourseID]float64, len(roster))
	var overall float64
	for _, courseID := range roster {
		averages := playerAverages[courseID]
		var sum float64
		for _, avg := range averages {
			sum += avg
		}
		courseAverages[courseID] = sum / float64(len(averages))
		overall += courseAverages[courseID]
	}
	overall /= float64(len(roster))

	indices := make(map[sharedtypes.CourseID]float64, len(roster))
	for _, courseID := range roster {
		indices[courseID] = courseAverages[courseID] - overall
	}
	return indices
}

func isEligible(byCourse map[sharedtypes.CourseID][]sharedtypes.Score, roster []sharedtypes.CourseID) bool {
	for _, courseID := range roster {
		if len(byCourse[courseID]) < SamplesPerCourse {
			return false
		}
	}
	return true
}
