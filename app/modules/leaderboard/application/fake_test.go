package leaderboardservice

import (
	"context"
	"fmt"
	"sort"

	coursedb "github.com/greenside-club/golfbot/app/modules/course/infrastructure/repositories"
	leaderboarddb "github.com/greenside-club/golfbot/app/modules/leaderboard/infrastructure/repositories"
	playerdb "github.com/greenside-club/golfbot/app/modules/player/infrastructure/repositories"
	scoredb "github.com/greenside-club/golfbot/app/modules/score/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// FakeStore is an in-memory leaderboarddb.Store. Atomic snapshots the state
// and restores it when fn fails, mirroring a rolled-back transaction.
type FakeStore struct {
	courses []coursedb.Course
	scores  []scoredb.Score
	players map[sharedtypes.PlayerID]playerdb.Player

	nextRoundID sharedtypes.RoundID
}

func NewFakeStore(courses ...coursedb.Course) *FakeStore {
	return &FakeStore{
		courses:     courses,
		players:     make(map[sharedtypes.PlayerID]playerdb.Player),
		nextRoundID: 1,
	}
}

func (f *FakeStore) snapshot() *FakeStore {
	clone := &FakeStore{nextRoundID: f.nextRoundID}
	clone.courses = append([]coursedb.Course(nil), f.courses...)
	clone.scores = append([]scoredb.Score(nil), f.scores...)
	clone.players = make(map[sharedtypes.PlayerID]playerdb.Player, len(f.players))
	for id, p := range f.players {
		clone.players[id] = p
	}
	return clone
}

func (f *FakeStore) restore(from *FakeStore) {
	f.courses = from.courses
	f.scores = from.scores
	f.players = from.players
	f.nextRoundID = from.nextRoundID
}

func (f *FakeStore) Atomic(_ context.Context, fn func(leaderboarddb.Store) error) error {
	saved := f.snapshot()
	if err := fn(f); err != nil {
		f.restore(saved)
		return err
	}
	return nil
}

func (f *FakeStore) AddScore(score scoredb.Score) sharedtypes.RoundID {
	score.RoundID = f.nextRoundID
	f.nextRoundID++
	f.scores = append(f.scores, score)
	return score.RoundID
}

func (f *FakeStore) AllScores(context.Context) ([]scoredb.Score, error) {
	out := append([]scoredb.Score(nil), f.scores...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp == out[j].Timestamp {
			return out[i].RoundID < out[j].RoundID
		}
		return out[i].Timestamp < out[j].Timestamp
	})
	return out, nil
}

func (f *FakeStore) ListCourses(context.Context) ([]coursedb.Course, error) {
	return append([]coursedb.Course(nil), f.courses...), nil
}

func (f *FakeStore) ListPlayers(context.Context) ([]playerdb.Player, error) {
	out := make([]playerdb.Player, 0, len(f.players))
	for _, p := range f.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (f *FakeStore) UpdateDifficultyIndices(_ context.Context, indices map[sharedtypes.CourseID]float64) error {
	for i := range f.courses {
		if index, ok := indices[f.courses[i].CourseID]; ok {
			f.courses[i].DifficultyIndex = index
		}
	}
	return nil
}

func (f *FakeStore) BulkUpdateAdjusted(_ context.Context, updates []leaderboarddb.AdjustedUpdate) error {
	for _, u := range updates {
		for i := range f.scores {
			if f.scores[i].RoundID == u.RoundID {
				f.scores[i].AdjustedScore = u.AdjustedScore
			}
		}
	}
	return nil
}

func (f *FakeStore) BulkUpdateRatings(_ context.Context, updates []leaderboarddb.RatingUpdate) error {
	for _, u := range updates {
		for i := range f.scores {
			if f.scores[i].RoundID == u.RoundID {
				f.scores[i].Rating = u.Rating
			}
		}
	}
	return nil
}

func (f *FakeStore) UpsertPlayerRatings(_ context.Context, ratings []leaderboarddb.PlayerRating) error {
	for _, r := range ratings {
		p, ok := f.players[r.PlayerID]
		if !ok {
			p = playerdb.Player{
				PlayerID:   r.PlayerID,
				PlayerName: fmt.Sprintf("Player %d", r.PlayerID),
			}
		}
		p.Rating = r.Rating
		f.players[r.PlayerID] = p
	}
	return nil
}

func (f *FakeStore) UpsertPlayerNames(_ context.Context, players []playerdb.Player) error {
	for _, incoming := range players {
		if existing, ok := f.players[incoming.PlayerID]; ok {
			existing.PlayerName = incoming.PlayerName
			f.players[incoming.PlayerID] = existing
			continue
		}
		f.players[incoming.PlayerID] = incoming
	}
	return nil
}

func (f *FakeStore) ReplaceScores(_ context.Context, scores []scoredb.Score) error {
	f.scores = nil
	f.nextRoundID = 1
	for _, score := range scores {
		f.AddScore(score)
	}
	return nil
}

var _ leaderboarddb.Store = (*FakeStore)(nil)
