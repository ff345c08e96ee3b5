package scoreservice

import (
	"context"
	"sort"
	"sync"

	coursedb "github.com/greenside-club/golfbot/app/modules/course/infrastructure/repositories"
	scoredb "github.com/greenside-club/golfbot/app/modules/score/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// ------------------------
// Fake Score Repository
// ------------------------

// fakePlayer mirrors the players table for assertions.
type fakePlayer struct {
	Name   string
	Rating sharedtypes.Rating
}

// FakeScoreRepo is an in-memory scoredb.Repository. It is safe for
// concurrent use so the at-most-once tests can race real goroutines at it.
type FakeScoreRepo struct {
	mu      sync.Mutex
	pending map[string]scoredb.PendingScore
	scores  []scoredb.Score
	players map[sharedtypes.PlayerID]fakePlayer
	indices map[sharedtypes.CourseID]float64

	nextRoundID sharedtypes.RoundID
	trace       []string

	// insertPendingErrs is consumed one entry per InsertPending call before
	// the default behavior applies.
	insertPendingErrs []error
}

func NewFakeScoreRepo() *FakeScoreRepo {
	return &FakeScoreRepo{
		pending:     make(map[string]scoredb.PendingScore),
		players:     make(map[sharedtypes.PlayerID]fakePlayer),
		indices:     make(map[sharedtypes.CourseID]float64),
		nextRoundID: 1,
	}
}

func (f *FakeScoreRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of repository methods called.
func (f *FakeScoreRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScoreRepo) Atomic(_ context.Context, fn func(scoredb.Repository) error) error {
	return fn(f)
}

func (f *FakeScoreRepo) InsertPending(_ context.Context, pending *scoredb.PendingScore) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("InsertPending")

	if len(f.insertPendingErrs) > 0 {
		err := f.insertPendingErrs[0]
		f.insertPendingErrs = f.insertPendingErrs[1:]
		if err != nil {
			return err
		}
	}
	if _, exists := f.pending[pending.Token]; exists {
		return scoredb.ErrConflict
	}
	f.pending[pending.Token] = *pending
	return nil
}

func (f *FakeScoreRepo) GetPending(_ context.Context, token string) (*scoredb.PendingScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetPending")

	pending, ok := f.pending[token]
	if !ok {
		return nil, scoredb.ErrNotFound
	}
	return &pending, nil
}

func (f *FakeScoreRepo) DeletePendingReturning(_ context.Context, token string) (*scoredb.PendingScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeletePendingReturning")

	pending, ok := f.pending[token]
	if !ok {
		return nil, scoredb.ErrNotFound
	}
	delete(f.pending, token)
	return &pending, nil
}

func (f *FakeScoreRepo) PendingIsEmpty(_ context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending) == 0, nil
}

func (f *FakeScoreRepo) CourseIndex(_ context.Context, courseID sharedtypes.CourseID) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	index, ok := f.indices[courseID]
	if !ok {
		return 0, scoredb.ErrNotFound
	}
	return index, nil
}

func (f *FakeScoreRepo) InsertScore(_ context.Context, score *scoredb.Score) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("InsertScore")

	score.RoundID = f.nextRoundID
	f.nextRoundID++
	f.scores = append(f.scores, *score)
	return nil
}

func (f *FakeScoreRepo) PlayerAdjustedHistory(_ context.Context, playerID sharedtypes.PlayerID) ([]scoredb.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var filtered []scoredb.Score
	for _, score := range f.scores {
		if score.PlayerID == playerID {
			filtered = append(filtered, score)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Timestamp == filtered[j].Timestamp {
			return filtered[i].RoundID < filtered[j].RoundID
		}
		return filtered[i].Timestamp < filtered[j].Timestamp
	})

	history := make([]scoredb.HistoryEntry, len(filtered))
	for i, score := range filtered {
		history[i] = scoredb.HistoryEntry{RoundID: score.RoundID, AdjustedScore: score.AdjustedScore}
	}
	return history, nil
}

func (f *FakeScoreRepo) UpdateScoreRating(_ context.Context, roundID sharedtypes.RoundID, rating sharedtypes.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateScoreRating")

	for i := range f.scores {
		if f.scores[i].RoundID == roundID {
			f.scores[i].Rating = rating
			return nil
		}
	}
	return scoredb.ErrNoRowsAffected
}

func (f *FakeScoreRepo) UpsertPlayer(_ context.Context, playerID sharedtypes.PlayerID, playerName string, rating sharedtypes.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpsertPlayer")

	player, exists := f.players[playerID]
	if !exists {
		player = fakePlayer{Name: playerName}
	}
	player.Rating = rating
	f.players[playerID] = player
	return nil
}

// Scores returns a copy of the ledger for assertions.
func (f *FakeScoreRepo) Scores() []scoredb.Score {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]scoredb.Score, len(f.scores))
	copy(out, f.scores)
	return out
}

// Player returns the stored player row for assertions.
func (f *FakeScoreRepo) Player(playerID sharedtypes.PlayerID) (fakePlayer, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	player, ok := f.players[playerID]
	return player, ok
}

var _ scoredb.Repository = (*FakeScoreRepo)(nil)

// ------------------------
// Fake Course Repository
// ------------------------

// FakeCourseRepo is an in-memory coursedb.Repository seeded with a roster.
type FakeCourseRepo struct {
	courses []coursedb.Course
}

func NewFakeCourseRepo(courses ...coursedb.Course) *FakeCourseRepo {
	return &FakeCourseRepo{courses: courses}
}

func (f *FakeCourseRepo) ListCourses(context.Context) ([]coursedb.Course, error) {
	out := make([]coursedb.Course, len(f.courses))
	copy(out, f.courses)
	return out, nil
}

func (f *FakeCourseRepo) GetCourseByName(_ context.Context, courseName, nine string) (*coursedb.Course, error) {
	for _, course := range f.courses {
		if course.CourseName == courseName && course.Nine == nine {
			c := course
			return &c, nil
		}
	}
	return nil, coursedb.ErrNotFound
}

func (f *FakeCourseRepo) GetCourse(_ context.Context, courseID sharedtypes.CourseID) (*coursedb.Course, error) {
	for _, course := range f.courses {
		if course.CourseID == courseID {
			c := course
			return &c, nil
		}
	}
	return nil, coursedb.ErrNotFound
}

var _ coursedb.Repository = (*FakeCourseRepo)(nil)
