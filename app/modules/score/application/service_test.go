package scoreservice

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	coursedb "github.com/greenside-club/golfbot/app/modules/course/infrastructure/repositories"
	scoredb "github.com/greenside-club/golfbot/app/modules/score/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/observability"
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

var testRoster = []coursedb.Course{
	{CourseID: 1, CourseName: "Toad Highlands", Nine: "Front 9", DifficultyIndex: 0},
	{CourseID: 2, CourseName: "Toad Highlands", Nine: "Back 9", DifficultyIndex: 1.5},
}

func newTestService(repo *FakeScoreRepo) *ScoreService {
	svc := NewScoreService(
		repo,
		NewFakeCourseRepo(testRoster...),
		slog.New(slog.DiscardHandler),
		observability.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
	)
	base := time.Unix(1750000000, 0)
	svc.now = func() time.Time { return base }
	return svc
}

func TestSubmit_Success(t *testing.T) {
	repo := NewFakeScoreRepo()
	svc := newTestService(repo)

	result, err := svc.Submit(context.Background(), SubmitInput{
		CourseName: "Toad Highlands",
		Nine:       "Front 9",
		PlayerID:   42,
		PlayerName: "daisy_fan",
		Character:  "Plum",
		Score:      -3,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Success)

	submitted := result.Success.(*SubmitResult)
	assert.Len(t, submitted.Token, 16)
	assert.Equal(t, "Toad Highlands", submitted.CourseName)

	stored, err := repo.GetPending(context.Background(), submitted.Token)
	require.NoError(t, err)
	assert.Equal(t, sharedtypes.CourseID(1), stored.CourseID)
	assert.Equal(t, sharedtypes.Score(-3), stored.Score)
	assert.Equal(t, int64(1750000000), stored.CreatedAt)
}

func TestSubmit_UnknownCourse(t *testing.T) {
	repo := NewFakeScoreRepo()
	svc := newTestService(repo)

	result, err := svc.Submit(context.Background(), SubmitInput{
		CourseName: "Peach's Castle",
		Nine:       "Front 9",
		PlayerID:   42,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Failure)
	assert.Equal(t, "course not found", result.Failure.(*ScoreFailure).Reason)

	empty, err := repo.PendingIsEmpty(context.Background())
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestSubmit_RetriesOnTokenCollision(t *testing.T) {
	repo := NewFakeScoreRepo()
	repo.insertPendingErrs = []error{scoredb.ErrConflict}
	svc := newTestService(repo)

	result, err := svc.Submit(context.Background(), SubmitInput{
		CourseName: "Toad Highlands",
		Nine:       "Front 9",
		PlayerID:   42,
		PlayerName: "daisy_fan",
		Character:  "Plum",
		Score:      0,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Success)

	inserts := 0
	for _, step := range repo.Trace() {
		if step == "InsertPending" {
			inserts++
		}
	}
	assert.Equal(t, 2, inserts)
}

func TestLookup_NotFound(t *testing.T) {
	svc := newTestService(NewFakeScoreRepo())

	result, err := svc.Lookup(context.Background(), "nope")
	require.NoError(t, err)
	require.NotNil(t, result.Failure)
}

// seedVerifiedScore pushes a score straight into the fake ledger, bypassing
// the queue, to build up history for verify tests.
func seedVerifiedScore(t *testing.T, repo *FakeScoreRepo, playerID sharedtypes.PlayerID, timestamp int64, adjusted float64) {
	t.Helper()
	err := repo.InsertScore(context.Background(), &scoredb.Score{
		Timestamp:     timestamp,
		CourseID:      1,
		PlayerID:      playerID,
		Character:     "Mario",
		Score:         sharedtypes.Score(adjusted),
		AdjustedScore: sharedtypes.AdjustedScore(adjusted),
		Rating:        sharedtypes.Unrated,
	})
	require.NoError(t, err)
}

func TestVerify_SixthScoreProducesRating(t *testing.T) {
	repo := NewFakeScoreRepo()
	repo.indices[2] = 1.5
	svc := newTestService(repo)

	prior := []float64{0, 1, 2, -1, 0.5}
	for i, adjusted := range prior {
		seedVerifiedScore(t, repo, 42, int64(1740000000+i*3600), adjusted)
	}

	// Raw +3 on a course with difficulty index 1.5 -> adjusted 1.5.
	submitRes, err := svc.Submit(context.Background(), SubmitInput{
		CourseName: "Toad Highlands",
		Nine:       "Back 9",
		PlayerID:   42,
		PlayerName: "daisy_fan",
		Character:  "Plum",
		Score:      3,
	})
	require.NoError(t, err)
	token := submitRes.Success.(*SubmitResult).Token

	result, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, result.Success)

	verified := result.Success.(*VerifyResult)
	assert.Equal(t, sharedtypes.AdjustedScore(1.5), verified.AdjustedScore)
	assert.InDelta(t, 4.0/6.0, float64(verified.Rating), 1e-9)

	player, ok := repo.Player(42)
	require.True(t, ok)
	assert.InDelta(t, 4.0/6.0, float64(player.Rating), 1e-9)
	assert.Equal(t, "daisy_fan", player.Name)

	scores := repo.Scores()
	require.Len(t, scores, 6)
	assert.InDelta(t, 4.0/6.0, float64(scores[5].Rating), 1e-9)
}

func TestVerify_FirstScoreIsUnrated(t *testing.T) {
	repo := NewFakeScoreRepo()
	repo.indices[1] = 0
	svc := newTestService(repo)

	submitRes, err := svc.Submit(context.Background(), SubmitInput{
		CourseName: "Toad Highlands",
		Nine:       "Front 9",
		PlayerID:   7,
		PlayerName: "rookie",
		Character:  "Yoshi",
		Score:      5,
	})
	require.NoError(t, err)
	token := submitRes.Success.(*SubmitResult).Token

	result, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, result.Success)
	assert.Equal(t, sharedtypes.Unrated, result.Success.(*VerifyResult).Rating)

	player, ok := repo.Player(7)
	require.True(t, ok)
	assert.Equal(t, sharedtypes.Unrated, player.Rating)
}

func TestDiscardThenVerify_NotFound(t *testing.T) {
	repo := NewFakeScoreRepo()
	repo.indices[1] = 0
	svc := newTestService(repo)

	submitRes, err := svc.Submit(context.Background(), SubmitInput{
		CourseName: "Toad Highlands",
		Nine:       "Front 9",
		PlayerID:   42,
		PlayerName: "daisy_fan",
		Character:  "Plum",
		Score:      2,
	})
	require.NoError(t, err)
	token := submitRes.Success.(*SubmitResult).Token

	discardRes, err := svc.Discard(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, discardRes.Success)

	verifyRes, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, verifyRes.Failure)
	assert.Equal(t, "token not found in queue", verifyRes.Failure.(*ScoreFailure).Reason)

	// Ledger unchanged.
	assert.Empty(t, repo.Scores())
}

func TestVerifyDiscardRace_AtMostOnce(t *testing.T) {
	repo := NewFakeScoreRepo()
	repo.indices[1] = 0
	svc := newTestService(repo)

	submitRes, err := svc.Submit(context.Background(), SubmitInput{
		CourseName: "Toad Highlands",
		Nine:       "Front 9",
		PlayerID:   42,
		PlayerName: "daisy_fan",
		Character:  "Plum",
		Score:      1,
	})
	require.NoError(t, err)
	token := submitRes.Success.(*SubmitResult).Token

	var wg sync.WaitGroup
	outcomes := make([]struct {
		success bool
		verify  bool
	}, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		result, err := svc.Verify(context.Background(), token)
		require.NoError(t, err)
		outcomes[0].success = result.Success != nil
		outcomes[0].verify = true
	}()
	go func() {
		defer wg.Done()
		result, err := svc.Discard(context.Background(), token)
		require.NoError(t, err)
		outcomes[1].success = result.Success != nil
	}()
	wg.Wait()

	successes := 0
	for _, outcome := range outcomes {
		if outcome.success {
			successes++
		}
	}
	assert.Equal(t, 1, successes, "exactly one of verify/discard must win")

	// At most one score record; zero when discard won.
	scores := repo.Scores()
	if outcomes[0].success {
		assert.Len(t, scores, 1)
	} else {
		assert.Empty(t, scores)
	}
}

func TestQueueIsEmpty(t *testing.T) {
	repo := NewFakeScoreRepo()
	svc := newTestService(repo)

	empty, err := svc.QueueIsEmpty(context.Background())
	require.NoError(t, err)
	assert.True(t, empty)

	_, err = svc.Submit(context.Background(), SubmitInput{
		CourseName: "Toad Highlands",
		Nine:       "Front 9",
		PlayerID:   42,
		PlayerName: "daisy_fan",
		Character:  "Plum",
		Score:      0,
	})
	require.NoError(t, err)

	empty, err = svc.QueueIsEmpty(context.Background())
	require.NoError(t, err)
	assert.False(t, empty)
}
