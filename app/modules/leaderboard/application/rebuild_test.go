package leaderboardservice

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	coursedb "github.com/greenside-club/golfbot/app/modules/course/infrastructure/repositories"
	playerdb "github.com/greenside-club/golfbot/app/modules/player/infrastructure/repositories"
	scoredb "github.com/greenside-club/golfbot/app/modules/score/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/observability"
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

var testCourses = []coursedb.Course{
	{CourseID: 1, CourseName: "Toad Highlands", Nine: "Front 9"},
	{CourseID: 2, CourseName: "Toad Highlands", Nine: "Back 9"},
}

func newTestService(store *FakeStore) *LeaderboardService {
	return NewLeaderboardService(
		store,
		slog.New(slog.DiscardHandler),
		observability.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
	)
}

// seedEligibleLedger gives players 1 and 2 eight rounds on each course with
// fixed raw scores, enough for both to count toward the difficulty indices.
//
// Per-course averages: course 1 -> (2+0)/2 = 1, course 2 -> (4+2)/2 = 3,
// overall 2, so the indices come out -1 and +1. Every adjusted score lands on
// 3 for player 1 and 1 for player 2.
func seedEligibleLedger(store *FakeStore) {
	raw := map[sharedtypes.PlayerID]map[sharedtypes.CourseID]int{
		1: {1: 2, 2: 4},
		2: {1: 0, 2: 2},
	}
	timestamp := int64(1000)
	for _, playerID := range []sharedtypes.PlayerID{1, 2} {
		for _, courseID := range []sharedtypes.CourseID{1, 2} {
			for i := 0; i < 8; i++ {
				store.AddScore(scoredb.Score{
					Timestamp: timestamp,
					CourseID:  courseID,
					PlayerID:  playerID,
					Character: "Mario",
					Score:     sharedtypes.Score(raw[playerID][courseID]),
					Rating:    sharedtypes.Unrated,
				})
				timestamp++
			}
		}
	}
	store.players[1] = playerdb.Player{PlayerID: 1, PlayerName: "steady", Rating: sharedtypes.Unrated}
	store.players[2] = playerdb.Player{PlayerID: 2, PlayerName: "sharp", Rating: sharedtypes.Unrated}
}

func TestRebuildRankings_IndicesAdjustedAndRanking(t *testing.T) {
	store := NewFakeStore(testCourses...)
	seedEligibleLedger(store)
	svc := newTestService(store)

	result, err := svc.RebuildRankings(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result.Success)
	rebuilt := result.Success.(*RebuildResult)

	assert.True(t, rebuilt.IndicesRewritten)
	require.Len(t, rebuilt.Indices, 2)
	assert.InDelta(t, -1, rebuilt.Indices[0].Index, 1e-9)
	assert.InDelta(t, 1, rebuilt.Indices[1].Index, 1e-9)
	// Zero-centered.
	assert.InDelta(t, 0, rebuilt.Indices[0].Index+rebuilt.Indices[1].Index, 1e-9)

	require.Len(t, rebuilt.Leaderboard, 2)
	assert.Equal(t, RankedPlayer{Rank: 1, PlayerID: 2, PlayerName: "sharp", Rating: 1}, rebuilt.Leaderboard[0])
	assert.Equal(t, RankedPlayer{Rank: 2, PlayerID: 1, PlayerName: "steady", Rating: 3}, rebuilt.Leaderboard[1])

	for _, score := range store.scores {
		expected := 3.0
		if score.PlayerID == 2 {
			expected = 1.0
		}
		assert.InDelta(t, expected, float64(score.AdjustedScore), 1e-9)
	}
}

func TestRebuildRankings_Idempotent(t *testing.T) {
	store := NewFakeStore(testCourses...)
	seedEligibleLedger(store)
	svc := newTestService(store)

	first, err := svc.RebuildRankings(context.Background())
	require.NoError(t, err)
	firstState := store.snapshot()

	second, err := svc.RebuildRankings(context.Background())
	require.NoError(t, err)

	approx := cmpopts.EquateApprox(0, 1e-9)
	if diff := cmp.Diff(first.Success, second.Success, approx); diff != "" {
		t.Errorf("rebuild result changed on second run (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(firstState.scores, store.scores, approx); diff != "" {
		t.Errorf("ledger changed on second run (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(firstState.players, store.players, approx); diff != "" {
		t.Errorf("players changed on second run (-first +second):\n%s", diff)
	}
}

func TestRebuildRankings_NoEligiblePlayersKeepsIndices(t *testing.T) {
	courses := []coursedb.Course{
		{CourseID: 1, CourseName: "Toad Highlands", Nine: "Front 9", DifficultyIndex: 0.25},
		{CourseID: 2, CourseName: "Toad Highlands", Nine: "Back 9", DifficultyIndex: -0.25},
	}
	store := NewFakeStore(courses...)
	store.players[1] = playerdb.Player{PlayerID: 1, PlayerName: "newbie", Rating: sharedtypes.Unrated}
	store.AddScore(scoredb.Score{
		Timestamp: 100, CourseID: 1, PlayerID: 1, Character: "Mario",
		Score: 2, Rating: sharedtypes.Unrated,
	})
	svc := newTestService(store)

	result, err := svc.RebuildRankings(context.Background())
	require.NoError(t, err)
	rebuilt := result.Success.(*RebuildResult)

	assert.False(t, rebuilt.IndicesRewritten)
	assert.InDelta(t, 0.25, store.courses[0].DifficultyIndex, 1e-9)
	// Adjusted scores still follow the stored index.
	assert.InDelta(t, 1.75, float64(store.scores[0].AdjustedScore), 1e-9)
	// One round is far below the rating minimum.
	assert.Equal(t, sharedtypes.Unrated, store.players[1].Rating)
	assert.Empty(t, rebuilt.Leaderboard)
}

func TestRankPlayers_DenseRanksOnTies(t *testing.T) {
	players := []playerdb.Player{
		{PlayerID: 1, PlayerName: "a", Rating: 2.5},
		{PlayerID: 2, PlayerName: "b", Rating: 1.0},
		{PlayerID: 3, PlayerName: "c", Rating: 1.0},
		{PlayerID: 4, PlayerName: "d", Rating: sharedtypes.Unrated},
		{PlayerID: 5, PlayerName: "e", Rating: 4.0},
	}

	ranking := rankPlayers(players)
	require.Len(t, ranking, 4)
	assert.Equal(t, 1, ranking[0].Rank)
	assert.Equal(t, sharedtypes.PlayerID(2), ranking[0].PlayerID)
	assert.Equal(t, 1, ranking[1].Rank)
	assert.Equal(t, sharedtypes.PlayerID(3), ranking[1].PlayerID)
	assert.Equal(t, 2, ranking[2].Rank)
	assert.Equal(t, sharedtypes.PlayerID(1), ranking[2].PlayerID)
	assert.Equal(t, 3, ranking[3].Rank)
	assert.Equal(t, sharedtypes.PlayerID(5), ranking[3].PlayerID)
}

func TestGetTopRanked_CapsAndRenders(t *testing.T) {
	store := NewFakeStore(testCourses...)
	store.players[1] = playerdb.Player{PlayerID: 1, PlayerName: "a", Rating: 2}
	store.players[2] = playerdb.Player{PlayerID: 2, PlayerName: "b", Rating: 1}
	store.players[3] = playerdb.Player{PlayerID: 3, PlayerName: "c", Rating: 3}
	svc := newTestService(store)

	result, err := svc.GetTopRanked(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, result.Success)

	top := result.Success.(*TopRankedResult)
	require.Len(t, top.Entries, 2)
	assert.Equal(t, sharedtypes.PlayerID(2), top.Entries[0].PlayerID)
	assert.Equal(t, sharedtypes.PlayerID(1), top.Entries[1].PlayerID)
	require.NotEmpty(t, top.Table)
	assert.Equal(t, []byte("\x89PNG"), top.Table[:4])
}

func TestGetTopRanked_RejectsNonPositive(t *testing.T) {
	svc := newTestService(NewFakeStore(testCourses...))

	result, err := svc.GetTopRanked(context.Background(), 0)
	require.NoError(t, err)
	require.NotNil(t, result.Failure)
}
