package leaderboardhandlers

import (
	"context"

	leaderboardservice "github.com/greenside-club/golfbot/app/modules/leaderboard/application"
	leaderboardqueue "github.com/greenside-club/golfbot/app/modules/leaderboard/infrastructure/queue"
	"github.com/greenside-club/golfbot/app/shared/results"
)

// FakeLeaderboardService records calls and returns canned results.
type FakeLeaderboardService struct {
	trace []string

	importedData []byte

	topResult    results.OperationResult
	exportResult results.OperationResult
	importResult results.OperationResult
	err          error
}

func (f *FakeLeaderboardService) RebuildRankings(context.Context) (results.OperationResult, error) {
	f.trace = append(f.trace, "RebuildRankings")
	return results.OperationResult{}, f.err
}

func (f *FakeLeaderboardService) GetTopRanked(_ context.Context, _ int) (results.OperationResult, error) {
	f.trace = append(f.trace, "GetTopRanked")
	return f.topResult, f.err
}

func (f *FakeLeaderboardService) ExportWorkbook(context.Context) (results.OperationResult, error) {
	f.trace = append(f.trace, "ExportWorkbook")
	return f.exportResult, f.err
}

func (f *FakeLeaderboardService) ImportWorkbook(_ context.Context, data []byte) (results.OperationResult, error) {
	f.trace = append(f.trace, "ImportWorkbook")
	f.importedData = data
	return f.importResult, f.err
}

var _ leaderboardservice.Service = (*FakeLeaderboardService)(nil)

// FakeQueue records rebuild requests.
type FakeQueue struct {
	reasons []string
	err     error
}

func (f *FakeQueue) EnqueueRebuild(_ context.Context, reason string) error {
	f.reasons = append(f.reasons, reason)
	return f.err
}

func (f *FakeQueue) HealthCheck(context.Context) error { return f.err }
func (f *FakeQueue) Start(context.Context) error       { return f.err }
func (f *FakeQueue) Stop(context.Context) error        { return f.err }

var _ leaderboardqueue.QueueService = (*FakeQueue)(nil)
