package scorehandlers

import (
	"context"

	scoreservice "github.com/greenside-club/golfbot/app/modules/score/application"
	"github.com/greenside-club/golfbot/app/shared/results"
)

// FakeScoreService records calls and returns canned results.
type FakeScoreService struct {
	trace []string

	submitResult  results.OperationResult
	verifyResult  results.OperationResult
	discardResult results.OperationResult
	err           error
}

func (f *FakeScoreService) Submit(_ context.Context, _ scoreservice.SubmitInput) (results.OperationResult, error) {
	f.trace = append(f.trace, "Submit")
	return f.submitResult, f.err
}

func (f *FakeScoreService) Lookup(_ context.Context, _ string) (results.OperationResult, error) {
	f.trace = append(f.trace, "Lookup")
	return results.OperationResult{}, f.err
}

func (f *FakeScoreService) Verify(_ context.Context, _ string) (results.OperationResult, error) {
	f.trace = append(f.trace, "Verify")
	return f.verifyResult, f.err
}

func (f *FakeScoreService) Discard(_ context.Context, _ string) (results.OperationResult, error) {
	f.trace = append(f.trace, "Discard")
	return f.discardResult, f.err
}

func (f *FakeScoreService) QueueIsEmpty(context.Context) (bool, error) {
	f.trace = append(f.trace, "QueueIsEmpty")
	return true, f.err
}

var _ scoreservice.Service = (*FakeScoreService)(nil)
