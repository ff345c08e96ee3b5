package scoreservice

import (
	"context"
	"errors"

	coursedb "github.com/greenside-club/golfbot/app/modules/course/infrastructure/repositories"
	scoredb "github.com/greenside-club/golfbot/app/modules/score/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/attr"
	"github.com/greenside-club/golfbot/app/shared/results"
)

// submitTokenRetries caps how many fresh tokens Submit tries when an insert
// hits a token collision.
const submitTokenRetries = 3

// Submit resolves the course, generates a verification token, and places the
// submission on the pending queue. Raw score range validation is a front-end
// concern and is deliberately absent here.
func (s *ScoreService) Submit(ctx context.Context, input SubmitInput) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "Submit", func(ctx context.Context) (results.OperationResult, error) {
		course, err := s.courses.GetCourseByName(ctx, input.CourseName, input.Nine)
		if err != nil {
			if errors.Is(err, coursedb.ErrNotFound) {
				return results.OperationResult{
					Failure: &ScoreFailure{Reason: "course not found"},
				}, nil
			}
			return results.OperationResult{}, err
		}

		pending := &scoredb.PendingScore{
			CreatedAt:  s.now().Unix(),
			CourseID:   course.CourseID,
			PlayerID:   input.PlayerID,
			PlayerName: input.PlayerName,
			Character:  input.Character,
			Score:      input.Score,
		}

		for attempt := 0; attempt < submitTokenRetries; attempt++ {
			token, err := generateToken()
			if err != nil {
				return results.OperationResult{}, err
			}
			pending.Token = token

			err = s.repo.InsertPending(ctx, pending)
			if err == nil {
				s.logger.InfoContext(ctx, "Score submitted to pending queue",
					attr.ExtractCorrelationID(ctx),
					attr.String("token", token),
					attr.Int64("player_id", int64(input.PlayerID)),
					attr.Int("score", int(input.Score)),
				)
				return results.OperationResult{Success: &SubmitResult{
					Token:      token,
					CourseName: course.CourseName,
					Nine:       course.Nine,
					PlayerName: input.PlayerName,
					Character:  input.Character,
					Score:      input.Score,
				}}, nil
			}
			if !errors.Is(err, scoredb.ErrConflict) {
				return results.OperationResult{}, err
			}
			s.logger.WarnContext(ctx, "Pending token collision, retrying",
				attr.ExtractCorrelationID(ctx),
				attr.String("token", token),
			)
		}

		return results.OperationResult{
			Failure: &ScoreFailure{Reason: "could not allocate a unique token"},
		}, nil
	})
}

// Lookup returns the pending submission for a token, if it still exists.
func (s *ScoreService) Lookup(ctx context.Context, token string) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "Lookup", func(ctx context.Context) (results.OperationResult, error) {
		pending, err := s.repo.GetPending(ctx, token)
		if err != nil {
			if errors.Is(err, scoredb.ErrNotFound) {
				return results.OperationResult{
					Failure: &ScoreFailure{Token: token, Reason: "token not found in queue"},
				}, nil
			}
			return results.OperationResult{}, err
		}
		return results.OperationResult{Success: &PendingResult{
			Token:      pending.Token,
			CreatedAt:  pending.CreatedAt,
			CourseID:   pending.CourseID,
			PlayerID:   pending.PlayerID,
			PlayerName: pending.PlayerName,
			Character:  pending.Character,
			Score:      pending.Score,
		}}, nil
	})
}
