package scoreservice

import (
	"context"
	"errors"
	"fmt"

	scoredb "github.com/greenside-club/golfbot/app/modules/score/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/attr"
	"github.com/greenside-club/golfbot/app/shared/rating"
	"github.com/greenside-club/golfbot/app/shared/results"
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// Verify promotes a pending submission into the ledger. The whole transition
// runs in one transaction: the pending entry is removed with an atomic
// delete-returning (so concurrent verify/discard on the same token resolve
// to exactly one winner), the adjusted score is computed from the course's
// current difficulty index, the record is appended, and the player's rating
// history is replayed to produce the new record's snapshot and the player's
// current rating. Later rounds never revise earlier snapshots; only the
// index-triggered full rebuild rewrites history.
func (s *ScoreService) Verify(ctx context.Context, token string) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "Verify", func(ctx context.Context) (results.OperationResult, error) {
		var verified *VerifyResult

		err := s.repo.Atomic(ctx, func(r scoredb.Repository) error {
			pending, err := r.DeletePendingReturning(ctx, token)
			if err != nil {
				return err
			}

			index, err := r.CourseIndex(ctx, pending.CourseID)
			if err != nil {
				return err
			}

			score := &scoredb.Score{
				Timestamp:     pending.CreatedAt,
				CourseID:      pending.CourseID,
				PlayerID:      pending.PlayerID,
				Character:     pending.Character,
				Score:         pending.Score,
				AdjustedScore: sharedtypes.AdjustedScore(float64(pending.Score) - index),
				Rating:        sharedtypes.Unrated,
			}
			if err := r.InsertScore(ctx, score); err != nil {
				return err
			}

			history, err := r.PlayerAdjustedHistory(ctx, pending.PlayerID)
			if err != nil {
				return err
			}

			adjusted := make([]sharedtypes.AdjustedScore, len(history))
			position := -1
			for i, entry := range history {
				adjusted[i] = entry.AdjustedScore
				if entry.RoundID == score.RoundID {
					position = i
				}
			}
			if position < 0 {
				return fmt.Errorf("inserted round %d missing from player history", score.RoundID)
			}

			snapshots := rating.Replay(adjusted)
			snapshot := snapshots[position]
			currentRating := snapshots[len(snapshots)-1]

			if err := r.UpdateScoreRating(ctx, score.RoundID, snapshot); err != nil {
				return err
			}
			if err := r.UpsertPlayer(ctx, pending.PlayerID, pending.PlayerName, currentRating); err != nil {
				return err
			}

			verified = &VerifyResult{
				Token:         token,
				RoundID:       score.RoundID,
				PlayerID:      pending.PlayerID,
				AdjustedScore: score.AdjustedScore,
				Rating:        snapshot,
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, scoredb.ErrNotFound) {
				return results.OperationResult{
					Failure: &ScoreFailure{Token: token, Reason: "token not found in queue"},
				}, nil
			}
			return results.OperationResult{}, err
		}

		s.logger.InfoContext(ctx, "Score verified",
			attr.ExtractCorrelationID(ctx),
			attr.String("token", token),
			attr.Int64("round_id", int64(verified.RoundID)),
			attr.Float64("adjusted_score", float64(verified.AdjustedScore)),
		)
		return results.OperationResult{Success: verified}, nil
	})
}

// Discard removes a pending submission with no ledger effect. Shares the
// at-most-once semantics of Verify.
func (s *ScoreService) Discard(ctx context.Context, token string) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "Discard", func(ctx context.Context) (results.OperationResult, error) {
		_, err := s.repo.DeletePendingReturning(ctx, token)
		if err != nil {
			if errors.Is(err, scoredb.ErrNotFound) {
				return results.OperationResult{
					Failure: &ScoreFailure{Token: token, Reason: "token not found in queue"},
				}, nil
			}
			return results.OperationResult{}, err
		}

		s.logger.InfoContext(ctx, "Pending score discarded",
			attr.ExtractCorrelationID(ctx),
			attr.String("token", token),
		)
		return results.OperationResult{Success: &DiscardResult{Token: token}}, nil
	})
}
