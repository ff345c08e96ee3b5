package leaderboardservice

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	leaderboarddb "github.com/greenside-club/golfbot/app/modules/leaderboard/infrastructure/repositories"
	playerdb "github.com/greenside-club/golfbot/app/modules/player/infrastructure/repositories"
	scoredb "github.com/greenside-club/golfbot/app/modules/score/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/attr"
	"github.com/greenside-club/golfbot/app/shared/results"
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

const (
	sheetScores  = "Scores"
	sheetPlayers = "Players"
	sheetRanking = "Rankings"
	sheetIndices = "Difficulty Indices"
)

var scoreHeader = []string{"Timestamp", "Course ID", "Player ID", "Character", "Score"}

// ExportWorkbook dumps the current state as an xlsx workbook. The Scores and
// Players sheets use the same column layout ImportWorkbook reads, so an
// export can be re-imported as-is.
func (s *LeaderboardService) ExportWorkbook(ctx context.Context) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "ExportWorkbook", func(ctx context.Context) (results.OperationResult, error) {
		var workbook []byte

		err := s.store.Atomic(ctx, func(store leaderboarddb.Store) error {
			scores, err := store.AllScores(ctx)
			if err != nil {
				return err
			}
			players, err := store.ListPlayers(ctx)
			if err != nil {
				return err
			}
			courses, err := store.ListCourses(ctx)
			if err != nil {
				return err
			}

			indices := make(map[sharedtypes.CourseID]float64, len(courses))
			for _, course := range courses {
				indices[course.CourseID] = course.DifficultyIndex
			}

			f, err := buildWorkbook(scores, players, rankPlayers(players), indexEntries(courses, indices))
			if err != nil {
				return err
			}
			buf, err := f.WriteToBuffer()
			if err != nil {
				return fmt.Errorf("failed to serialize workbook: %w", err)
			}
			workbook = buf.Bytes()
			return nil
		})
		if err != nil {
			return results.OperationResult{}, err
		}

		s.logger.InfoContext(ctx, "Workbook exported",
			attr.ExtractCorrelationID(ctx),
			attr.Int("bytes", len(workbook)),
		)
		return results.OperationResult{Success: &ExportResult{Workbook: workbook}}, nil
	})
}

func buildWorkbook(scores []scoredb.Score, players []playerdb.Player, ranking []RankedPlayer, indices []IndexEntry) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetScores); err != nil {
		return nil, fmt.Errorf("failed to name scores sheet: %w", err)
	}
	for _, sheet := range []string{sheetPlayers, sheetRanking, sheetIndices} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
	}

	if err := writeRow(f, sheetScores, 1, toCells(scoreHeader)); err != nil {
		return nil, err
	}
	for i, score := range scores {
		cells := []any{score.Timestamp, int(score.CourseID), int64(score.PlayerID), string(score.Character), int(score.Score)}
		if err := writeRow(f, sheetScores, i+2, cells); err != nil {
			return nil, err
		}
	}

	if err := writeRow(f, sheetPlayers, 1, []any{"Player ID", "Player Name", "Rating"}); err != nil {
		return nil, err
	}
	for i, player := range players {
		cells := []any{int64(player.PlayerID), player.PlayerName, float64(player.Rating)}
		if err := writeRow(f, sheetPlayers, i+2, cells); err != nil {
			return nil, err
		}
	}

	if err := writeRow(f, sheetRanking, 1, []any{"Rank", "Player", "Rating"}); err != nil {
		return nil, err
	}
	for i, entry := range ranking {
		cells := []any{entry.Rank, entry.PlayerName, float64(entry.Rating)}
		if err := writeRow(f, sheetRanking, i+2, cells); err != nil {
			return nil, err
		}
	}

	if err := writeRow(f, sheetIndices, 1, []any{"Course", "Nine", "Index"}); err != nil {
		return nil, err
	}
	for i, entry := range indices {
		cells := []any{entry.CourseName, entry.Nine, entry.Index}
		if err := writeRow(f, sheetIndices, i+2, cells); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	for col, value := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to address cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
