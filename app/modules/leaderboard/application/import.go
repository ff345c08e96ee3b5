package leaderboardservice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	leaderboarddb "github.com/greenside-club/golfbot/app/modules/leaderboard/infrastructure/repositories"
	playerdb "github.com/greenside-club/golfbot/app/modules/player/infrastructure/repositories"
	scoredb "github.com/greenside-club/golfbot/app/modules/score/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/attr"
	"github.com/greenside-club/golfbot/app/shared/results"
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// rowError marks a bad spreadsheet row. Surfaced as a business failure
// naming the row, never as an operational error.
type rowError struct {
	sheet  string
	row    int
	reason string
}

func (e *rowError) Error() string {
	return fmt.Sprintf("%s row %d: %s", e.sheet, e.row, e.reason)
}

// ImportWorkbook replaces the score ledger with the workbook's Scores sheet
// and upserts names from the Players sheet, then rebuilds everything derived
// from the ledger. All-or-nothing: one bad row rejects the whole import.
func (s *LeaderboardService) ImportWorkbook(ctx context.Context, data []byte) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "ImportWorkbook", func(ctx context.Context) (results.OperationResult, error) {
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return results.OperationResult{
				Failure: &LeaderboardFailure{Reason: "not a readable xlsx workbook"},
			}, nil
		}
		defer f.Close()

		var imported *ImportResult
		err = s.store.Atomic(ctx, func(store leaderboarddb.Store) error {
			courses, err := store.ListCourses(ctx)
			if err != nil {
				return err
			}
			roster := make(map[sharedtypes.CourseID]bool, len(courses))
			for _, course := range courses {
				roster[course.CourseID] = true
			}

			scores, err := parseScoreSheet(f, roster)
			if err != nil {
				return err
			}
			players, err := parsePlayerSheet(f)
			if err != nil {
				return err
			}

			if err := store.UpsertPlayerNames(ctx, players); err != nil {
				return err
			}
			if err := store.ReplaceScores(ctx, scores); err != nil {
				return err
			}
			if _, err := s.rebuild(ctx, store); err != nil {
				return err
			}

			imported = &ImportResult{ScoreRows: len(scores), PlayerRows: len(players)}
			return nil
		})
		if err != nil {
			var bad *rowError
			if errors.As(err, &bad) {
				return results.OperationResult{
					Failure: &LeaderboardFailure{Reason: bad.Error()},
				}, nil
			}
			return results.OperationResult{}, err
		}

		s.logger.InfoContext(ctx, "Workbook imported",
			attr.ExtractCorrelationID(ctx),
			attr.Int("score_rows", imported.ScoreRows),
			attr.Int("player_rows", imported.PlayerRows),
		)
		return results.OperationResult{Success: imported}, nil
	})
}

// parseScoreSheet reads the Scores sheet: Timestamp, Course ID, Player ID,
// Character, Score, one header row. Adjusted scores and rating snapshots are
// filled by the rebuild that follows.
func parseScoreSheet(f *excelize.File, roster map[sharedtypes.CourseID]bool) ([]scoredb.Score, error) {
	rows, err := f.GetRows(sheetScores)
	if err != nil {
		return nil, &rowError{sheet: sheetScores, row: 0, reason: "sheet missing"}
	}

	var scores []scoredb.Score
	for i, row := range rows {
		if i == 0 {
			continue
		}
		rowNum := i + 1

		if countFilled(row) < 5 {
			return nil, &rowError{sheet: sheetScores, row: rowNum, reason: "expected 5 fields"}
		}

		timestamp, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
		if err != nil {
			return nil, &rowError{sheet: sheetScores, row: rowNum, reason: "timestamp is not an integer"}
		}
		courseID, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, &rowError{sheet: sheetScores, row: rowNum, reason: "course id is not an integer"}
		}
		if !roster[sharedtypes.CourseID(courseID)] {
			return nil, &rowError{sheet: sheetScores, row: rowNum, reason: fmt.Sprintf("unknown course id %d", courseID)}
		}
		playerID, err := strconv.ParseInt(strings.TrimSpace(row[2]), 10, 64)
		if err != nil {
			return nil, &rowError{sheet: sheetScores, row: rowNum, reason: "player id is not an integer"}
		}
		character := sharedtypes.Character(strings.TrimSpace(row[3]))
		if !sharedtypes.KnownCharacter(character) {
			return nil, &rowError{sheet: sheetScores, row: rowNum, reason: fmt.Sprintf("unknown character %q", character)}
		}
		rawScore, err := strconv.Atoi(strings.TrimSpace(row[4]))
		if err != nil {
			return nil, &rowError{sheet: sheetScores, row: rowNum, reason: "score is not an integer"}
		}

		scores = append(scores, scoredb.Score{
			Timestamp:     timestamp,
			CourseID:      sharedtypes.CourseID(courseID),
			PlayerID:      sharedtypes.PlayerID(playerID),
			Character:     character,
			Score:         sharedtypes.Score(rawScore),
			AdjustedScore: sharedtypes.AdjustedScore(rawScore),
			Rating:        sharedtypes.Unrated,
		})
	}
	return scores, nil
}

// parsePlayerSheet reads the Players sheet: Player ID, Player Name. The
// sheet is optional; imported players without a name row keep (or get) their
// default. A trailing Rating column is ignored, ratings always come from the
// rebuild.
func parsePlayerSheet(f *excelize.File) ([]playerdb.Player, error) {
	rows, err := f.GetRows(sheetPlayers)
	if err != nil {
		return nil, nil
	}

	var players []playerdb.Player
	for i, row := range rows {
		if i == 0 {
			continue
		}
		rowNum := i + 1

		if countFilled(row) < 2 {
			return nil, &rowError{sheet: sheetPlayers, row: rowNum, reason: "expected player id and name"}
		}
		playerID, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
		if err != nil {
			return nil, &rowError{sheet: sheetPlayers, row: rowNum, reason: "player id is not an integer"}
		}
		name := strings.TrimSpace(row[1])
		if name == "" {
			return nil, &rowError{sheet: sheetPlayers, row: rowNum, reason: "name is empty"}
		}

		players = append(players, playerdb.Player{
			PlayerID:   sharedtypes.PlayerID(playerID),
			PlayerName: name,
			Rating:     sharedtypes.Unrated,
		})
	}
	return players, nil
}

func countFilled(row []string) int {
	filled := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			filled++
		}
	}
	return filled
}
