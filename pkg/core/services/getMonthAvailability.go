package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/mahjong-time/pkg/core/availability"
	"github.com/jakechorley/mahjong-time/pkg/core/model"
	"github.com/jakechorley/mahjong-time/pkg/db"
)

// MonthAvailabilityResult is the grid of a room for one calendar month
type MonthAvailabilityResult struct {
	RoomCode string
	Year     int
	Month    time.Month
	Grid     *availability.MonthGrid
}

// GetMonthAvailability fetches every availability row of the room within the month and
// computes the slots where all participants active that month are free
func GetMonthAvailability(ctx context.Context, store db.AvailabilityStore, logger *zap.Logger, roomCode string, year, month int) (*MonthAvailabilityResult, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}
	if year < 1 || year > 9999 {
		return nil, ErrInvalidYear
	}
	roomCode = roomOrDefault(roomCode)

	from, to := monthRange(year, time.Month(month))
	logger.Debug("Fetching month availability",
		zap.String("room_code", roomCode),
		zap.String("from", from),
		zap.String("to", to))

	rows, err := store.GetAvailability(ctx, roomCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}

	grid := availability.ComputeMonth(toRecords(rows))

	logger.Debug("Computed month availability",
		zap.Int("entries", len(grid.Entries)),
		zap.Strings("participants", grid.Participants),
		zap.Int("common", len(grid.Common)))

	return &MonthAvailabilityResult{
		RoomCode: roomCode,
		Year:     year,
		Month:    time.Month(month),
		Grid:     grid,
	}, nil
}

// monthRange returns the first day of the month and the first day of the next month
func monthRange(year int, month time.Month) (string, string) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := start.AddDate(0, 1, 0)
	return start.Format(model.DateLayout), next.Format(model.DateLayout)
}

func toRecords(rows []db.Availability) []model.AvailabilityRecord {
	records := make([]model.AvailabilityRecord, len(rows))
	for i, r := range rows {
		records[i] = model.AvailabilityRecord{
			Participant: r.Nickname,
			Date:        r.Date,
			Segment:     model.Segment(r.Segment),
			Available:   r.Available == 1,
		}
	}
	return records
}
