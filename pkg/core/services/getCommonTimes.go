package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/mahjong-time/pkg/core/availability"
	"github.com/jakechorley/mahjong-time/pkg/core/model"
	"github.com/jakechorley/mahjong-time/pkg/db"
)

// GetCommonTimes computes, for every date with submissions, the windows where all
// participants who submitted that day are free
func GetCommonTimes(
	ctx context.Context,
	store db.TimeSlotStore,
	logger *zap.Logger,
	roomCode string,
	policy availability.TouchPolicy,
) ([]model.CommonInterval, error) {
	slots, err := GetTimes(ctx, store, logger, roomCode)
	if err != nil {
		return nil, err
	}

	intervals := make([]model.TimeInterval, 0, len(slots))
	for _, s := range slots {
		iv, err := toInterval(s)
		if err != nil {
			logger.Warn("Ignoring unreadable time slot", zap.String("id", s.ID), zap.Error(err))
			continue
		}
		intervals = append(intervals, iv)
	}

	common := availability.CommonIntervals(intervals, policy)

	logger.Debug("Computed common times",
		zap.String("room_code", roomOrDefault(roomCode)),
		zap.Int("slots", len(slots)),
		zap.Int("common", len(common)))

	return common, nil
}

func toInterval(s db.TimeSlot) (model.TimeInterval, error) {
	start, err := model.ParseClockTime(s.StartTime)
	if err != nil {
		return model.TimeInterval{}, fmt.Errorf("bad start time: %w", err)
	}
	end, err := model.ParseClockTime(s.EndTime)
	if err != nil {
		return model.TimeInterval{}, fmt.Errorf("bad end time: %w", err)
	}
	return model.TimeInterval{
		Participant: s.Nickname,
		Date:        s.Date,
		Start:       start,
		End:         end,
	}, nil
}
