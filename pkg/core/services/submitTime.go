package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/mahjong-time/pkg/core/model"
	"github.com/jakechorley/mahjong-time/pkg/db"
)

// SubmitTimeRequest is a free window submitted by a participant
type SubmitTimeRequest struct {
	RoomCode  string
	Nickname  string
	Date      string
	StartTime string
	EndTime   string
}

// SubmitTime validates and appends a time slot. Times are stored normalised to HH:MM.
func SubmitTime(ctx context.Context, store db.TimeSlotStore, logger *zap.Logger, req SubmitTimeRequest) (*db.TimeSlot, error) {
	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" || req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		return nil, ErrMissingFields
	}

	if _, err := model.ParseDate(req.Date); err != nil {
		return nil, &ValidationError{Field: "date", Err: err}
	}
	start, err := model.ParseClockTime(req.StartTime)
	if err != nil {
		return nil, &ValidationError{Field: "start_time", Err: err}
	}
	end, err := model.ParseClockTime(req.EndTime)
	if err != nil {
		return nil, &ValidationError{Field: "end_time", Err: err}
	}
	if start >= end {
		return nil, ErrInvalidInterval
	}

	slot := &db.TimeSlot{
		ID:        uuid.New().String(),
		RoomCode:  roomOrDefault(req.RoomCode),
		Nickname:  nickname,
		Date:      req.Date,
		StartTime: start.String(),
		EndTime:   end.String(),
	}

	if err := store.InsertTimeSlot(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to save time slot: %w", err)
	}

	logger.Info("Time slot submitted",
		zap.String("id", slot.ID),
		zap.String("room_code", slot.RoomCode),
		zap.String("nickname", slot.Nickname),
		zap.String("date", slot.Date),
		zap.String("start", slot.StartTime),
		zap.String("end", slot.EndTime))

	return slot, nil
}

// GetTimes returns every time slot submitted to a room
func GetTimes(ctx context.Context, store db.TimeSlotStore, logger *zap.Logger, roomCode string) ([]db.TimeSlot, error) {
	roomCode = roomOrDefault(roomCode)

	slots, err := store.GetTimeSlots(ctx, roomCode)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time slots: %w", err)
	}

	logger.Debug("Fetched time slots", zap.String("room_code", roomCode), zap.Int("count", len(slots)))
	return slots, nil
}
