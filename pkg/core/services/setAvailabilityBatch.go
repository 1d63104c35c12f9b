package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/mahjong-time/pkg/core/availability"
	"github.com/jakechorley/mahjong-time/pkg/core/model"
	"github.com/jakechorley/mahjong-time/pkg/db"
)

// BatchResult reports what a batch actually wrote
type BatchResult struct {
	Applied int
	Skipped []availability.Skipped
}

// SetAvailabilityBatch validates and upserts a participant's cell changes.
// An unknown participant or an empty change list rejects the batch before anything is written.
// Malformed changes are skipped and reported; the rest are written in one transaction.
func SetAvailabilityBatch(
	ctx context.Context,
	store db.AvailabilityStore,
	players []string,
	logger *zap.Logger,
	roomCode string,
	nickname string,
	changes []availability.Change,
) (*BatchResult, error) {
	roomCode = roomOrDefault(roomCode)

	batch, err := availability.NormalizeBatch(players, nickname, changes)
	if err != nil {
		return nil, err
	}

	if len(batch.Skipped) > 0 {
		logger.Warn("Skipping malformed availability changes",
			zap.String("nickname", nickname),
			zap.Int("skipped", len(batch.Skipped)))
	}

	updates := make([]db.AvailabilityChange, len(batch.Records))
	for i, r := range batch.Records {
		updates[i] = db.AvailabilityChange{
			Date:      r.Date,
			Segment:   string(r.Segment),
			Available: boolToInt(r.Available),
		}
	}

	if len(updates) > 0 {
		if err := store.UpsertAvailability(ctx, roomCode, nickname, updates); err != nil {
			return nil, fmt.Errorf("failed to save availability: %w", err)
		}
	}

	logger.Info("Availability batch saved",
		zap.String("room_code", roomCode),
		zap.String("nickname", nickname),
		zap.Int("applied", len(updates)))

	return &BatchResult{
		Applied: len(updates),
		Skipped: batch.Skipped,
	}, nil
}

// SetRecurringAvailability expands an RRULE into dates and writes one segment for each of them
// through the same path as SetAvailabilityBatch
func SetRecurringAvailability(
	ctx context.Context,
	store db.AvailabilityStore,
	players []string,
	logger *zap.Logger,
	roomCode string,
	nickname string,
	rule string,
	segment string,
	available bool,
) (*BatchResult, error) {
	if !model.IsPlayer(players, nickname) {
		return nil, ErrInvalidParticipant
	}

	changes, err := availability.ExpandRecurrence(rule, segment, available)
	if err != nil {
		return nil, &ValidationError{Field: "rrule", Err: err}
	}

	logger.Debug("Expanded recurrence rule",
		zap.String("rrule", rule),
		zap.Int("occurrences", len(changes)))

	return SetAvailabilityBatch(ctx, store, players, logger, roomCode, nickname, changes)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
