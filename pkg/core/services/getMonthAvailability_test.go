package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/mahjong-time/pkg/core/model"
	"github.com/jakechorley/mahjong-time/pkg/db"
	"github.com/jakechorley/mahjong-time/pkg/memstore"
)

func TestGetMonthAvailability_InvalidMonth(t *testing.T) {
	store := &mockAvailabilityStore{}

	for _, month := range []int{0, 13, -1} {
		_, err := GetMonthAvailability(context.Background(), store, zap.NewNop(), "", 2026, month)
		assert.ErrorIs(t, err, ErrInvalidMonth)
		assert.True(t, IsValidationError(err))
	}
	assert.Empty(t, store.lastFrom, "store should not be queried")
}

func TestGetMonthAvailability_InvalidYear(t *testing.T) {
	_, err := GetMonthAvailability(context.Background(), &mockAvailabilityStore{}, zap.NewNop(), "", 0, 1)
	assert.ErrorIs(t, err, ErrInvalidYear)
}

func TestGetMonthAvailability_QueriesMonthRange(t *testing.T) {
	store := &mockAvailabilityStore{}

	result, err := GetMonthAvailability(context.Background(), store, zap.NewNop(), "", 2026, 12)
	require.NoError(t, err)

	assert.Equal(t, model.DefaultRoomCode, store.lastRoom)
	assert.Equal(t, "2026-12-01", store.lastFrom)
	assert.Equal(t, "2027-01-01", store.lastTo)
	assert.Equal(t, time.December, result.Month)
	assert.Empty(t, result.Grid.Entries)
	assert.NotNil(t, result.Grid.Common)
	assert.NotNil(t, result.Grid.Participants)
}

func TestGetMonthAvailability_StoreError(t *testing.T) {
	store := &mockAvailabilityStore{getErr: errors.New("connection refused")}

	_, err := GetMonthAvailability(context.Background(), store, zap.NewNop(), "", 2026, 1)
	require.Error(t, err)
	assert.False(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "failed to fetch availability")
}

func TestGetMonthAvailability_FourthPlayerOnlyEvening(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	logger := zap.NewNop()

	for _, p := range model.DefaultPlayers[:3] {
		var changes []db.AvailabilityChange
		for _, seg := range model.Segments {
			changes = append(changes, db.AvailabilityChange{Date: "2026-01-10", Segment: string(seg), Available: 1})
		}
		require.NoError(t, store.UpsertAvailability(ctx, model.DefaultRoomCode, p, changes))
	}
	require.NoError(t, store.UpsertAvailability(ctx, model.DefaultRoomCode, "Player 4", []db.AvailabilityChange{
		{Date: "2026-01-10", Segment: "evening", Available: 1},
	}))
	// Outside the month
	require.NoError(t, store.UpsertAvailability(ctx, model.DefaultRoomCode, "Player 1", []db.AvailabilityChange{
		{Date: "2026-02-01", Segment: "morning", Available: 1},
	}))

	result, err := GetMonthAvailability(ctx, store, logger, "", 2026, 1)
	require.NoError(t, err)

	assert.Equal(t, model.DefaultPlayers, result.Grid.Participants)
	assert.Len(t, result.Grid.Entries, 13)
	assert.Equal(t, []model.SlotKey{{Date: "2026-01-10", Segment: model.Evening}}, result.Grid.Common)
}

func TestGetMonthAvailability_InactivePlayerDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	for _, p := range []string{"Player 1", "Player 2"} {
		require.NoError(t, store.UpsertAvailability(ctx, "ROOM", p, []db.AvailabilityChange{
			{Date: "2026-03-05", Segment: "noon", Available: 1},
		}))
	}

	result, err := GetMonthAvailability(ctx, store, zap.NewNop(), "ROOM", 2026, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"Player 1", "Player 2"}, result.Grid.Participants)
	assert.Equal(t, []model.SlotKey{{Date: "2026-03-05", Segment: model.Noon}}, result.Grid.Common)
}

func TestMonthRange(t *testing.T) {
	from, to := monthRange(2024, time.February)
	assert.Equal(t, "2024-02-01", from)
	assert.Equal(t, "2024-03-01", to)
}
