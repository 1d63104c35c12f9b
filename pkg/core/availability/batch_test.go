package availability

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/mahjong-time/pkg/core/model"
)

func strPtr(s string) *string { return &s }

func TestNormalizeBatch_InvalidParticipant(t *testing.T) {
	changes := []Change{{Date: strPtr("2026-01-01"), Segment: strPtr("morning"), Available: 1}}

	_, err := NormalizeBatch(model.DefaultPlayers, "Player 5", changes)
	assert.ErrorIs(t, err, ErrInvalidParticipant)
}

func TestNormalizeBatch_EmptyChanges(t *testing.T) {
	_, err := NormalizeBatch(model.DefaultPlayers, "Player 1", nil)
	assert.ErrorIs(t, err, ErrEmptyChanges)
}

func TestNormalizeBatch_SkipsMissingDate(t *testing.T) {
	changes := []Change{
		{Date: nil, Segment: strPtr("evening"), Available: 1},
		{Date: strPtr("2026-01-01"), Segment: strPtr("morning"), Available: 1},
	}

	batch, err := NormalizeBatch(model.DefaultPlayers, "Player 1", changes)
	require.NoError(t, err)

	require.Len(t, batch.Records, 1)
	assert.Equal(t, "2026-01-01", batch.Records[0].Date)
	assert.Equal(t, model.Morning, batch.Records[0].Segment)
	assert.True(t, batch.Records[0].Available)

	require.Len(t, batch.Skipped, 1)
	assert.Equal(t, 0, batch.Skipped[0].Index)
}

func TestNormalizeBatch_SkipsUnknownSegmentAndBadDate(t *testing.T) {
	changes := []Change{
		{Date: strPtr("2026-01-01"), Segment: strPtr("midnight"), Available: 1},
		{Date: strPtr("01/02/2026"), Segment: strPtr("noon"), Available: 1},
		{Date: strPtr("2026-01-03"), Segment: strPtr(""), Available: 1},
		{Date: strPtr("2026-01-04"), Segment: strPtr("afternoon"), Available: 0},
	}

	batch, err := NormalizeBatch(model.DefaultPlayers, "Player 2", changes)
	require.NoError(t, err)

	require.Len(t, batch.Records, 1)
	assert.Equal(t, model.Afternoon, batch.Records[0].Segment)
	assert.False(t, batch.Records[0].Available)

	require.Len(t, batch.Skipped, 3)
	assert.Contains(t, batch.Skipped[0].Reason, "unknown segment")
	assert.Contains(t, batch.Skipped[1].Reason, "invalid date")
	assert.Equal(t, 2, batch.Skipped[2].Index)
}

func TestNormalizeBatch_AllSkippedStillSucceeds(t *testing.T) {
	changes := []Change{{Segment: strPtr("evening"), Available: 1}}

	batch, err := NormalizeBatch(model.DefaultPlayers, "Player 1", changes)
	require.NoError(t, err)
	assert.Empty(t, batch.Records)
	assert.Len(t, batch.Skipped, 1)
}

func TestCoerceAvailable(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{"int 1", 1, true},
		{"int 0", 0, false},
		{"int 2 clamps", 2, false},
		{"float 1", float64(1), true},
		{"float 1.5 clamps", 1.5, false},
		{"negative clamps", float64(-1), false},
		{"bool true", true, true},
		{"bool false", false, false},
		{"string 1", "1", true},
		{"string true", "TRUE", true},
		{"string yes clamps", "yes", false},
		{"json number 1", json.Number("1"), true},
		{"nil", nil, false},
		{"object clamps", map[string]any{"x": 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CoerceAvailable(tt.value))
		})
	}
}

func TestChange_DecodesNullDate(t *testing.T) {
	var changes []Change
	err := json.Unmarshal([]byte(`[{"date": null, "segment": "evening", "available": 1}]`), &changes)
	require.NoError(t, err)

	require.Len(t, changes, 1)
	assert.Nil(t, changes[0].Date)
	assert.Equal(t, "evening", *changes[0].Segment)
	assert.True(t, CoerceAvailable(changes[0].Available))
}

func TestExpandRecurrence_Weekly(t *testing.T) {
	changes, err := ExpandRecurrence("DTSTART=20260102T000000Z;FREQ=WEEKLY;BYDAY=FR;COUNT=4", "evening", true)
	require.NoError(t, err)

	require.Len(t, changes, 4)
	dates := make([]string, len(changes))
	for i, ch := range changes {
		dates[i] = *ch.Date
		assert.Equal(t, "evening", *ch.Segment)
		assert.True(t, CoerceAvailable(ch.Available))
	}
	assert.Equal(t, []string{"2026-01-02", "2026-01-09", "2026-01-16", "2026-01-23"}, dates)
}

func TestExpandRecurrence_Unavailable(t *testing.T) {
	changes, err := ExpandRecurrence("DTSTART=20260101T000000Z;FREQ=DAILY;COUNT=2", "noon", false)
	require.NoError(t, err)

	require.Len(t, changes, 2)
	assert.False(t, CoerceAvailable(changes[0].Available))
}

func TestExpandRecurrence_UnboundedIsCapped(t *testing.T) {
	changes, err := ExpandRecurrence("DTSTART=20260101T000000Z;FREQ=DAILY", "noon", true)
	require.NoError(t, err)
	assert.Len(t, changes, maxRecurrences)
}

func TestExpandRecurrence_InvalidRule(t *testing.T) {
	_, err := ExpandRecurrence("INVALID_RRULE_SYNTAX", "noon", true)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}
