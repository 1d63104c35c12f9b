package services

import (
	"context"

	"github.com/jakechorley/mahjong-time/pkg/db"
)

// mockAvailabilityStore implements db.AvailabilityStore
type mockAvailabilityStore struct {
	rows      []db.Availability
	getErr    error
	upsertErr error

	upsertCalls int
	lastRoom    string
	lastFrom    string
	lastTo      string
	lastChanges []db.AvailabilityChange
}

func (m *mockAvailabilityStore) GetAvailability(ctx context.Context, roomCode, from, to string) ([]db.Availability, error) {
	m.lastRoom, m.lastFrom, m.lastTo = roomCode, from, to
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.rows, nil
}

func (m *mockAvailabilityStore) UpsertAvailability(ctx context.Context, roomCode, nickname string, changes []db.AvailabilityChange) error {
	m.upsertCalls++
	m.lastRoom = roomCode
	m.lastChanges = changes
	return m.upsertErr
}

// mockTimeSlotStore implements db.TimeSlotStore
type mockTimeSlotStore struct {
	slots     []db.TimeSlot
	getErr    error
	insertErr error
	inserted  []*db.TimeSlot
}

func (m *mockTimeSlotStore) GetTimeSlots(ctx context.Context, roomCode string) ([]db.TimeSlot, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.slots, nil
}

func (m *mockTimeSlotStore) InsertTimeSlot(ctx context.Context, slot *db.TimeSlot) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, slot)
	return nil
}
