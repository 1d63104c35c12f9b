package db

import "context"

// AvailabilityStore defines the interface for segment availability operations
type AvailabilityStore interface {
	// GetAvailability returns the rows of a room with from <= date < to
	GetAvailability(ctx context.Context, roomCode, from, to string) ([]Availability, error)
	// UpsertAvailability writes all changes for one participant atomically, last write wins per cell
	UpsertAvailability(ctx context.Context, roomCode, nickname string, changes []AvailabilityChange) error
}

// TimeSlotStore defines the interface for legacy interval operations
type TimeSlotStore interface {
	GetTimeSlots(ctx context.Context, roomCode string) ([]TimeSlot, error)
	InsertTimeSlot(ctx context.Context, slot *TimeSlot) error
}

// Database defines the interface for all database operations.
// Both postgres.DB and memstore.Store implement this interface.
type Database interface {
	AvailabilityStore
	TimeSlotStore
	Close()
}
