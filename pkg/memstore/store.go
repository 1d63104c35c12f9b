package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jakechorley/mahjong-time/pkg/db"
)

type cellKey struct {
	roomCode string
	nickname string
	date     string
	segment  string
}

// Store is an in-memory implementation of db.Database.
// It is used when no database URL is configured and as the store behind service tests.
type Store struct {
	mu           sync.RWMutex
	availability map[cellKey]db.Availability
	timeSlots    []db.TimeSlot
	now          func() time.Time
}

// New creates an empty store
func New() *Store {
	return &Store{
		availability: make(map[cellKey]db.Availability),
		now:          time.Now,
	}
}

// GetAvailability returns the rows of a room with from <= date < to, ordered by date, nickname and segment
func (s *Store) GetAvailability(ctx context.Context, roomCode, from, to string) ([]db.Availability, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]db.Availability, 0)
	for key, a := range s.availability {
		// Dates are fixed width YYYY-MM-DD so lexical order is chronological
		if key.roomCode != roomCode || key.date < from || key.date >= to {
			continue
		}
		result = append(result, a)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		if result[i].Nickname != result[j].Nickname {
			return result[i].Nickname < result[j].Nickname
		}
		return result[i].Segment < result[j].Segment
	})

	return result, nil
}

// UpsertAvailability applies all changes under a single lock so readers never see half a batch
func (s *Store) UpsertAvailability(ctx context.Context, roomCode, nickname string, changes []db.AvailabilityChange) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, ch := range changes {
		key := cellKey{roomCode: roomCode, nickname: nickname, date: ch.Date, segment: ch.Segment}
		s.availability[key] = db.Availability{
			RoomCode:  roomCode,
			Nickname:  nickname,
			Date:      ch.Date,
			Segment:   ch.Segment,
			Available: ch.Available,
			UpdatedAt: now,
		}
	}
	return nil
}

// GetTimeSlots returns a copy of the time slots of a room ordered by date and start time
func (s *Store) GetTimeSlots(ctx context.Context, roomCode string) ([]db.TimeSlot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]db.TimeSlot, 0)
	for _, slot := range s.timeSlots {
		if slot.RoomCode == roomCode {
			result = append(result, slot)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].StartTime < result[j].StartTime
	})

	return result, nil
}

// InsertTimeSlot appends a time slot
func (s *Store) InsertTimeSlot(ctx context.Context, slot *db.TimeSlot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slot.CreatedAt = s.now()
	s.timeSlots = append(s.timeSlots, *slot)
	return nil
}

// Close is a no-op
func (s *Store) Close() {}
