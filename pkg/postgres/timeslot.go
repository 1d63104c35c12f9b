package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/mahjong-time/pkg/db"
)

// GetTimeSlots retrieves all time slots of a room ordered by date and start time
func (d *DB) GetTimeSlots(ctx context.Context, roomCode string) ([]db.TimeSlot, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, room_code, nickname, date, start_time, end_time, created_at
		FROM time_slots
		WHERE room_code = $1
		ORDER BY date, start_time
	`, roomCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query time slots: %w", err)
	}
	defer rows.Close()

	slots := make([]db.TimeSlot, 0)
	for rows.Next() {
		var s db.TimeSlot
		var date time.Time
		if err := rows.Scan(&s.ID, &s.RoomCode, &s.Nickname, &date, &s.StartTime, &s.EndTime, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan time slot: %w", err)
		}
		s.Date = date.Format("2006-01-02")
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time slots: %w", err)
	}

	return slots, nil
}

// InsertTimeSlot appends a time slot; existing slots are never overwritten
func (d *DB) InsertTimeSlot(ctx context.Context, slot *db.TimeSlot) error {
	err := d.pool.QueryRow(ctx, `
		INSERT INTO time_slots (id, room_code, nickname, date, start_time, end_time)
		VALUES ($1, $2, $3, $4::date, $5, $6)
		RETURNING created_at
	`, slot.ID, slot.RoomCode, slot.Nickname, slot.Date, slot.StartTime, slot.EndTime).Scan(&slot.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert time slot: %w", err)
	}
	return nil
}
