package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/mahjong-time/pkg/db"
)

// GetAvailability retrieves the availability rows of a room with from <= date < to
func (d *DB) GetAvailability(ctx context.Context, roomCode, from, to string) ([]db.Availability, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT room_code, nickname, date, segment, available, updated_at
		FROM availability
		WHERE room_code = $1
		  AND date >= $2::date
		  AND date < $3::date
		ORDER BY date, nickname, segment
	`, roomCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	availability := make([]db.Availability, 0)
	for rows.Next() {
		var a db.Availability
		var date time.Time
		var available int16
		if err := rows.Scan(&a.RoomCode, &a.Nickname, &date, &a.Segment, &available, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan availability: %w", err)
		}
		a.Date = date.Format("2006-01-02")
		a.Available = int(available)
		availability = append(availability, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating availability: %w", err)
	}

	return availability, nil
}

// UpsertAvailability writes every change for a participant in one transaction.
// An existing cell is overwritten and its updated_at refreshed.
func (d *DB) UpsertAvailability(ctx context.Context, roomCode, nickname string, changes []db.AvailabilityChange) error {
	if len(changes) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, ch := range changes {
		_, err := tx.Exec(ctx, `
			INSERT INTO availability (room_code, nickname, date, segment, available, updated_at)
			VALUES ($1, $2, $3::date, $4, $5, NOW())
			ON CONFLICT (room_code, nickname, date, segment)
			DO UPDATE SET available = EXCLUDED.available, updated_at = NOW()
		`, roomCode, nickname, ch.Date, ch.Segment, int16(ch.Available))
		if err != nil {
			return fmt.Errorf("failed to upsert availability for %s/%s: %w", ch.Date, ch.Segment, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
