package db

import "time"

// Availability represents a row of the availability table
type Availability struct {
	RoomCode  string
	Nickname  string
	Date      string
	Segment   string
	Available int
	UpdatedAt time.Time
}

// AvailabilityChange is a validated cell update to be upserted
type AvailabilityChange struct {
	Date      string
	Segment   string
	Available int
}

// TimeSlot represents a row of the legacy time_slots table
type TimeSlot struct {
	ID        string
	RoomCode  string
	Nickname  string
	Date      string
	StartTime string
	EndTime   string
	CreatedAt time.Time
}
