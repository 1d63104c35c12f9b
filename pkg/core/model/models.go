package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout used for every date string in the system
const DateLayout = "2006-01-02"

// DefaultRoomCode is the room used when a caller does not name one
const DefaultRoomCode = "MAJIANG"

// Segment is a part of the day a participant can mark as free
type Segment string

const (
	Morning   Segment = "morning"
	Noon      Segment = "noon"
	Afternoon Segment = "afternoon"
	Evening   Segment = "evening"
)

// Segments lists all segments in their display order
var Segments = []Segment{Morning, Noon, Afternoon, Evening}

// DefaultPlayers are the canonical participant labels
var DefaultPlayers = []string{"Player 1", "Player 2", "Player 3", "Player 4"}

// ParseSegment returns the segment named by s, or false when s is not recognised
func ParseSegment(s string) (Segment, bool) {
	for _, seg := range Segments {
		if string(seg) == s {
			return seg, true
		}
	}
	return "", false
}

// Rank returns the position of the segment within a day, or -1 for unknown segments
func (s Segment) Rank() int {
	for i, seg := range Segments {
		if seg == s {
			return i
		}
	}
	return -1
}

// ClockTime is a time of day expressed as minutes since midnight.
// 24:00 is allowed so an interval can end at the end of the day.
type ClockTime int

const (
	minutesPerDay = 24 * 60
)

// ParseClockTime parses an "HH:MM" string. Single digit hours ("9:30") are accepted.
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	// Tolerate a seconds component from browsers that send HH:MM:SS
	if i := strings.Index(mm, ":"); i >= 0 {
		mm = mm[:i]
	}

	h, err := strconv.Atoi(hh)
	if err != nil || len(hh) == 0 || len(hh) > 2 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || len(mm) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("time %q out of range", s)
	}

	return ClockTime(h*60 + m), nil
}

// MustClockTime parses s and panics on error. Intended for tests and constants.
func MustClockTime(s string) ClockTime {
	t, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String formats the time as zero padded HH:MM
func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Valid reports whether t lies within a single day
func (t ClockTime) Valid() bool {
	return t >= 0 && t <= minutesPerDay
}

// ParseDate parses a YYYY-MM-DD date string
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// AvailabilityRecord is one cell of the month grid
type AvailabilityRecord struct {
	Participant string
	Date        string
	Segment     Segment
	Available   bool
}

// SlotKey identifies a (date, segment) cell independent of participant
type SlotKey struct {
	Date    string
	Segment Segment
}

// TimeInterval is a continuous free window submitted by a participant
type TimeInterval struct {
	Participant string
	Date        string
	Start       ClockTime
	End         ClockTime
}

// CommonInterval is a window on a date where every submitting participant is free
type CommonInterval struct {
	Date  string
	Start ClockTime
	End   ClockTime
}

// IsPlayer reports whether name is one of the given canonical labels
func IsPlayer(players []string, name string) bool {
	for _, p := range players {
		if p == name {
			return true
		}
	}
	return false
}
