package availability

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/mahjong-time/pkg/core/model"
)

var (
	// ErrInvalidParticipant is returned when a batch names someone outside the canonical labels
	ErrInvalidParticipant = errors.New("nickname must be one of the configured players")
	// ErrEmptyChanges is returned when a batch has no changes
	ErrEmptyChanges = errors.New("changes must be a non-empty list")
)

// maxRecurrences bounds how many dates a single recurrence rule may expand to
const maxRecurrences = 366

// Change is one requested cell update as received from a client.
// Available is left untyped because clients send 0/1, booleans or strings.
type Change struct {
	Date      *string `json:"date"`
	Segment   *string `json:"segment"`
	Available any     `json:"available"`
}

// Skipped describes a change that was dropped from a batch
type Skipped struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Batch is the validated form of a batch request
type Batch struct {
	Participant string
	Records     []model.AvailabilityRecord
	Skipped     []Skipped
}

// NormalizeBatch validates a batch for participant. The whole batch fails only for an unknown
// participant or an empty change list; individual malformed changes are skipped.
func NormalizeBatch(players []string, participant string, changes []Change) (*Batch, error) {
	if !model.IsPlayer(players, participant) {
		return nil, ErrInvalidParticipant
	}
	if len(changes) == 0 {
		return nil, ErrEmptyChanges
	}

	batch := &Batch{
		Participant: participant,
		Records:     make([]model.AvailabilityRecord, 0, len(changes)),
		Skipped:     make([]Skipped, 0),
	}

	for i, ch := range changes {
		if ch.Date == nil || *ch.Date == "" || ch.Segment == nil || *ch.Segment == "" {
			batch.Skipped = append(batch.Skipped, Skipped{Index: i, Reason: "missing date or segment"})
			continue
		}
		seg, ok := model.ParseSegment(*ch.Segment)
		if !ok {
			batch.Skipped = append(batch.Skipped, Skipped{Index: i, Reason: fmt.Sprintf("unknown segment %q", *ch.Segment)})
			continue
		}
		if _, err := model.ParseDate(*ch.Date); err != nil {
			batch.Skipped = append(batch.Skipped, Skipped{Index: i, Reason: err.Error()})
			continue
		}

		batch.Records = append(batch.Records, model.AvailabilityRecord{
			Participant: participant,
			Date:        *ch.Date,
			Segment:     seg,
			Available:   CoerceAvailable(ch.Available),
		})
	}

	return batch, nil
}

// CoerceAvailable maps a loosely typed client value to a boolean.
// Only 1, true, "1" and "true" mean available; everything else is unavailable.
func CoerceAvailable(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val == 1
	case int:
		return val == 1
	case int64:
		return val == 1
	case json.Number:
		return val.String() == "1"
	case string:
		s := strings.TrimSpace(val)
		return s == "1" || strings.EqualFold(s, "true")
	default:
		return false
	}
}

// ExpandRecurrence turns an RRULE into one change per occurrence for the given segment.
// The rule must be bounded (COUNT or UNTIL) or it is cut off at maxRecurrences.
func ExpandRecurrence(rule string, segment string, available bool) ([]Change, error) {
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule: %w", err)
	}

	var dates []time.Time
	iter := r.Iterator()
	for len(dates) < maxRecurrences {
		t, ok := iter()
		if !ok {
			break
		}
		dates = append(dates, t)
	}

	avail := 0
	if available {
		avail = 1
	}

	changes := make([]Change, 0, len(dates))
	for _, t := range dates {
		d := t.Format(model.DateLayout)
		seg := segment
		changes = append(changes, Change{Date: &d, Segment: &seg, Available: avail})
	}
	return changes, nil
}
