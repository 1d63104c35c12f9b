package availability

import (
	"sort"

	"github.com/jakechorley/mahjong-time/pkg/core/model"
)

// MonthGrid is the computed view of one room's month
type MonthGrid struct {
	Entries      []model.AvailabilityRecord
	Participants []string
	Common       []model.SlotKey
}

// ActiveParticipants returns the distinct participants that have at least one record, sorted.
// A participant who has not touched the grid this month is not active and never blocks common slots.
func ActiveParticipants(records []model.AvailabilityRecord) []string {
	seen := make(map[string]bool)
	participants := make([]string, 0)
	for _, r := range records {
		if seen[r.Participant] {
			continue
		}
		seen[r.Participant] = true
		participants = append(participants, r.Participant)
	}
	sort.Strings(participants)
	return participants
}

// CommonSlots returns every (date, segment) where all active participants are available,
// sorted by date then segment rank. No active participants means no common slots.
func CommonSlots(records []model.AvailabilityRecord, active []string) []model.SlotKey {
	common := make([]model.SlotKey, 0)
	if len(active) == 0 {
		return common
	}

	free := make(map[model.SlotKey]map[string]bool)
	for _, r := range records {
		if !r.Available {
			continue
		}
		key := model.SlotKey{Date: r.Date, Segment: r.Segment}
		set, ok := free[key]
		if !ok {
			set = make(map[string]bool)
			free[key] = set
		}
		set[r.Participant] = true
	}

	for key, set := range free {
		if containsAll(set, active) {
			common = append(common, key)
		}
	}

	sort.Slice(common, func(i, j int) bool {
		if common[i].Date != common[j].Date {
			return common[i].Date < common[j].Date
		}
		return common[i].Segment.Rank() < common[j].Segment.Rank()
	})

	return common
}

// ComputeMonth builds the month grid from the records of a single room and month
func ComputeMonth(records []model.AvailabilityRecord) *MonthGrid {
	active := ActiveParticipants(records)
	entries := make([]model.AvailabilityRecord, len(records))
	copy(entries, records)

	return &MonthGrid{
		Entries:      entries,
		Participants: active,
		Common:       CommonSlots(records, active),
	}
}

func containsAll(set map[string]bool, participants []string) bool {
	for _, p := range participants {
		if !set[p] {
			return false
		}
	}
	return true
}
