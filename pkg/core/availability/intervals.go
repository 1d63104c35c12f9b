package availability

import (
	"fmt"
	"sort"

	"github.com/jakechorley/mahjong-time/pkg/core/model"
)

// TouchPolicy decides whether two intervals that only share an endpoint have a common window
type TouchPolicy string

const (
	// TouchStrict discards zero-length intersections (10:00-10:00 is not common time)
	TouchStrict TouchPolicy = "strict"
	// TouchInclusive keeps zero-length intersections
	TouchInclusive TouchPolicy = "inclusive"
)

// ParseTouchPolicy maps a config value to a policy. Empty selects TouchStrict.
func ParseTouchPolicy(s string) (TouchPolicy, error) {
	switch TouchPolicy(s) {
	case "", TouchStrict:
		return TouchStrict, nil
	case TouchInclusive:
		return TouchInclusive, nil
	default:
		return "", fmt.Errorf("unknown touch policy %q", s)
	}
}

func (p TouchPolicy) accepts(start, end model.ClockTime) bool {
	if p == TouchInclusive {
		return start <= end
	}
	return start < end
}

// Span is a single [Start, End) window on an implicit date
type Span struct {
	Start model.ClockTime
	End   model.ClockTime
}

// IntersectSpans returns every pairwise intersection of a and b accepted by the policy.
// The result is unsorted and may contain overlapping spans.
func IntersectSpans(a, b []Span, policy TouchPolicy) []Span {
	var out []Span
	for _, x := range a {
		for _, y := range b {
			start := max(x.Start, y.Start)
			end := min(x.End, y.End)
			if policy.accepts(start, end) {
				out = append(out, Span{Start: start, End: end})
			}
		}
	}
	return out
}

// MergeSpans sorts spans by start and merges overlapping or touching ones.
// The input slice is not modified.
func MergeSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := []Span{sorted[0]}
	for _, cur := range sorted[1:] {
		last := &merged[len(merged)-1]
		if cur.Start <= last.End {
			last.End = max(last.End, cur.End)
			continue
		}
		merged = append(merged, cur)
	}
	return merged
}

// CommonSpans folds the per-participant span lists into the windows shared by all of them.
// Participants are folded in sorted order so the result does not depend on map iteration.
//
// Cost is the product of the list sizes, which is fine for a table of four but does not
// scale to large groups.
func CommonSpans(byParticipant map[string][]Span, policy TouchPolicy) []Span {
	if len(byParticipant) == 0 {
		return nil
	}

	participants := make([]string, 0, len(byParticipant))
	for p := range byParticipant {
		participants = append(participants, p)
	}
	sort.Strings(participants)

	common := byParticipant[participants[0]]
	for _, p := range participants[1:] {
		if len(common) == 0 {
			return nil
		}
		common = IntersectSpans(common, byParticipant[p], policy)
	}

	return MergeSpans(common)
}

// CommonIntervals computes the merged common windows for each date present in the input.
// Intervals whose start is not before their end are ignored. Dates are returned in ascending order.
func CommonIntervals(intervals []model.TimeInterval, policy TouchPolicy) []model.CommonInterval {
	byDate := make(map[string]map[string][]Span)
	for _, iv := range intervals {
		if !iv.Start.Valid() || !iv.End.Valid() || iv.Start >= iv.End {
			continue
		}
		participants, ok := byDate[iv.Date]
		if !ok {
			participants = make(map[string][]Span)
			byDate[iv.Date] = participants
		}
		participants[iv.Participant] = append(participants[iv.Participant], Span{Start: iv.Start, End: iv.End})
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	result := make([]model.CommonInterval, 0)
	for _, d := range dates {
		for _, span := range CommonSpans(byDate[d], policy) {
			result = append(result, model.CommonInterval{Date: d, Start: span.Start, End: span.End})
		}
	}
	return result
}
