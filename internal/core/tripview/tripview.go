// Package tripview turns a raw trip collection plus a filter spec into the
// displayed, ordered subset. Both operations are pure: they derive new
// slices and never mutate the source collection.
package tripview

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cabrix/dispatch-api/internal/core/domain"
)

// FilterAll keeps every status.
const FilterAll = "all"

// FilterSpec is the transient, view-local filter state for the admin trip
// listing. Zero values impose no constraint.
type FilterSpec struct {
	Status     string
	SearchTerm string
	DateFrom   time.Time
	DateTo     time.Time
}

// Reset restores the default (identity) filter.
func (f *FilterSpec) Reset() {
	*f = FilterSpec{Status: FilterAll}
}

// Order sorts trips for display, stably:
//  1. unassigned pending trips before everything else;
//  2. among unassigned pending trips, newest created_at first;
//  3. otherwise by status rank (pending < in_progress < completed < cancelled);
//  4. rank ties broken by newest created_at first.
func Order(trips []*domain.Trip) []*domain.Trip {
	out := make([]*domain.Trip, len(trips))
	copy(out, trips)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]

		aUrgent, bUrgent := a.UnassignedPending(), b.UnassignedPending()
		if aUrgent != bUrgent {
			return aUrgent
		}
		if aUrgent && bUrgent {
			return a.CreatedAt.After(b.CreatedAt)
		}

		ar, br := a.Status.StatusRank(), b.Status.StatusRank()
		if ar != br {
			return ar < br
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	return out
}

// Filter applies every constraint in the FilterSpec conjunctively and
// returns the matching subset in source order.
func Filter(trips []*domain.Trip, spec FilterSpec) []*domain.Trip {
	out := make([]*domain.Trip, 0, len(trips))
	for _, t := range trips {
		if matches(t, spec) {
			out = append(out, t)
		}
	}
	return out
}

// Display is the list a dashboard renders: Order(Filter(trips, spec)).
func Display(trips []*domain.Trip, spec FilterSpec) []*domain.Trip {
	return Order(Filter(trips, spec))
}

func matches(t *domain.Trip, spec FilterSpec) bool {
	if spec.Status != "" && spec.Status != FilterAll && string(t.Status) != spec.Status {
		return false
	}

	if spec.SearchTerm != "" && !matchesSearch(t, spec.SearchTerm) {
		return false
	}

	if !spec.DateFrom.IsZero() {
		if t.CreatedAt.Before(startOfDay(spec.DateFrom)) {
			return false
		}
	}
	if !spec.DateTo.IsZero() {
		if t.CreatedAt.After(endOfDay(spec.DateTo)) {
			return false
		}
	}
	return true
}

// matchesSearch checks the term, case-insensitively, against the trip id's
// decimal string, the passenger's full name, and both locations.
func matchesSearch(t *domain.Trip, term string) bool {
	needle := strings.ToLower(term)

	if strings.Contains(strconv.FormatInt(t.ID, 10), needle) {
		return true
	}
	if t.Passenger != nil && strings.Contains(strings.ToLower(t.Passenger.FullName()), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(t.PickupLocation), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(t.DropoffLocation), needle)
}

func startOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

func endOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, int(999*time.Millisecond), d.Location())
}
