package availability

import (
	"strings"

	"github.com/curriculex/classgen/internal/models"
	"github.com/curriculex/classgen/internal/timeutil"
)

// DefaultRestBufferMinutes is the default minimum gap required between two
// same-day sessions for the same instructor. Oracle.RestBufferMinutes carries
// the value actually used, so the default can be overridden from config.
const DefaultRestBufferMinutes = 30

// Oracle answers the three availability predicates against a Tracker.
type Oracle struct {
	Tracker           *Tracker
	RestBufferMinutes int
}

// NewOracle builds an Oracle over the given tracker with the default rest buffer.
func NewOracle(tracker *Tracker) *Oracle {
	return &Oracle{Tracker: tracker, RestBufferMinutes: DefaultRestBufferMinutes}
}

// RoomFree implements room_free(room, days, start, end, semester).
func (o *Oracle) RoomFree(roomID string, days []string, start, end int, semester string) bool {
	for _, booking := range o.Tracker.RoomBookings(roomID) {
		if booking.Semester != semester {
			continue
		}
		if !containsDay(days, booking.Day) {
			continue
		}
		if timeutil.Overlaps(start, end, booking.Start, booking.End) {
			return false
		}
	}
	return true
}

// CohortFree implements cohort_free((program,year,sem), days, start, end).
func (o *Oracle) CohortFree(program, yearLevel, semester string, days []string, start, end int) bool {
	for _, booking := range o.Tracker.CohortBookings(program, yearLevel, semester) {
		if !containsDay(days, booking.Day) {
			continue
		}
		if timeutil.Overlaps(start, end, booking.Start, booking.End) {
			return false
		}
	}
	return true
}

// FacultyFree implements faculty_free(instructor, days, start, end, semester):
// no overlap with existing bookings, a rest buffer on the same day, day-set
// containment, and preferred-window containment.
func (o *Oracle) FacultyFree(instructor models.Instructor, days []string, start, end int, semester string) bool {
	if !daysAllowed(instructor.AvailableDaySet(), days) {
		return false
	}
	window := ParsePreferredWindow(instructor.PreferredWindow)
	if !window.Contains(start, end) {
		return false
	}

	for _, booking := range o.Tracker.FacultyBookings(instructor.ID) {
		if booking.Semester != semester {
			continue
		}
		if !containsDay(days, booking.Day) {
			continue
		}
		if !timeutil.RestSatisfied(start, end, booking.Start, booking.End, o.RestBufferMinutes) {
			return false
		}
	}
	return true
}

func daysAllowed(available map[string]struct{}, days []string) bool {
	if len(available) == 0 {
		return true
	}
	for _, day := range days {
		if _, ok := available[strings.ToLower(day)]; !ok {
			return false
		}
	}
	return true
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
