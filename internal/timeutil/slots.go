package timeutil

// Slot is a candidate [Start,End) interval in minutes-since-midnight.
type Slot struct {
	Start int
	End   int
}

// StartHHMM and EndHHMM render the slot's endpoints as "HH:MM" strings.
func (s Slot) StartHHMM() string { return Format(s.Start) }
func (s Slot) EndHHMM() string   { return Format(s.End) }

// Slots1H is the canonical one-hour slot table: every valid hourly slot from
// 07:00 through 20:00, skipping the lunch hour. 12 slots.
var Slots1H = buildHourlySlots()

// Slots1H5 is the canonical 1.5-hour slot table at a half-hour cadence. 20 slots.
var Slots1H5 = buildNinetyMinuteSlots()

func buildHourlySlots() []Slot {
	var slots []Slot
	for start := DayStart; start+60 <= DayEnd; start += 60 {
		end := start + 60
		if ValidSlot(start, end) {
			slots = append(slots, Slot{Start: start, End: end})
		}
	}
	return slots
}

func buildNinetyMinuteSlots() []Slot {
	var slots []Slot
	for start := DayStart; start+90 <= DayEnd; start += 30 {
		end := start + 90
		if ValidSlot(start, end) {
			slots = append(slots, Slot{Start: start, End: end})
		}
	}
	return slots
}

// SlotsFor returns the canonical slot table matching the given session hours-per-session.
func SlotsFor(hoursPerSession float64) []Slot {
	if hoursPerSession >= 1.5 {
		return Slots1H5
	}
	return Slots1H
}
