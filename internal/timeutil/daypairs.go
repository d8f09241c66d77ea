package timeutil

// DayPair is an ordered pair of weekdays a two-session-per-week course is placed on.
type DayPair struct {
	First  string
	Second string
}

// Days returns the pair as a two-element slice, for callers that want to range over it.
func (p DayPair) Days() [2]string {
	return [2]string{p.First, p.Second}
}

// LecturePairs is the canonical search order for two-session lecture placement.
var LecturePairs = []DayPair{
	{"Monday", "Wednesday"},
	{"Tuesday", "Thursday"},
	{"Monday", "Friday"},
	{"Wednesday", "Friday"},
	{"Tuesday", "Friday"},
}

// LabPairs is the canonical search order for two-session laboratory placement.
var LabPairs = []DayPair{
	{"Tuesday", "Thursday"},
	{"Wednesday", "Friday"},
	{"Monday", "Friday"},
	{"Monday", "Wednesday"},
	{"Tuesday", "Friday"},
}

// SingleDays is the deduplicated, first-seen-order union of both canonical day-pair
// lists, used by the single-session-per-week placement case.
var SingleDays = buildSingleDays()

func buildSingleDays() []string {
	seen := make(map[string]struct{})
	var order []string
	add := func(day string) {
		if _, ok := seen[day]; ok {
			return
		}
		seen[day] = struct{}{}
		order = append(order, day)
	}
	for _, pair := range LecturePairs {
		add(pair.First)
		add(pair.Second)
	}
	for _, pair := range LabPairs {
		add(pair.First)
		add(pair.Second)
	}
	return order
}

// DayPairsFor returns the canonical day-pair search order for the given session tag.
// isLab selects the laboratory list; otherwise the lecture list is used.
func DayPairsFor(isLab bool) []DayPair {
	if isLab {
		return LabPairs
	}
	return LecturePairs
}
