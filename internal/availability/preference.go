package availability

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx/types"

	"github.com/curriculex/classgen/internal/timeutil"
)

// Window is a normalized [Start,End] preferred-time interval in minutes-of-day.
// A zero-value Window (Declared == false) means "fully available".
type Window struct {
	Start    int
	End      int
	Declared bool
}

var twelveHourPattern = regexp.MustCompile(`(?i)^\s*(\d{1,2}):(\d{2})\s*(AM|PM)\s*-\s*(\d{1,2}):(\d{2})\s*(AM|PM)\s*$`)

// ParsePreferredWindow normalizes the two encodings an instructor's preferred
// time window may arrive in:
//   - the ordered pair ["start:HH:MM", "end:HH:MM"]
//   - a free-form string like "8:00 AM - 5:00 PM"
//
// Absence or an unparsable value yields an undeclared Window, i.e. fully available.
func ParsePreferredWindow(raw types.JSONText) Window {
	if len(raw) == 0 {
		return Window{}
	}

	var pair []string
	if err := raw.Unmarshal(&pair); err == nil && len(pair) == 2 {
		if w, ok := parsePrefixedPair(pair); ok {
			return w
		}
	}

	var single string
	if err := raw.Unmarshal(&single); err == nil {
		if w, ok := parseTwelveHourRange(single); ok {
			return w
		}
	}

	return Window{}
}

func parsePrefixedPair(pair []string) (Window, bool) {
	start, ok1 := stripPrefixTime(pair[0], "start:")
	end, ok2 := stripPrefixTime(pair[1], "end:")
	if !ok1 || !ok2 {
		return Window{}, false
	}
	return Window{Start: start, End: end, Declared: true}, true
}

func stripPrefixTime(s, prefix string) (int, bool) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, prefix) {
		return 0, false
	}
	clock := s[len(prefix):]
	m, err := timeutil.ToMinutes(clock)
	if err != nil {
		return 0, false
	}
	return m, true
}

func parseTwelveHourRange(s string) (Window, bool) {
	m := twelveHourPattern.FindStringSubmatch(s)
	if m == nil {
		return Window{}, false
	}
	start, ok1 := to24Hour(m[1], m[2], m[3])
	end, ok2 := to24Hour(m[4], m[5], m[6])
	if !ok1 || !ok2 {
		return Window{}, false
	}
	return Window{Start: start, End: end, Declared: true}, true
}

func to24Hour(hourStr, minuteStr, meridiem string) (int, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 1 || hour > 12 {
		return 0, false
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	meridiem = strings.ToUpper(meridiem)
	if meridiem == "AM" {
		if hour == 12 {
			hour = 0
		}
	} else {
		if hour != 12 {
			hour += 12
		}
	}
	return hour*60 + minute, true
}

// Contains reports whether [start,end] fits inside the window, or always true
// when the window is undeclared.
func (w Window) Contains(start, end int) bool {
	if !w.Declared {
		return true
	}
	return start >= w.Start && end <= w.End
}
