// Package sessionrule expands a course's lecture/laboratory unit counts into
// the ordered list of SessionRule values the placement engine consumes.
package sessionrule

import (
	"sort"
	"strings"

	"github.com/curriculex/classgen/internal/models"
)

// threeHourLabDepartments expands a single lab unit into 3 weekly hours
// instead of 1, for departments that run longer lab blocks.
var threeHourLabDepartments = map[string]struct{}{
	"BSCS": {},
	"ACT":  {},
}

// Build returns the ordered (lecture before laboratory) list of SessionRules
// for a course's unit counts and department.
func Build(lecUnits, labUnits int, department string) []models.SessionRule {
	var rules []models.SessionRule

	if r, ok := lectureRule(lecUnits); ok {
		rules = append(rules, r)
	}
	if r, ok := laboratoryRule(labUnits, department); ok {
		rules = append(rules, r)
	}

	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Tag.Priority() < rules[j].Tag.Priority()
	})
	return rules
}

func lectureRule(lecUnits int) (models.SessionRule, bool) {
	switch {
	case lecUnits == 0:
		return models.SessionRule{}, false
	case lecUnits == 3:
		return models.SessionRule{Tag: models.SessionLecture, HoursPerSession: 1.5, SessionsPerWeek: 2}, true
	case lecUnits == 2:
		return models.SessionRule{Tag: models.SessionLecture, HoursPerSession: 1, SessionsPerWeek: 2}, true
	case lecUnits == 1:
		return models.SessionRule{Tag: models.SessionLecture, HoursPerSession: 1, SessionsPerWeek: 1}, true
	default:
		return models.SessionRule{Tag: models.SessionLecture, HoursPerSession: 1, SessionsPerWeek: lecUnits}, true
	}
}

func laboratoryRule(labUnits int, department string) (models.SessionRule, bool) {
	if labUnits == 0 {
		return models.SessionRule{}, false
	}
	if _, ok := threeHourLabDepartments[strings.ToUpper(strings.TrimSpace(department))]; ok {
		return models.SessionRule{Tag: models.SessionLaboratory, HoursPerSession: 1.5, SessionsPerWeek: 2}, true
	}
	return models.SessionRule{Tag: models.SessionLaboratory, HoursPerSession: 1, SessionsPerWeek: 1}, true
}
