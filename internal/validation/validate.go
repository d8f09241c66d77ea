// Package validation recomputes hour totals and checks for cohort conflicts
// across a completed generation run's placed sessions.
package validation

import (
	"fmt"
	"sort"

	"github.com/curriculex/classgen/internal/models"
	"github.com/curriculex/classgen/internal/timeutil"
)

const (
	lecHoursPerUnit = 1
	labHoursPerUnit = 3
	errorPenalty    = 5
	minScore        = 0
	maxScore        = 100
)

type subjectGroupKey struct {
	subjectCode string
	program     string
	yearLevel   string
	semester    string
}

// Validate recomputes per-subject expected-vs-actual weekly hours and checks
// every cohort for overlapping sessions, producing a report with a
// 0-100 optimization score.
func Validate(sessions []models.ScheduledSession, courses []models.Course) models.ValidationReport {
	var issues []models.ValidationIssue
	issues = append(issues, checkHours(sessions, courses)...)
	issues = append(issues, checkCohortConflicts(sessions)...)

	errorCount := 0
	for _, issue := range issues {
		if issue.Severity == models.SeverityError {
			errorCount++
		}
	}

	score := maxScore - errorPenalty*errorCount
	if score < minScore {
		score = minScore
	}

	return models.ValidationReport{Issues: issues, OptimizationScore: score}
}

// checkHours groups placed sessions by (subject, program, year level,
// semester) and compares the total weekly hours actually scheduled against
// the hours the course's lecture/lab units imply. The uniform
// lec*1 + lab*3 expectation is applied even to courses whose laboratory
// rule was built as a single one-hour session, which can legitimately
// disagree with what was placed; that discrepancy is preserved rather than
// silently corrected.
func checkHours(sessions []models.ScheduledSession, courses []models.Course) []models.ValidationIssue {
	const hoursTolerance = 0.1

	actualHours := make(map[subjectGroupKey]float64)
	lectureSessions := make(map[subjectGroupKey]int)
	for _, s := range sessions {
		key := subjectGroupKey{subjectCode: s.SubjectCode, program: s.Program, yearLevel: s.YearLevel, semester: s.Semester}
		start, err1 := timeutil.ToMinutes(s.Start)
		end, err2 := timeutil.ToMinutes(s.End)
		if err1 != nil || err2 != nil {
			continue
		}
		actualHours[key] += float64(end-start) / 60.0
		if s.Tag == models.SessionLecture {
			lectureSessions[key]++
		}
	}

	var issues []models.ValidationIssue
	for _, course := range courses {
		key := subjectGroupKey{subjectCode: course.SubjectCode, program: course.Program, yearLevel: course.YearLevel, semester: course.Semester}
		expected := float64(course.LecUnits*lecHoursPerUnit + course.LabUnits*labHoursPerUnit)
		actual := actualHours[key]
		if expected == 0 {
			continue
		}
		if delta := expected - actual; delta > hoursTolerance || -delta > hoursTolerance {
			issues = append(issues, models.ValidationIssue{
				Severity:  models.SeverityError,
				Message:   fmt.Sprintf("%s: expected %.1f weekly hours, %.1f scheduled", course.SubjectCode, expected, actual),
				Subject:   course.SubjectCode,
				Program:   course.Program,
				YearLevel: course.YearLevel,
			})
		}
		if course.LecUnits >= 2 && lectureSessions[key] != 2 {
			issues = append(issues, models.ValidationIssue{
				Severity:  models.SeverityWarning,
				Message:   fmt.Sprintf("%s: expected 2 weekly lecture sessions, found %d", course.SubjectCode, lectureSessions[key]),
				Subject:   course.SubjectCode,
				Program:   course.Program,
				YearLevel: course.YearLevel,
			})
		}
	}

	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Subject < issues[j].Subject })
	return issues
}

// checkCohortConflicts finds pairs of sessions for the same cohort that
// overlap in time on the same day, a hard error every placement in the
// scheduler should already prevent but which the report re-verifies.
func checkCohortConflicts(sessions []models.ScheduledSession) []models.ValidationIssue {
	byCohort := make(map[string][]models.ScheduledSession)
	for _, s := range sessions {
		byCohort[s.CohortKey()] = append(byCohort[s.CohortKey()], s)
	}

	cohortKeys := make([]string, 0, len(byCohort))
	for key := range byCohort {
		cohortKeys = append(cohortKeys, key)
	}
	sort.Strings(cohortKeys)

	var issues []models.ValidationIssue
	for _, key := range cohortKeys {
		group := byCohort[key]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Day != group[j].Day {
				return group[i].Day < group[j].Day
			}
			return group[i].Start < group[j].Start
		})
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if group[i].Day != group[j].Day {
					continue
				}
				s1, e1 := timeutil.MustMinutes(group[i].Start), timeutil.MustMinutes(group[i].End)
				s2, e2 := timeutil.MustMinutes(group[j].Start), timeutil.MustMinutes(group[j].End)
				if timeutil.Overlaps(s1, e1, s2, e2) {
					issues = append(issues, models.ValidationIssue{
						Severity:  models.SeverityError,
						Message:   fmt.Sprintf("cohort conflict on %s: %s (%s-%s) overlaps %s (%s-%s)", group[i].Day, group[i].SubjectCode, group[i].Start, group[i].End, group[j].SubjectCode, group[j].Start, group[j].End),
						Program:   group[i].Program,
						YearLevel: group[i].YearLevel,
					})
				}
			}
		}
	}
	return issues
}
