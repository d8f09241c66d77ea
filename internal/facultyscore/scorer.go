// Package facultyscore ranks candidate instructors for a course.
package facultyscore

import (
	"sort"
	"strings"

	"github.com/curriculex/classgen/internal/models"
)

const (
	disqualifiedScore  = -1000
	previousSubjectPts = 50
	regularPts         = 10
	maxExperienceYears = 20
	shortlistSize      = 5
)

// Score computes the composite score and tag-match percentage for a candidate
// instructor against a course, given the instructor's current load and cap.
func Score(course models.Course, instructor models.Instructor, currentLoad, cap int) (score, tagMatch float64) {
	tags := course.TagSet()
	tagMatch = tagMatchPercentage(tags, instructor.SpecializationSet())

	score = tagMatch
	if matchesPreviousSubject(instructor.PreviousSubjectSet(), course.SubjectCode, course.SubjectName) {
		score += previousSubjectPts
	}
	score += float64(capExperience(instructor.YearsExperience))
	if instructor.IsRegular() {
		score += regularPts
	}

	if currentLoad >= cap {
		score = disqualifiedScore
	}
	return score, tagMatch
}

func tagMatchPercentage(courseTags, specializations map[string]struct{}) float64 {
	if len(courseTags) == 0 || len(specializations) == 0 {
		return 0
	}
	matched := 0
	for tag := range courseTags {
		if _, ok := specializations[tag]; ok {
			matched++
		}
	}
	return 100 * float64(matched) / float64(len(courseTags))
}

func matchesPreviousSubject(previous map[string]struct{}, subjectCode, subjectName string) bool {
	code := strings.ToLower(strings.TrimSpace(subjectCode))
	name := strings.ToLower(strings.TrimSpace(subjectName))
	if code != "" {
		if _, ok := previous[code]; ok {
			return true
		}
	}
	if name != "" {
		if _, ok := previous[name]; ok {
			return true
		}
	}
	return false
}

func capExperience(years int) int {
	if years > maxExperienceYears {
		return maxExperienceYears
	}
	if years < 0 {
		return 0
	}
	return years
}

// Rank scores every approved, schedulable instructor against the course, filters
// out disqualified and zero-score/zero-tag-match candidates, sorts by the
// deterministic tie-break chain, and returns the top five.
func Rank(course models.Course, instructors []models.Instructor, workload map[string]int, globalMaxUnits, campusAdminMaxUnits int) []models.Candidate {
	candidates := make([]models.Candidate, 0, len(instructors))
	for _, instructor := range instructors {
		if !instructor.Schedulable() {
			continue
		}
		load := workload[instructor.ID]
		cap := instructor.Cap(globalMaxUnits, campusAdminMaxUnits)
		score, tagMatch := Score(course, instructor, load, cap)
		if score <= 0 || tagMatch <= 0 {
			continue
		}
		candidates = append(candidates, models.Candidate{
			Instructor:         instructor,
			MatchScore:         score,
			TagMatchPercentage: tagMatch,
			CurrentWorkload:    load,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		if a.TagMatchPercentage != b.TagMatchPercentage {
			return a.TagMatchPercentage > b.TagMatchPercentage
		}
		if a.YearsExperience != b.YearsExperience {
			return a.YearsExperience > b.YearsExperience
		}
		return strings.ToLower(a.LastName) < strings.ToLower(b.LastName)
	})

	if len(candidates) > shortlistSize {
		candidates = candidates[:shortlistSize]
	}
	for i := range candidates {
		candidates[i].Rank = i + 1
	}
	return candidates
}
