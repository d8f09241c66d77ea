package models

import (
	"strings"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Course is a curriculum course offering for a given academic year, program,
// year level and semester.
type Course struct {
	ID             string         `db:"id" json:"id"`
	CurriculumYear string         `db:"curriculum_year" json:"curriculum_year" validate:"required"`
	Program        string         `db:"program" json:"program" validate:"required"`
	YearLevel      string         `db:"year_level" json:"year_level" validate:"required"`
	Semester       string         `db:"semester" json:"semester" validate:"required"`
	SubjectCode    string         `db:"subject_code" json:"subject_code" validate:"required"`
	SubjectName    string         `db:"subject_name" json:"subject_name" validate:"required"`
	Department     string         `db:"department" json:"department"`
	LecUnits       int            `db:"lec_units" json:"lec_units" validate:"gte=0"`
	LabUnits       int            `db:"lab_units" json:"lab_units" validate:"gte=0"`
	Tags           types.JSONText `db:"tags" json:"tags"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// TotalUnits sums lecture and laboratory units.
func (c Course) TotalUnits() int {
	return c.LecUnits + c.LabUnits
}

// TagSet decodes the stored JSON tag array into a lower-cased set.
func (c Course) TagSet() map[string]struct{} {
	return decodeStringSet(c.Tags)
}

func decodeStringSet(raw types.JSONText) map[string]struct{} {
	set := make(map[string]struct{})
	if len(raw) == 0 {
		return set
	}
	var values []string
	if err := raw.Unmarshal(&values); err != nil {
		return set
	}
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

// CourseFilter captures the query keys used when loading a generation run's input set.
type CourseFilter struct {
	CurriculumYear string
	Semester       string
	Program        string // "" or "all" means unfiltered
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}

// ProspectusGroup is the grouped view returned by get_prospectus: courses for one
// (year level, semester) bucket within a program/academic year.
type ProspectusGroup struct {
	YearLevel string   `json:"year_level"`
	Semester  string   `json:"semester"`
	Courses   []Course `json:"courses"`
}
