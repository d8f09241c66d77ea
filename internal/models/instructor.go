package models

import (
	"strings"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// UserRole enumerates the instructor roles the scheduler cares about.
type UserRole string

const (
	RoleFaculty        UserRole = "FACULTY"
	RoleDepartmentHead UserRole = "DEPARTMENT_HEAD"
	RoleRegistrar      UserRole = "REGISTRAR"
	RoleCampusAdmin    UserRole = "CAMPUS_ADMIN"
)

// UserStatus enumerates the approval lifecycle of an instructor account.
type UserStatus string

const (
	StatusPending  UserStatus = "PENDING"
	StatusVerified UserStatus = "VERIFIED"
	StatusApproved UserStatus = "APPROVED"
)

// Instructor is a schedulable faculty member.
type Instructor struct {
	ID               string         `db:"id" json:"id"`
	FirstName        string         `db:"first_name" json:"first_name" validate:"required"`
	LastName         string         `db:"last_name" json:"last_name" validate:"required"`
	Role             UserRole       `db:"role" json:"role" validate:"required,oneof=FACULTY DEPARTMENT_HEAD REGISTRAR CAMPUS_ADMIN"`
	Status           UserStatus     `db:"status" json:"status" validate:"required,oneof=PENDING VERIFIED APPROVED"`
	Designation      string         `db:"designation" json:"designation"`
	Department       string         `db:"department" json:"department"`
	Specializations  types.JSONText `db:"specializations" json:"specializations"`
	PreviousSubjects types.JSONText `db:"previous_subjects" json:"previous_subjects"`
	YearsExperience  int            `db:"years_experience" json:"years_experience" validate:"gte=0,lte=50"`
	PreferredWindow  types.JSONText `db:"preferred_window" json:"preferred_window"`
	AvailableDays    types.JSONText `db:"available_days" json:"available_days"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// FullName renders "First Last".
func (i Instructor) FullName() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}

// Schedulable reports whether the instructor may be assigned sessions at all.
func (i Instructor) Schedulable() bool {
	return i.Status == StatusApproved
}

// IsRegular reports the designation-substring convention.
func (i Instructor) IsRegular() bool {
	return strings.Contains(strings.ToLower(i.Designation), "regular")
}

// SpecializationSet decodes the stored specialization keywords, lower-cased.
func (i Instructor) SpecializationSet() map[string]struct{} {
	return decodeStringSet(i.Specializations)
}

// PreviousSubjectSet decodes the stored previous-subject keywords, lower-cased.
func (i Instructor) PreviousSubjectSet() map[string]struct{} {
	return decodeStringSet(i.PreviousSubjects)
}

// AvailableDaySet decodes the declared available weekdays, lower-cased.
// An empty set means "fully available".
func (i Instructor) AvailableDaySet() map[string]struct{} {
	return decodeStringSet(i.AvailableDays)
}

// Cap returns the instructor's unit cap given the configured global default.
func (i Instructor) Cap(globalMax, campusAdminMax int) int {
	if i.Role == RoleCampusAdmin {
		return campusAdminMax
	}
	return globalMax
}

// InstructorFilter captures supported read filters for the instructor repository.
type InstructorFilter struct {
	Department string
	Status     UserStatus
	Search     string
	Page       int
	PageSize   int
}

// Candidate extends an Instructor with the faculty scorer's derived ranking fields.
type Candidate struct {
	Instructor
	MatchScore         float64
	TagMatchPercentage float64
	CurrentWorkload    int
	Rank               int
}
