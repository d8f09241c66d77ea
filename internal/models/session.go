package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// SessionTag distinguishes a course's lecture component from its laboratory component.
type SessionTag string

const (
	SessionLecture    SessionTag = "Lecture"
	SessionLaboratory SessionTag = "Laboratory"
)

// Priority orders lecture sessions ahead of laboratory sessions.
func (t SessionTag) Priority() int {
	if t == SessionLaboratory {
		return 2
	}
	return 1
}

// SessionRule is a derived description of how many weekly sessions of what length
// a course's lecture or laboratory component requires.
type SessionRule struct {
	Tag             SessionTag
	HoursPerSession float64
	SessionsPerWeek int
}

// TotalHours is the weekly hour demand implied by this rule.
func (r SessionRule) TotalHours() float64 {
	return r.HoursPerSession * float64(r.SessionsPerWeek)
}

// ScheduledSession is one placed (day, time, room, instructor) slot for a course.
type ScheduledSession struct {
	CourseID       string     `json:"course_id"`
	Tag            SessionTag `json:"tag"`
	Day            string     `json:"day"`
	Start          string     `json:"start"` // HH:MM
	End            string     `json:"end"`   // HH:MM
	InstructorID   string     `json:"instructor_id"`
	InstructorName string     `json:"instructor_name"`
	RoomID         string     `json:"room_id"`
	RoomName       string     `json:"room_name"`
	SubjectCode    string     `json:"subject_code"`
	SubjectName    string     `json:"subject_name"`
	Program        string     `json:"program"`
	YearLevel      string     `json:"year_level"`
	Semester       string     `json:"semester"`
	CurriculumYear string     `json:"curriculum_year"`
	LecUnits       int        `json:"lec_units"`
	LabUnits       int        `json:"lab_units"`
	Tags           []string   `json:"tags,omitempty"`
}

// CohortKey identifies the student cohort a session belongs to.
func (s ScheduledSession) CohortKey() string {
	return s.Program + "|" + s.YearLevel + "|" + s.Semester
}

// PersistedSessionStatus mirrors the status column of the persisted timetable.
type PersistedSessionStatus string

const (
	StatusConflictFree PersistedSessionStatus = "conflict-free"
	StatusActive       PersistedSessionStatus = "active"
	StatusConflict     PersistedSessionStatus = "conflict"
)

// PersistedSession is the bit-exact persisted row shape of the timetable table.
type PersistedSession struct {
	ID                  int64          `db:"id" json:"id"`
	SubjectCode         string         `db:"subject_code" json:"subject_code"`
	SubjectName         string         `db:"subject_name" json:"subject_name"`
	FacultyID           string         `db:"faculty_id" json:"faculty_id"`
	FacultyName         string         `db:"faculty_name" json:"faculty_name"`
	RoomName            string         `db:"room_name" json:"room_name"`
	Day                 string         `db:"day" json:"day"`
	StartTime           string         `db:"start_time" json:"start_time"`
	EndTime             string         `db:"end_time" json:"end_time"`
	Semester            string         `db:"semester" json:"semester"`
	AcademicYear        string         `db:"academic_year" json:"academic_year"`
	Program             string         `db:"program" json:"program"`
	YearLevel           string         `db:"year_level" json:"year_level"`
	Units               int            `db:"units" json:"units"`
	Lec                 int            `db:"lec" json:"lec"`
	Lab                 int            `db:"lab" json:"lab"`
	Tags                types.JSONText `db:"tags" json:"tags,omitempty"`
	RecommendedFaculty  types.JSONText `db:"recommended_faculty" json:"recommended_faculty,omitempty"`
	HasConflict         bool           `db:"has_conflict" json:"has_conflict"`
	Status              PersistedSessionStatus `db:"status" json:"status"`
	IsActive            bool           `db:"is_active" json:"is_active"`
	CreatedAt           time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at" json:"updated_at"`
	LastGenerated       time.Time      `db:"last_generated" json:"last_generated"`
}

// ValidationSeverity distinguishes hard validation errors from soft warnings.
type ValidationSeverity string

const (
	SeverityError   ValidationSeverity = "ERROR"
	SeverityWarning ValidationSeverity = "WARNING"
)

// ValidationIssue is one finding from the validation pass.
type ValidationIssue struct {
	Severity ValidationSeverity `json:"severity"`
	Message  string             `json:"message"`
	Subject  string             `json:"subject,omitempty"`
	Program  string             `json:"program,omitempty"`
	YearLevel string            `json:"year_level,omitempty"`
}

// UnplaceableWarning records a session that could not be placed (error category 3).
type UnplaceableWarning struct {
	CourseID    string `json:"course_id"`
	SubjectCode string `json:"subject_code"`
	Tag         SessionTag `json:"tag"`
	Reason      string `json:"reason"`
}

// ValidationReport is the output of the validation pass.
type ValidationReport struct {
	Issues            []ValidationIssue `json:"issues"`
	OptimizationScore int               `json:"optimization_score"`
}

// SaveResult reports how many rows a save() call replaced.
type SaveResult struct {
	Deleted  int `json:"deleted"`
	Inserted int `json:"inserted"`
}

// GenerationResult is the in-memory output of generate().
type GenerationResult struct {
	Subjects          []ScheduledSession   `json:"subjects"`
	TotalSubjects      int                  `json:"total_subjects"`
	TotalFaculty       int                  `json:"total_faculty"`
	DistinctFaculty    []string             `json:"distinct_faculty"`
	OptimizationScore  int                  `json:"optimization_score"`
	Warnings           []UnplaceableWarning `json:"warnings,omitempty"`
	ValidationIssues   []ValidationIssue    `json:"validation_issues,omitempty"`
}
