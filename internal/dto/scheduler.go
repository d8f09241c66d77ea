package dto

import "github.com/curriculex/classgen/internal/models"

// GenerateRequest instructs the generator to build a timetable proposal for
// one (curriculum year, semester, program) tuple. Program is optional: "" or
// "all" means every program for that year/semester.
type GenerateRequest struct {
	CurriculumYear string `json:"curriculum_year" validate:"required"`
	Semester       string `json:"semester" validate:"required,oneof='1st Semester' '2nd Semester' Summer"`
	Program        string `json:"program"`
}

// GenerateResponse is the in-memory output of a generation run, not yet persisted.
type GenerateResponse struct {
	Sessions          []models.ScheduledSession   `json:"sessions"`
	TotalSubjects     int                         `json:"total_subjects"`
	TotalFaculty      int                         `json:"total_faculty"`
	DistinctFaculty   []string                    `json:"distinct_faculty"`
	OptimizationScore int                         `json:"optimization_score"`
	Warnings          []models.UnplaceableWarning `json:"warnings,omitempty"`
	ValidationIssues  []models.ValidationIssue    `json:"validation_issues,omitempty"`
}

// SaveRequest persists a previously generated session set, replacing whatever
// was saved before for the (curriculum_year, semester) the sessions carry.
type SaveRequest struct {
	Sessions []models.ScheduledSession `json:"sessions" validate:"required,min=1,dive"`
}

// SaveResponse reports how many rows the save transaction replaced.
type SaveResponse struct {
	Deleted  int `json:"deleted"`
	Inserted int `json:"inserted"`
}

// ListQuery filters the persisted timetable read endpoint.
type ListQuery struct {
	AcademicYear string `form:"academic_year" json:"academic_year"`
}

// ProspectusQuery requests the curriculum prospectus view.
type ProspectusQuery struct {
	AcademicYear string `form:"academic_year" json:"academic_year" validate:"required"`
	Program      string `form:"program" json:"program" validate:"required"`
}

// ProspectusResponse groups curriculum courses by year level and semester.
type ProspectusResponse struct {
	Groups []models.ProspectusGroup `json:"groups"`
}

// ExportQuery selects the format and scope for a timetable export.
type ExportQuery struct {
	AcademicYear string `form:"academic_year" json:"academic_year"`
	Format       string `form:"format" json:"format" validate:"required,oneof=csv pdf"`
}
