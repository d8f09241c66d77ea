package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/curriculex/classgen/internal/models"
)

// CourseRepository handles persistence for curriculum course offerings.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new repository instance.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns courses matching filters with pagination metadata.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	base := "FROM courses WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.CurriculumYear != "" {
		conditions = append(conditions, fmt.Sprintf("curriculum_year = $%d", len(args)+1))
		args = append(args, filter.CurriculumYear)
	}
	if filter.Semester != "" {
		conditions = append(conditions, fmt.Sprintf("semester = $%d", len(args)+1))
		args = append(args, filter.Semester)
	}
	if filter.Program != "" && !strings.EqualFold(filter.Program, "all") {
		conditions = append(conditions, fmt.Sprintf("program = $%d", len(args)+1))
		args = append(args, filter.Program)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "subject_code"
	}
	allowedSorts := map[string]bool{
		"subject_code": true,
		"subject_name": true,
		"year_level":   true,
		"created_at":   true,
		"updated_at":   true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "subject_code"
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	columns := "id, curriculum_year, program, year_level, semester, subject_code, subject_name, department, lec_units, lab_units, tags, created_at, updated_at"
	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", columns, base, sortBy, order, size, offset)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	return courses, total, nil
}

// AllForGeneration loads every course for a (curriculum_year, semester) pair,
// optionally narrowed to one program, unpaginated: the full input set a
// generation run needs. An empty or "all" program means every program.
func (r *CourseRepository) AllForGeneration(ctx context.Context, curriculumYear, semester, program string) ([]models.Course, error) {
	columns := "id, curriculum_year, program, year_level, semester, subject_code, subject_name, department, lec_units, lab_units, tags, created_at, updated_at"
	var courses []models.Course
	var err error
	if program == "" || strings.EqualFold(program, "all") {
		query := fmt.Sprintf("SELECT %s FROM courses WHERE curriculum_year = $1 AND semester = $2 ORDER BY year_level, subject_code", columns)
		err = r.db.SelectContext(ctx, &courses, query, curriculumYear, semester)
	} else {
		query := fmt.Sprintf("SELECT %s FROM courses WHERE curriculum_year = $1 AND semester = $2 AND program = $3 ORDER BY year_level, subject_code", columns)
		err = r.db.SelectContext(ctx, &courses, query, curriculumYear, semester, program)
	}
	if err != nil {
		return nil, fmt.Errorf("load generation courses: %w", err)
	}
	return courses, nil
}

// Prospectus groups courses for one program/academic year into year-level x
// semester buckets, the shape get_prospectus returns.
func (r *CourseRepository) Prospectus(ctx context.Context, curriculumYear, program string) ([]models.ProspectusGroup, error) {
	const query = `SELECT id, curriculum_year, program, year_level, semester, subject_code, subject_name, department, lec_units, lab_units, tags, created_at, updated_at
		FROM courses WHERE curriculum_year = $1 AND program = $2 ORDER BY year_level, semester, subject_code`

	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, curriculumYear, program); err != nil {
		return nil, fmt.Errorf("load prospectus courses: %w", err)
	}

	groups := make(map[string]*models.ProspectusGroup)
	var order []string
	for _, c := range courses {
		key := c.YearLevel + "|" + c.Semester
		g, ok := groups[key]
		if !ok {
			g = &models.ProspectusGroup{YearLevel: c.YearLevel, Semester: c.Semester}
			groups[key] = g
			order = append(order, key)
		}
		g.Courses = append(g.Courses, c)
	}

	result := make([]models.ProspectusGroup, 0, len(order))
	for _, key := range order {
		result = append(result, *groups[key])
	}
	return result, nil
}

// FindByID returns a course by id.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, curriculum_year, program, year_level, semester, subject_code, subject_name, department, lec_units, lab_units, tags, created_at, updated_at
		FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create persists a new course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	const query = `INSERT INTO courses (id, curriculum_year, program, year_level, semester, subject_code, subject_name, department, lec_units, lab_units, tags, created_at, updated_at)
		VALUES (:id, :curriculum_year, :program, :year_level, :semester, :subject_code, :subject_name, :department, :lec_units, :lab_units, :tags, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update modifies a course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET curriculum_year = :curriculum_year, program = :program, year_level = :year_level,
		semester = :semester, subject_code = :subject_code, subject_name = :subject_name, department = :department,
		lec_units = :lec_units, lab_units = :lab_units, tags = :tags, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// Delete removes a course record.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}
