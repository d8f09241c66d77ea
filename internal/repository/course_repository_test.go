package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curriculex/classgen/internal/models"
)

func newCourseRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCourseRepositoryListFiltersByYearAndSemester(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	columns := "id, curriculum_year, program, year_level, semester, subject_code, subject_name, department, lec_units, lab_units, tags, created_at, updated_at"
	rows := sqlmock.NewRows([]string{"id", "curriculum_year", "program", "year_level", "semester", "subject_code", "subject_name", "department", "lec_units", "lab_units", "tags", "created_at", "updated_at"}).
		AddRow("c1", "2026-2027", "BSCS", "1st Year", "1st Semester", "CS101", "Intro to Programming", "BSCS", 3, 0, types.JSONText(`["programming"]`), time.Now(), time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + columns + " FROM courses WHERE 1=1 AND curriculum_year = $1 AND semester = $2 ORDER BY subject_code ASC LIMIT 50 OFFSET 0")).
		WithArgs("2026-2027", "1st Semester").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM courses WHERE 1=1 AND curriculum_year = $1 AND semester = $2")).
		WithArgs("2026-2027", "1st Semester").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), models.CourseFilter{CurriculumYear: "2026-2027", Semester: "1st Semester"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "CS101", list[0].SubjectCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryAllForGenerationFiltersByProgram(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "curriculum_year", "program", "year_level", "semester", "subject_code", "subject_name", "department", "lec_units", "lab_units", "tags", "created_at", "updated_at"}).
		AddRow("c1", "2026-2027", "BSCS", "1st Year", "1st Semester", "CS101", "Intro to Programming", "BSCS", 3, 0, types.JSONText(`[]`), time.Now(), time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE curriculum_year = $1 AND semester = $2 AND program = $3 ORDER BY year_level, subject_code")).
		WithArgs("2026-2027", "1st Semester", "BSCS").
		WillReturnRows(rows)

	courses, err := repo.AllForGeneration(context.Background(), "2026-2027", "1st Semester", "BSCS")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "CS101", courses[0].SubjectCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryProspectusGroupsByYearLevelAndSemester(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "curriculum_year", "program", "year_level", "semester", "subject_code", "subject_name", "department", "lec_units", "lab_units", "tags", "created_at", "updated_at"}).
		AddRow("c1", "2026-2027", "BSCS", "1st Year", "1st Semester", "CS101", "Intro to Programming", "BSCS", 3, 0, types.JSONText(`[]`), time.Now(), time.Now()).
		AddRow("c2", "2026-2027", "BSCS", "1st Year", "2nd Semester", "CS102", "Data Structures", "BSCS", 3, 1, types.JSONText(`[]`), time.Now(), time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("FROM courses WHERE curriculum_year = $1 AND program = $2 ORDER BY year_level, semester, subject_code")).
		WithArgs("2026-2027", "BSCS").
		WillReturnRows(rows)

	groups, err := repo.Prospectus(context.Background(), "2026-2027", "BSCS")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "1st Semester", groups[0].Semester)
	assert.Equal(t, "2nd Semester", groups[1].Semester)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO courses")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	course := &models.Course{SubjectCode: "CS201", CurriculumYear: "2026-2027", Program: "BSCS", Semester: "1st Semester"}
	require.NoError(t, repo.Create(context.Background(), course))
	assert.NotEmpty(t, course.ID)
	assert.False(t, course.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses WHERE id = $1")).
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Delete(context.Background(), "c1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
