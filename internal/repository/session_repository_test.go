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

func newSessionRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSessionRepositorySaveReplacesPriorRows(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM scheduled_sessions WHERE academic_year = $1 AND semester = $2")).
		WithArgs("2026-2027", "1st Semester").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO scheduled_sessions")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	sessions := []models.ScheduledSession{
		{
			CourseID: "c1", Tag: models.SessionLecture, Day: "Monday", Start: "07:30", End: "09:00",
			InstructorID: "i1", InstructorName: "Ada Lovelace", RoomID: "r1", RoomName: "Room 101",
			SubjectCode: "CS101", SubjectName: "Intro to Programming", Program: "BSCS", YearLevel: "1st Year",
			Semester: "1st Semester", CurriculumYear: "2026-2027", LecUnits: 3,
		},
	}

	result, err := repo.Save(context.Background(), sessions)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Deleted)
	assert.Equal(t, 1, result.Inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositorySaveEmptyIsNoOp(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	result, err := repo.Save(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, models.SaveResult{}, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryListByAcademicYear(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "subject_code", "subject_name", "faculty_id", "faculty_name", "room_name",
		"day", "start_time", "end_time", "semester", "academic_year", "program", "year_level", "units", "lec", "lab",
		"tags", "recommended_faculty", "has_conflict", "status", "is_active", "created_at", "updated_at", "last_generated"}).
		AddRow(int64(1), "CS101", "Intro to Programming", "i1", "Ada Lovelace", "Room 101", "Monday", "07:30", "09:00",
			"1st Semester", "2026-2027", "BSCS", "1st Year", 3, 3, 0, types.JSONText(`[]`), types.JSONText(`[]`), false,
			string(models.StatusConflictFree), true, time.Now(), time.Now(), time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE academic_year = $1 ORDER BY day ASC, start_time ASC")).
		WithArgs("2026-2027").
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), "2026-2027")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "CS101", list[0].SubjectCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
