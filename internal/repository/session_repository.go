package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/curriculex/classgen/internal/models"
)

// SessionRepository persists the generated timetable.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new repository instance.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, subject_code, subject_name, faculty_id, faculty_name, room_name, day, start_time, end_time,
	semester, academic_year, program, year_level, units, lec, lab, tags, recommended_faculty, has_conflict, status,
	is_active, created_at, updated_at, last_generated`

// List returns persisted sessions for an academic year, or every saved
// session if academicYear is empty.
func (r *SessionRepository) List(ctx context.Context, academicYear string) ([]models.PersistedSession, error) {
	query := fmt.Sprintf("SELECT %s FROM scheduled_sessions", sessionColumns)
	var sessions []models.PersistedSession
	var err error
	if academicYear == "" {
		query += " ORDER BY academic_year ASC, day ASC, start_time ASC"
		err = r.db.SelectContext(ctx, &sessions, query)
	} else {
		query += " WHERE academic_year = $1 ORDER BY day ASC, start_time ASC"
		err = r.db.SelectContext(ctx, &sessions, query, academicYear)
	}
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// Save replaces every persisted session for the (curriculum_year, semester)
// key carried by the first session in sessions, in one delete-then-insert
// transaction. An empty slice is a no-op.
func (r *SessionRepository) Save(ctx context.Context, sessions []models.ScheduledSession) (models.SaveResult, error) {
	if len(sessions) == 0 {
		return models.SaveResult{}, nil
	}

	academicYear := sessions[0].CurriculumYear
	semester := sessions[0].Semester

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.SaveResult{}, fmt.Errorf("begin save sessions: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	deleteResult, err := tx.ExecContext(ctx, `DELETE FROM scheduled_sessions WHERE academic_year = $1 AND semester = $2`, academicYear, semester)
	if err != nil {
		return models.SaveResult{}, fmt.Errorf("delete prior sessions: %w", err)
	}
	deletedRows, _ := deleteResult.RowsAffected()

	if err = r.bulkInsert(ctx, tx, sessions); err != nil {
		return models.SaveResult{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.SaveResult{}, fmt.Errorf("commit save sessions: %w", err)
	}

	return models.SaveResult{Deleted: int(deletedRows), Inserted: len(sessions)}, nil
}

func (r *SessionRepository) bulkInsert(ctx context.Context, tx *sqlx.Tx, sessions []models.ScheduledSession) error {
	now := time.Now().UTC()

	const query = `INSERT INTO scheduled_sessions (subject_code, subject_name, faculty_id, faculty_name, room_name,
		day, start_time, end_time, semester, academic_year, program, year_level, units, lec, lab, tags,
		recommended_faculty, has_conflict, status, is_active, created_at, updated_at, last_generated)
		VALUES (:subject_code, :subject_name, :faculty_id, :faculty_name, :room_name,
		:day, :start_time, :end_time, :semester, :academic_year, :program, :year_level, :units, :lec, :lab, :tags,
		:recommended_faculty, :has_conflict, :status, :is_active, :created_at, :updated_at, :last_generated)`

	for _, s := range sessions {
		tags, err := marshalTags(s.Tags)
		if err != nil {
			return fmt.Errorf("marshal session tags: %w", err)
		}

		row := models.PersistedSession{
			SubjectCode:  s.SubjectCode,
			SubjectName:  s.SubjectName,
			FacultyID:    s.InstructorID,
			FacultyName:  s.InstructorName,
			RoomName:     s.RoomName,
			Day:          s.Day,
			StartTime:    s.Start,
			EndTime:      s.End,
			Semester:     s.Semester,
			AcademicYear: s.CurriculumYear,
			Program:      s.Program,
			YearLevel:    s.YearLevel,
			Units:        s.LecUnits + s.LabUnits,
			Lec:          s.LecUnits,
			Lab:          s.LabUnits,
			Tags:         tags,
			HasConflict:  false,
			Status:       models.StatusConflictFree,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
			LastGenerated: now,
		}

		if _, err := sqlx.NamedExecContext(ctx, tx, query, &row); err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
	}
	return nil
}

func marshalTags(tags []string) (types.JSONText, error) {
	if len(tags) == 0 {
		return types.JSONText("[]"), nil
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return types.JSONText(raw), nil
}
