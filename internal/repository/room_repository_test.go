package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curriculex/classgen/internal/models"
)

func newRoomRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestRoomRepositoryAllOrdersByInsertion(t *testing.T) {
	db, mock, cleanup := newRoomRepoMock(t)
	defer cleanup()
	repo := NewRoomRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
		AddRow("r1", "Room 101", time.Now(), time.Now()).
		AddRow("r2", "Computer Lab 1", time.Now(), time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, created_at, updated_at FROM rooms ORDER BY created_at ASC, id ASC")).
		WillReturnRows(rows)

	rooms, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.True(t, rooms[1].IsLab())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryListLabOnly(t *testing.T) {
	db, mock, cleanup := newRoomRepoMock(t)
	defer cleanup()
	repo := NewRoomRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
		AddRow("r2", "Computer Lab 1", time.Now(), time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE 1=1 AND name ILIKE '%lab%' ORDER BY name ASC LIMIT 50 OFFSET 0")).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM rooms WHERE 1=1 AND name ILIKE '%lab%'")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rooms, total, err := repo.List(context.Background(), models.RoomFilter{LabOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, rooms, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRoomRepoMock(t)
	defer cleanup()
	repo := NewRoomRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM rooms WHERE id = $1")).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Delete(context.Background(), "r1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
