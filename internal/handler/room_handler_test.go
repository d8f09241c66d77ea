package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/curriculex/classgen/internal/models"
)

type roomStoreMock struct {
	created *models.Room
}

func (m *roomStoreMock) List(ctx context.Context, filter models.RoomFilter) ([]models.Room, int, error) {
	return []models.Room{{ID: "r1", Name: "Room 101"}}, 1, nil
}

func (m *roomStoreMock) FindByID(ctx context.Context, id string) (*models.Room, error) {
	return &models.Room{ID: id}, nil
}

func (m *roomStoreMock) Create(ctx context.Context, room *models.Room) error {
	room.ID = "r-new"
	m.created = room
	return nil
}

func (m *roomStoreMock) Update(ctx context.Context, room *models.Room) error {
	return nil
}

func (m *roomStoreMock) Delete(ctx context.Context, id string) error {
	return nil
}

func TestRoomHandlerListSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &RoomHandler{store: &roomStoreMock{}, validator: validator.New()}

	req, _ := http.NewRequest(http.MethodGet, "/rooms?lab_only=true", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRoomHandlerCreateSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &roomStoreMock{}
	handler := &RoomHandler{store: store, validator: validator.New()}

	body := []byte(`{"name":"Room 202"}`)
	req, _ := http.NewRequest(http.MethodPost, "/rooms", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "Room 202", store.created.Name)
}
