package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/curriculex/classgen/internal/dto"
	"github.com/curriculex/classgen/internal/models"
)

type scheduleGeneratorMock struct {
	generateCalled bool
	saveCalled     bool
	listCalled     bool
	prospectusArg  dto.ProspectusQuery
}

func (m *scheduleGeneratorMock) Generate(ctx context.Context, req dto.GenerateRequest) (*dto.GenerateResponse, error) {
	m.generateCalled = true
	return &dto.GenerateResponse{TotalSubjects: 1}, nil
}

func (m *scheduleGeneratorMock) Save(ctx context.Context, req dto.SaveRequest) (*dto.SaveResponse, error) {
	m.saveCalled = true
	return &dto.SaveResponse{Inserted: len(req.Sessions)}, nil
}

func (m *scheduleGeneratorMock) List(ctx context.Context, query dto.ListQuery) ([]models.PersistedSession, error) {
	m.listCalled = true
	return []models.PersistedSession{{SubjectCode: "CS101"}}, nil
}

func (m *scheduleGeneratorMock) GetProspectus(ctx context.Context, query dto.ProspectusQuery) (*dto.ProspectusResponse, error) {
	m.prospectusArg = query
	return &dto.ProspectusResponse{Groups: []models.ProspectusGroup{{YearLevel: "1st Year", Semester: "1st Semester"}}}, nil
}

func TestGenerationHandlerGenerateSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &scheduleGeneratorMock{}
	handler := &GenerationHandler{service: mockSvc}

	body := []byte(`{"curriculum_year":"2026-2027","semester":"1st Semester","program":"BSCS"}`)
	req, _ := http.NewRequest(http.MethodPost, "/schedules/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, mockSvc.generateCalled)
}

func TestGenerationHandlerGenerateBadJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &GenerationHandler{service: &scheduleGeneratorMock{}}
	req, _ := http.NewRequest(http.MethodPost, "/schedules/generate", bytes.NewReader([]byte(`{"curriculum_year":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerationHandlerSaveSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &scheduleGeneratorMock{}
	handler := &GenerationHandler{service: mockSvc}

	body := []byte(`{"sessions":[{"course_id":"c1"}]}`)
	req, _ := http.NewRequest(http.MethodPost, "/schedules", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Save(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, mockSvc.saveCalled)
}

func TestGenerationHandlerListSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &scheduleGeneratorMock{}
	handler := &GenerationHandler{service: mockSvc}

	req, _ := http.NewRequest(http.MethodGet, "/schedules?academic_year=2026-2027", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, mockSvc.listCalled)
}

func TestGenerationHandlerProspectusSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &scheduleGeneratorMock{}
	handler := &GenerationHandler{service: mockSvc}

	req, _ := http.NewRequest(http.MethodGet, "/schedules/prospectus?academic_year=2026-2027&program=BSCS", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Prospectus(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "2026-2027", mockSvc.prospectusArg.AcademicYear)
	require.Equal(t, "BSCS", mockSvc.prospectusArg.Program)
}
