package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/curriculex/classgen/internal/dto"
	"github.com/curriculex/classgen/internal/models"
	"github.com/curriculex/classgen/internal/service"
	appErrors "github.com/curriculex/classgen/pkg/errors"
	"github.com/curriculex/classgen/pkg/response"
)

type scheduleGenerator interface {
	Generate(ctx context.Context, req dto.GenerateRequest) (*dto.GenerateResponse, error)
	Save(ctx context.Context, req dto.SaveRequest) (*dto.SaveResponse, error)
	List(ctx context.Context, query dto.ListQuery) ([]models.PersistedSession, error)
	GetProspectus(ctx context.Context, query dto.ProspectusQuery) (*dto.ProspectusResponse, error)
}

// GenerationHandler exposes the generate/save/list/prospectus endpoints.
type GenerationHandler struct {
	service scheduleGenerator
}

// NewGenerationHandler constructs the handler.
func NewGenerationHandler(svc *service.GenerationService) *GenerationHandler {
	return &GenerationHandler{service: svc}
}

// Generate godoc
// @Summary Generate a conflict-free class schedule proposal
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body dto.GenerateRequest true "Generate schedule payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/generate [post]
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Save godoc
// @Summary Persist a generated schedule, replacing prior sessions for the term
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body dto.SaveRequest true "Save schedule payload"
// @Success 201 {object} response.Envelope
// @Router /schedules [post]
func (h *GenerationHandler) Save(c *gin.Context) {
	var req dto.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid save payload"))
		return
	}
	result, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List godoc
// @Summary List the persisted timetable for an academic year
// @Tags Scheduler
// @Produce json
// @Param academic_year query string false "Academic year"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *GenerationHandler) List(c *gin.Context) {
	query := dto.ListQuery{AcademicYear: c.Query("academic_year")}
	sessions, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, nil)
}

// Prospectus godoc
// @Summary Get the curriculum prospectus grouped by year level and semester
// @Tags Scheduler
// @Produce json
// @Param academic_year query string true "Academic year"
// @Param program query string true "Program"
// @Success 200 {object} response.Envelope
// @Router /schedules/prospectus [get]
func (h *GenerationHandler) Prospectus(c *gin.Context) {
	query := dto.ProspectusQuery{
		AcademicYear: c.Query("academic_year"),
		Program:      c.Query("program"),
	}
	result, err := h.service.GetProspectus(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
