package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/curriculex/classgen/internal/dto"
	"github.com/curriculex/classgen/internal/service"
	appErrors "github.com/curriculex/classgen/pkg/errors"
	"github.com/curriculex/classgen/pkg/response"
)

type scheduleExporter interface {
	Generate(ctx context.Context, query dto.ExportQuery) (*service.ExportResult, error)
}

// ExportHandler streams the persisted timetable as CSV or PDF.
type ExportHandler struct {
	service scheduleExporter
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Export godoc
// @Summary Export the persisted timetable for an academic year
// @Tags Scheduler
// @Produce application/octet-stream
// @Param academic_year query string false "Academic year"
// @Param format query string true "csv or pdf"
// @Success 200 {file} binary
// @Router /schedules/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	query := dto.ExportQuery{
		AcademicYear: c.Query("academic_year"),
		Format:       c.Query("format"),
	}
	if query.Format != "csv" && query.Format != "pdf" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.Filename+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
