package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/curriculex/classgen/internal/dto"
	"github.com/curriculex/classgen/internal/models"
	"github.com/curriculex/classgen/pkg/export"
)

type exportSessionReader interface {
	List(ctx context.Context, academicYear string) ([]models.PersistedSession, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult is a rendered timetable ready to stream back to the caller.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders the persisted timetable for an academic year into a
// downloadable CSV or PDF document.
type ExportService struct {
	sessions exportSessionReader
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
}

// NewExportService wires the timetable exporter's dependencies.
func NewExportService(sessions exportSessionReader, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{sessions: sessions, csv: csv, pdf: pdf, logger: logger}
}

var exportHeaders = []string{
	"Subject Code", "Subject Name", "Faculty", "Room", "Day", "Start", "End",
	"Program", "Year Level", "Semester", "Units",
}

// Generate renders the timetable for query.AcademicYear in query.Format.
func (s *ExportService) Generate(ctx context.Context, query dto.ExportQuery) (*ExportResult, error) {
	sessions, err := s.sessions.List(ctx, query.AcademicYear)
	if err != nil {
		return nil, fmt.Errorf("load sessions for export: %w", err)
	}

	dataset := buildExportDataset(sessions)
	title := fmt.Sprintf("Class Schedule %s", query.AcademicYear)

	var payload []byte
	var contentType string
	switch strings.ToLower(query.Format) {
	case "csv":
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case "pdf":
		payload, err = s.pdf.Render(dataset, title)
		contentType = "application/pdf"
	default:
		return nil, fmt.Errorf("unsupported export format %q", query.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s export: %w", query.Format, err)
	}

	s.logger.Info("timetable export rendered",
		zap.String("academic_year", query.AcademicYear),
		zap.String("format", query.Format),
		zap.Int("rows", len(sessions)),
	)

	return &ExportResult{
		Filename:    buildExportFilename(query),
		ContentType: contentType,
		Payload:     payload,
	}, nil
}

func buildExportDataset(sessions []models.PersistedSession) export.Dataset {
	rows := make([]map[string]string, 0, len(sessions))
	for _, session := range sessions {
		rows = append(rows, map[string]string{
			"Subject Code": session.SubjectCode,
			"Subject Name": session.SubjectName,
			"Faculty":      session.FacultyName,
			"Room":         session.RoomName,
			"Day":          session.Day,
			"Start":        session.StartTime,
			"End":          session.EndTime,
			"Program":      session.Program,
			"Year Level":   session.YearLevel,
			"Semester":     session.Semester,
			"Units":        fmt.Sprintf("%d", session.Units),
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}

func buildExportFilename(query dto.ExportQuery) string {
	year := sanitizeExportToken(query.AcademicYear)
	timestamp := timestampToken()
	return fmt.Sprintf("schedule_%s_%s.%s", year, timestamp, query.Format)
}

func sanitizeExportToken(raw string) string {
	if raw == "" {
		return "all"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	return replacer.Replace(raw)
}

// timestampToken is the only place export filenames touch wall-clock time;
// kept out of the scheduling path so determinism there is untouched.
func timestampToken() string {
	return time.Now().UTC().Format("20060102_150405")
}
