package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/curriculex/classgen/internal/dto"
	"github.com/curriculex/classgen/internal/models"
	"github.com/curriculex/classgen/internal/scheduler"
	"github.com/curriculex/classgen/internal/validation"
	appErrors "github.com/curriculex/classgen/pkg/errors"
)

type generationCourseReader interface {
	AllForGeneration(ctx context.Context, curriculumYear, semester, program string) ([]models.Course, error)
	Prospectus(ctx context.Context, curriculumYear, program string) ([]models.ProspectusGroup, error)
}

type generationInstructorReader interface {
	ApprovedFaculty(ctx context.Context) ([]models.Instructor, error)
}

type generationRoomReader interface {
	All(ctx context.Context) ([]models.Room, error)
}

type generationSessionStore interface {
	Save(ctx context.Context, sessions []models.ScheduledSession) (models.SaveResult, error)
	List(ctx context.Context, academicYear string) ([]models.PersistedSession, error)
}

type generationCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// GenerationConfig carries the placement engine tunables and the cache TTLs
// for the read-mostly endpoints this service fronts.
type GenerationConfig struct {
	Engine             scheduler.Config
	ListCacheTTL       time.Duration
	ProspectusCacheTTL time.Duration
}

// GenerationService orchestrates the full generate/save/list/get_prospectus
// pipeline: load courses/instructors/rooms, place every course through the
// scheduling engine, validate the result, and expose read-through caching
// over the persisted timetable and curriculum views.
type GenerationService struct {
	courses     generationCourseReader
	instructors generationInstructorReader
	rooms       generationRoomReader
	sessions    generationSessionStore
	cache       generationCache
	validator   *validator.Validate
	logger      *zap.Logger
	metrics     *MetricsService
	cfg         GenerationConfig
}

// NewGenerationService wires the generation pipeline's dependencies.
func NewGenerationService(
	courses generationCourseReader,
	instructors generationInstructorReader,
	rooms generationRoomReader,
	sessions generationSessionStore,
	cache generationCache,
	validate *validator.Validate,
	logger *zap.Logger,
	metrics *MetricsService,
	cfg GenerationConfig,
) *GenerationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ListCacheTTL <= 0 {
		cfg.ListCacheTTL = 2 * time.Minute
	}
	if cfg.ProspectusCacheTTL <= 0 {
		cfg.ProspectusCacheTTL = 10 * time.Minute
	}
	return &GenerationService{
		courses:     courses,
		instructors: instructors,
		rooms:       rooms,
		sessions:    sessions,
		cache:       cache,
		validator:   validate,
		logger:      logger,
		metrics:     metrics,
		cfg:         cfg,
	}
}

// Generate runs one full placement pass for (curriculum_year, semester,
// program) and returns the ranked sessions plus a validation report. It does
// not persist anything.
func (s *GenerationService) Generate(ctx context.Context, req dto.GenerateRequest) (*dto.GenerateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation request")
	}

	start := time.Now()

	courses, err := s.courses.AllForGeneration(ctx, req.CurriculumYear, req.Semester, req.Program)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	instructors, err := s.instructors.ApprovedFaculty(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}
	rooms, err := s.rooms.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}

	if len(courses) == 0 || len(instructors) == 0 || len(rooms) == 0 {
		return nil, appErrors.ErrEmptyInput
	}

	engine := scheduler.New(s.cfg.Engine)

	var sessions []models.ScheduledSession
	var warnings []models.UnplaceableWarning
	for _, course := range courses {
		placed, courseWarnings := engine.PlaceCourse(course, instructors, rooms)
		sessions = append(sessions, placed...)
		warnings = append(warnings, courseWarnings...)
	}

	for _, w := range warnings {
		s.logger.Warn("session could not be placed",
			zap.String("course_id", w.CourseID),
			zap.String("subject_code", w.SubjectCode),
			zap.String("tag", string(w.Tag)),
			zap.String("reason", w.Reason),
		)
	}

	report := validation.Validate(sessions, courses)

	if s.metrics != nil {
		s.metrics.ObserveGeneration(time.Since(start), report.OptimizationScore, len(warnings))
	}

	s.logger.Info("generation run completed",
		zap.String("curriculum_year", req.CurriculumYear),
		zap.String("semester", req.Semester),
		zap.Int("courses", len(courses)),
		zap.Int("sessions", len(sessions)),
		zap.Int("warnings", len(warnings)),
		zap.Int("optimization_score", report.OptimizationScore),
	)

	return &dto.GenerateResponse{
		Sessions:          sessions,
		TotalSubjects:     len(courses),
		TotalFaculty:      len(engine.Tracker().DistinctFaculty()),
		DistinctFaculty:   engine.Tracker().DistinctFaculty(),
		OptimizationScore: report.OptimizationScore,
		Warnings:          warnings,
		ValidationIssues:  report.Issues,
	}, nil
}

// Save replaces the persisted timetable for the (year, semester) key carried
// by the submitted sessions, then invalidates the list/prospectus caches for
// that academic year.
func (s *GenerationService) Save(ctx context.Context, req dto.SaveRequest) (*dto.SaveResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid save request")
	}

	result, err := s.sessions.Save(ctx, req.Sessions)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, appErrors.ErrPersistence.Message)
	}

	if s.cache != nil {
		academicYear := req.Sessions[0].CurriculumYear
		_ = s.cache.DeleteByPattern(ctx, fmt.Sprintf("classgen:sessions:%s*", academicYear))
		_ = s.cache.DeleteByPattern(ctx, fmt.Sprintf("classgen:prospectus:%s*", academicYear))
	}

	return &dto.SaveResponse{Deleted: result.Deleted, Inserted: result.Inserted}, nil
}

// List returns the persisted timetable for an academic year, read-through a
// short-lived cache.
func (s *GenerationService) List(ctx context.Context, query dto.ListQuery) ([]models.PersistedSession, error) {
	cacheKey := fmt.Sprintf("classgen:sessions:%s", query.AcademicYear)

	if s.cache != nil {
		var cached []models.PersistedSession
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	sessions, err := s.sessions.List(ctx, query.AcademicYear)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sessions")
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, sessions, s.cfg.ListCacheTTL)
	}

	return sessions, nil
}

// GetProspectus returns the curriculum course metadata for an academic
// year/program grouped by year level and semester, read-through a cache.
func (s *GenerationService) GetProspectus(ctx context.Context, query dto.ProspectusQuery) (*dto.ProspectusResponse, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid prospectus request")
	}

	cacheKey := fmt.Sprintf("classgen:prospectus:%s:%s", query.AcademicYear, query.Program)

	if s.cache != nil {
		var cached dto.ProspectusResponse
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	groups, err := s.courses.Prospectus(ctx, query.AcademicYear, query.Program)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load prospectus")
	}
	if len(groups) == 0 {
		return nil, appErrors.Wrap(appErrors.ErrNotFound, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "no curriculum courses found for this academic year and program")
	}

	resp := dto.ProspectusResponse{Groups: groups}
	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, resp, s.cfg.ProspectusCacheTTL)
	}

	return &resp, nil
}
