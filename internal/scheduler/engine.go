// Package scheduler implements the constraint-based placement engine: for
// each course, for each of its derived session rules, it searches
// (instructor x day-pair x time-slot x room) for a feasible placement and
// commits it into the shared tracking tables, or records a warning and
// moves on when nothing fits.
package scheduler

import (
	"sort"

	"github.com/curriculex/classgen/internal/availability"
	"github.com/curriculex/classgen/internal/facultyscore"
	"github.com/curriculex/classgen/internal/models"
	"github.com/curriculex/classgen/internal/sessionrule"
	"github.com/curriculex/classgen/internal/timeutil"
)

// Config carries the tunables the placement engine needs from the caller.
type Config struct {
	GlobalMaxUnits      int
	CampusAdminMaxUnits int
	RestBufferMinutes   int
}

// DefaultConfig matches the defaults named throughout the scoring rules.
func DefaultConfig() Config {
	return Config{
		GlobalMaxUnits:      18,
		CampusAdminMaxUnits: 6,
		RestBufferMinutes:   availability.DefaultRestBufferMinutes,
	}
}

// Engine owns the shared tracking tables for the life of one generation run.
// A fresh Engine must be constructed per run; it is never reused across runs.
type Engine struct {
	tracker *availability.Tracker
	oracle  *availability.Oracle
	cfg     Config
}

// New creates an Engine with a fresh, empty tracker.
func New(cfg Config) *Engine {
	tracker := availability.NewTracker()
	oracle := availability.NewOracle(tracker)
	if cfg.RestBufferMinutes > 0 {
		oracle.RestBufferMinutes = cfg.RestBufferMinutes
	}
	return &Engine{tracker: tracker, oracle: oracle, cfg: cfg}
}

// Tracker exposes the underlying tracking tables for reporting (distinct
// faculty and so on) once a run has completed.
func (e *Engine) Tracker() *availability.Tracker { return e.tracker }

// PlaceCourse derives the course's session rules and attempts to place each
// in priority order (lectures before labs). It returns every session
// successfully committed and a warning for every rule that could not be
// placed; an unplaceable rule never aborts the run.
func (e *Engine) PlaceCourse(course models.Course, instructors []models.Instructor, rooms []models.Room) ([]models.ScheduledSession, []models.UnplaceableWarning) {
	rules := sessionrule.Build(course.LecUnits, course.LabUnits, course.Department)

	var placed []models.ScheduledSession
	var warnings []models.UnplaceableWarning
	chargedInstructorID := ""

	for _, rule := range rules {
		candidates := facultyscore.Rank(course, instructors, e.workloadSnapshot(instructors), e.cfg.GlobalMaxUnits, e.cfg.CampusAdminMaxUnits)
		if len(candidates) == 0 {
			warnings = append(warnings, models.UnplaceableWarning{
				CourseID: course.ID, SubjectCode: course.SubjectCode, Tag: rule.Tag,
				Reason: "no candidate instructor met the scoring/cap threshold",
			})
			continue
		}

		sessions, instructorID, ok := e.placeRule(course, rule, candidates, rooms, chargedInstructorID)
		if !ok {
			warnings = append(warnings, models.UnplaceableWarning{
				CourseID: course.ID, SubjectCode: course.SubjectCode, Tag: rule.Tag,
				Reason: "no feasible faculty, day, slot and room combination satisfied every constraint",
			})
			continue
		}
		if chargedInstructorID == "" {
			e.tracker.AddWorkload(instructorID, course.TotalUnits())
			chargedInstructorID = instructorID
		}
		placed = append(placed, sessions...)
	}
	return placed, warnings
}

// withinCap reports whether committing this course's full unit load to cand
// would keep them at or under their cap. A candidate already charged for this
// course by an earlier rule (chargedInstructorID) is exempt: their workload
// snapshot already reflects the charge, so re-adding course.TotalUnits()
// would double-count it.
func (e *Engine) withinCap(course models.Course, cand models.Candidate, chargedInstructorID string) bool {
	if chargedInstructorID != "" && chargedInstructorID == cand.ID {
		return true
	}
	cap := cand.Instructor.Cap(e.cfg.GlobalMaxUnits, e.cfg.CampusAdminMaxUnits)
	return cand.CurrentWorkload+course.TotalUnits() <= cap
}

// workloadSnapshot copies the tracker's current per-instructor load for the
// faculty scorer; only instructors present in this course's candidate pool matter.
func (e *Engine) workloadSnapshot(instructors []models.Instructor) map[string]int {
	snap := make(map[string]int, len(instructors))
	for _, instr := range instructors {
		snap[instr.ID] = e.tracker.Workload(instr.ID)
	}
	return snap
}

// placeRule dispatches to the paired search (two sessions a week sharing one
// slot on two different days) or the sequential search (one session, or more
// than two, each searched independently) depending on the rule's weekly
// session count.
func (e *Engine) placeRule(course models.Course, rule models.SessionRule, candidates []models.Candidate, rooms []models.Room, chargedInstructorID string) ([]models.ScheduledSession, string, bool) {
	isLab := rule.Tag == models.SessionLaboratory
	candidateRooms := roomsFor(rooms, isLab)

	if rule.SessionsPerWeek == 2 {
		return e.placePaired(course, rule, candidates, candidateRooms, isLab, chargedInstructorID)
	}
	return e.placeSequential(course, rule, candidates, candidateRooms, isLab, chargedInstructorID)
}

func roomsFor(rooms []models.Room, isLab bool) []models.Room {
	var matched []models.Room
	for _, r := range rooms {
		if r.IsLab() == isLab {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		return rooms
	}
	return matched
}

// placePaired searches, for a rule demanding exactly two sessions a week, the
// outer product of ranked instructor x canonical day-pair x canonical slot x
// room, and commits the complete pair atomically on the first tuple where
// every predicate holds for both days.
func (e *Engine) placePaired(course models.Course, rule models.SessionRule, candidates []models.Candidate, rooms []models.Room, isLab bool, chargedInstructorID string) ([]models.ScheduledSession, string, bool) {
	slots := timeutil.SlotsFor(rule.HoursPerSession)
	usedDays := e.tracker.SubjectDaysUsed(course.SubjectCode, course.Semester)
	pairs := excludeUsedDays(timeutil.DayPairsFor(isLab), usedDays)

	for _, cand := range candidates {
		if !e.withinCap(course, cand, chargedInstructorID) {
			continue
		}
		for _, pair := range pairs {
			days := []string{pair.First, pair.Second}
			for _, slot := range slots {
				room, ok := e.firstFreeRoom(rooms, days, slot, course)
				if !ok {
					continue
				}
				if !e.oracle.CohortFree(course.Program, course.YearLevel, course.Semester, days, slot.Start, slot.End) {
					continue
				}
				if !e.oracle.FacultyFree(cand.Instructor, days, slot.Start, slot.End, course.Semester) {
					continue
				}

				sessions := make([]models.ScheduledSession, 0, 2)
				for _, day := range days {
					e.commit(course, cand.Instructor, room, day, slot)
					e.tracker.MarkSubjectDay(course.SubjectCode, course.Semester, day)
					sessions = append(sessions, e.buildSession(course, rule, cand.Instructor, room, day, slot))
				}
				return sessions, cand.ID, true
			}
		}
	}
	return nil, "", false
}

// placeSequential handles the single-session case (sessions_per_week == 1)
// and the generalized case of more than two weekly sessions, by placing each
// session on its own distinct day, committing as it goes and rolling the
// whole attempt back if the required count cannot be reached for a given
// candidate. This generalizes the rule's atomic all-or-nothing commit policy
// from the paired case to an arbitrary session count.
func (e *Engine) placeSequential(course models.Course, rule models.SessionRule, candidates []models.Candidate, rooms []models.Room, isLab bool, chargedInstructorID string) ([]models.ScheduledSession, string, bool) {
	slots := timeutil.SlotsFor(rule.HoursPerSession)

	for _, cand := range candidates {
		if !e.withinCap(course, cand, chargedInstructorID) {
			continue
		}
		sessions, ok := e.tryPlaceSequential(course, rule, cand, rooms, slots)
		if ok {
			return sessions, cand.ID, true
		}
	}
	return nil, "", false
}

type sequentialCommit struct {
	day         string
	newlyMarked bool
}

func (e *Engine) tryPlaceSequential(course models.Course, rule models.SessionRule, cand models.Candidate, rooms []models.Room, slots []timeutil.Slot) ([]models.ScheduledSession, bool) {
	need := rule.SessionsPerWeek
	var sessions []models.ScheduledSession
	var commits []sequentialCommit

	for _, day := range timeutil.SingleDays {
		if len(sessions) == need {
			break
		}
		if containsDay(e.tracker.SubjectDaysUsed(course.SubjectCode, course.Semester), day) {
			continue
		}

		days := []string{day}
		for _, slot := range slots {
			room, ok := e.firstFreeRoom(rooms, days, slot, course)
			if !ok {
				continue
			}
			if !e.oracle.CohortFree(course.Program, course.YearLevel, course.Semester, days, slot.Start, slot.End) {
				continue
			}
			if !e.oracle.FacultyFree(cand.Instructor, days, slot.Start, slot.End, course.Semester) {
				continue
			}

			e.commit(course, cand.Instructor, room, day, slot)
			marked := e.tracker.MarkSubjectDay(course.SubjectCode, course.Semester, day)
			commits = append(commits, sequentialCommit{day: day, newlyMarked: marked})
			sessions = append(sessions, e.buildSession(course, rule, cand.Instructor, room, day, slot))
			break
		}
	}

	if len(sessions) == need {
		return sessions, true
	}

	e.rollbackSequential(course, cand.Instructor, sessions, commits)
	return nil, false
}

func (e *Engine) rollbackSequential(course models.Course, instructor models.Instructor, sessions []models.ScheduledSession, commits []sequentialCommit) {
	for i := len(sessions) - 1; i >= 0; i-- {
		e.tracker.UnbookFaculty(instructor.ID)
		e.tracker.UnbookRoom(sessions[i].RoomID)
		e.tracker.UnbookCohort(course.Program, course.YearLevel, course.Semester)
		if commits[i].newlyMarked {
			e.tracker.UnmarkLastSubjectDay(course.SubjectCode, course.Semester)
		}
	}
}

// commit books the faculty, room and cohort tracking tables for one day of a
// placed session. Marking the subject-day table is the caller's
// responsibility, since the paired and sequential paths need to know
// differently whether the mark was newly set for rollback purposes.
func (e *Engine) commit(course models.Course, instructor models.Instructor, room models.Room, day string, slot timeutil.Slot) {
	e.tracker.BookFaculty(instructor.ID, course.Semester, day, slot.Start, slot.End)
	e.tracker.BookRoom(room.ID, course.Semester, day, slot.Start, slot.End)
	e.tracker.BookCohort(course.Program, course.YearLevel, course.Semester, day, slot.Start, slot.End)
}

func (e *Engine) firstFreeRoom(rooms []models.Room, days []string, slot timeutil.Slot, course models.Course) (models.Room, bool) {
	for _, room := range rooms {
		if e.oracle.RoomFree(room.ID, days, slot.Start, slot.End, course.Semester) {
			return room, true
		}
	}
	return models.Room{}, false
}

func (e *Engine) buildSession(course models.Course, rule models.SessionRule, instructor models.Instructor, room models.Room, day string, slot timeutil.Slot) models.ScheduledSession {
	tagSet := course.TagSet()
	tags := make([]string, 0, len(tagSet))
	for tag := range tagSet {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return models.ScheduledSession{
		CourseID:       course.ID,
		Tag:            rule.Tag,
		Day:            day,
		Start:          slot.StartHHMM(),
		End:            slot.EndHHMM(),
		InstructorID:   instructor.ID,
		InstructorName: instructor.FullName(),
		RoomID:         room.ID,
		RoomName:       room.Name,
		SubjectCode:    course.SubjectCode,
		SubjectName:    course.SubjectName,
		Program:        course.Program,
		YearLevel:      course.YearLevel,
		Semester:       course.Semester,
		CurriculumYear: course.CurriculumYear,
		LecUnits:       course.LecUnits,
		LabUnits:       course.LabUnits,
		Tags:           tags,
	}
}

func excludeUsedDays(pairs []timeutil.DayPair, used []string) []timeutil.DayPair {
	var filtered []timeutil.DayPair
	for _, p := range pairs {
		if containsDay(used, p.First) || containsDay(used, p.Second) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
