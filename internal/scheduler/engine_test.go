package scheduler

import (
	"testing"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curriculex/classgen/internal/models"
)

func approvedInstructor(id, lastName string, years int, specs ...string) models.Instructor {
	return models.Instructor{
		ID:              id,
		FirstName:       "First",
		LastName:        lastName,
		Role:            models.RoleFaculty,
		Status:          models.StatusApproved,
		Designation:     "Regular",
		YearsExperience: years,
		Specializations: jsonArray(specs...),
	}
}

func jsonArray(values ...string) types.JSONText {
	out := "["
	for i, v := range values {
		if i > 0 {
			out += ","
		}
		out += `"` + v + `"`
	}
	out += "]"
	return types.JSONText(out)
}

func sampleCourse() models.Course {
	return models.Course{
		ID: "c1", CurriculumYear: "2026", Program: "BSCS", YearLevel: "1st Year",
		Semester: "1st Semester", SubjectCode: "CS101", SubjectName: "Intro to Computing",
		Department: "BSCS", LecUnits: 3, Tags: jsonArray("programming"),
	}
}

func sampleRooms() []models.Room {
	return []models.Room{
		{ID: "r1", Name: "Room 101"},
		{ID: "r2", Name: "Computer Lab 1"},
	}
}

func TestPlaceCoursePlacesLecturePair(t *testing.T) {
	engine := New(DefaultConfig())
	instr := approvedInstructor("f1", "Cruz", 5, "programming")

	sessions, warnings := engine.PlaceCourse(sampleCourse(), []models.Instructor{instr}, sampleRooms())

	require.Empty(t, warnings)
	require.Len(t, sessions, 2)
	assert.Equal(t, models.SessionLecture, sessions[0].Tag)
	assert.NotEqual(t, sessions[0].Day, sessions[1].Day)
	assert.Equal(t, "f1", sessions[0].InstructorID)
	assert.Equal(t, 3, engine.Tracker().Workload("f1"))
}

func TestPlaceCourseNoCandidatesProducesWarning(t *testing.T) {
	engine := New(DefaultConfig())
	course := sampleCourse()

	sessions, warnings := engine.PlaceCourse(course, nil, sampleRooms())

	assert.Empty(t, sessions)
	require.Len(t, warnings, 1)
	assert.Equal(t, "CS101", warnings[0].SubjectCode)
}

func TestPlaceCourseSingleSessionRule(t *testing.T) {
	engine := New(DefaultConfig())
	instr := approvedInstructor("f1", "Cruz", 5, "programming")
	course := sampleCourse()
	course.LecUnits = 1

	sessions, warnings := engine.PlaceCourse(course, []models.Instructor{instr}, sampleRooms())

	require.Empty(t, warnings)
	require.Len(t, sessions, 1)
	assert.Equal(t, 1, engine.Tracker().Workload("f1"))
}

func TestPlaceCourseFourUnitLectureUsesFourDistinctDays(t *testing.T) {
	engine := New(DefaultConfig())
	instr := approvedInstructor("f1", "Cruz", 5, "programming")
	course := sampleCourse()
	course.LecUnits = 4

	sessions, warnings := engine.PlaceCourse(course, []models.Instructor{instr}, sampleRooms())

	require.Empty(t, warnings)
	require.Len(t, sessions, 4)
	seen := make(map[string]struct{})
	for _, s := range sessions {
		seen[s.Day] = struct{}{}
	}
	assert.Len(t, seen, 4)
}

func TestPlaceCourseLabRoomPreferred(t *testing.T) {
	engine := New(DefaultConfig())
	instr := approvedInstructor("f1", "Cruz", 5, "programming")
	course := sampleCourse()
	course.LecUnits = 0
	course.LabUnits = 1
	course.Department = "BSIT"

	sessions, warnings := engine.PlaceCourse(course, []models.Instructor{instr}, sampleRooms())

	require.Empty(t, warnings)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Computer Lab 1", sessions[0].RoomName)
}

func TestPlaceCourseUnplaceableWhenRoomsExhausted(t *testing.T) {
	engine := New(DefaultConfig())
	instr := approvedInstructor("f1", "Cruz", 5, "programming")
	course := sampleCourse()

	_, warnings := engine.PlaceCourse(course, []models.Instructor{instr}, nil)
	require.NotEmpty(t, warnings)
}

func TestPlaceCourseRejectsCandidateThatWouldOvershootCap(t *testing.T) {
	// Global cap 18, instructor already at 16: the scorer's L >= M gate alone
	// lets this candidate through (16 < 18), but a 4-unit course would commit
	// them to 20 units, exceeding the cap.
	engine := New(DefaultConfig())
	nearCap := approvedInstructor("f1", "Cruz", 5, "programming")
	engine.Tracker().AddWorkload("f1", 16)
	course := sampleCourse()
	course.LecUnits = 4

	_, warnings := engine.PlaceCourse(course, []models.Instructor{nearCap}, sampleRooms())

	require.NotEmpty(t, warnings)
	assert.Equal(t, 16, engine.Tracker().Workload("f1"))
}

func TestPlaceCourseAllowsCandidateAtExactCap(t *testing.T) {
	engine := New(DefaultConfig())
	nearCap := approvedInstructor("f1", "Cruz", 5, "programming")
	engine.Tracker().AddWorkload("f1", 15)
	course := sampleCourse()
	course.LecUnits = 3

	sessions, warnings := engine.PlaceCourse(course, []models.Instructor{nearCap}, sampleRooms())

	require.Empty(t, warnings)
	require.Len(t, sessions, 2)
	assert.Equal(t, 18, engine.Tracker().Workload("f1"))
}

func TestPlaceCourseLecAndLabAvoidSameDay(t *testing.T) {
	engine := New(DefaultConfig())
	instr := approvedInstructor("f1", "Cruz", 5, "programming")
	course := sampleCourse()
	course.LecUnits = 3
	course.LabUnits = 1
	course.Department = "BSIT"

	sessions, warnings := engine.PlaceCourse(course, []models.Instructor{instr}, sampleRooms())
	require.Empty(t, warnings)
	require.Len(t, sessions, 3)

	lecDays := map[string]struct{}{}
	var labDay string
	for _, s := range sessions {
		if s.Tag == models.SessionLecture {
			lecDays[s.Day] = struct{}{}
		} else {
			labDay = s.Day
		}
	}
	_, clash := lecDays[labDay]
	assert.False(t, clash)
}
