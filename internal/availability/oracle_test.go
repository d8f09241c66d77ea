package availability

import (
	"testing"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"

	"github.com/curriculex/classgen/internal/models"
)

func TestParsePreferredWindowPair(t *testing.T) {
	raw := types.JSONText(`["start:08:00","end:17:00"]`)
	w := ParsePreferredWindow(raw)
	assert.True(t, w.Declared)
	assert.Equal(t, 8*60, w.Start)
	assert.Equal(t, 17*60, w.End)
}

func TestParsePreferredWindowTwelveHourString(t *testing.T) {
	raw := types.JSONText(`"8:00 AM - 5:00 PM"`)
	w := ParsePreferredWindow(raw)
	assert.True(t, w.Declared)
	assert.Equal(t, 8*60, w.Start)
	assert.Equal(t, 17*60, w.End)
}

func TestParsePreferredWindowAbsentIsFullyAvailable(t *testing.T) {
	w := ParsePreferredWindow(nil)
	assert.False(t, w.Declared)
	assert.True(t, w.Contains(0, 24*60))
}

func TestRoomFree(t *testing.T) {
	tracker := NewTracker()
	oracle := NewOracle(tracker)
	tracker.BookRoom("R1", "1st Semester", "Monday", 420, 480)

	assert.False(t, oracle.RoomFree("R1", []string{"Monday"}, 450, 510, "1st Semester"), "overlaps existing booking")
	assert.True(t, oracle.RoomFree("R1", []string{"Monday"}, 480, 540, "1st Semester"), "back to back is fine for rooms")
	assert.True(t, oracle.RoomFree("R1", []string{"Tuesday"}, 420, 480, "1st Semester"), "different day")
	assert.True(t, oracle.RoomFree("R1", []string{"Monday"}, 420, 480, "2nd Semester"), "different semester")
}

func TestCohortFree(t *testing.T) {
	tracker := NewTracker()
	oracle := NewOracle(tracker)
	tracker.BookCohort("BSCS", "1st Year", "1st Semester", "Monday", 420, 480)

	assert.False(t, oracle.CohortFree("BSCS", "1st Year", "1st Semester", []string{"Monday"}, 450, 510))
	assert.True(t, oracle.CohortFree("BSCS", "2nd Year", "1st Semester", []string{"Monday"}, 450, 510), "different year level")
}

func TestFacultyFreeRestBuffer(t *testing.T) {
	tracker := NewTracker()
	oracle := NewOracle(tracker)
	tracker.BookFaculty("F1", "1st Semester", "Monday", 420, 480)

	instructor := models.Instructor{ID: "F1"}
	assert.False(t, oracle.FacultyFree(instructor, []string{"Monday"}, 490, 550, "1st Semester"), "only 10 minutes gap")
	assert.True(t, oracle.FacultyFree(instructor, []string{"Monday"}, 510, 570, "1st Semester"), "exactly 30 minutes gap")
}

func TestFacultyFreeRespectsAvailableDays(t *testing.T) {
	instructor := models.Instructor{ID: "F1", AvailableDays: types.JSONText(`["Tuesday","Thursday"]`)}
	tracker := NewTracker()
	oracle := NewOracle(tracker)

	assert.False(t, oracle.FacultyFree(instructor, []string{"Monday", "Wednesday"}, 420, 480, "1st Semester"))
	assert.True(t, oracle.FacultyFree(instructor, []string{"Tuesday", "Thursday"}, 420, 480, "1st Semester"))
}

func TestFacultyFreeRespectsPreferredWindow(t *testing.T) {
	instructor := models.Instructor{ID: "F1", PreferredWindow: types.JSONText(`"8:00 AM - 12:00 PM"`)}
	tracker := NewTracker()
	oracle := NewOracle(tracker)

	assert.True(t, oracle.FacultyFree(instructor, []string{"Monday"}, 480, 540, "1st Semester"))
	assert.False(t, oracle.FacultyFree(instructor, []string{"Monday"}, 780, 840, "1st Semester"), "outside preferred window")
}
