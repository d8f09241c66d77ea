package facultyscore

import (
	"testing"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curriculex/classgen/internal/models"
)

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

func TestScoreTagMatchAndBonuses(t *testing.T) {
	course := models.Course{SubjectCode: "CS101", SubjectName: "Programming 1", Tags: jsonArray("Programming")}
	instructor := models.Instructor{
		Specializations:  jsonArray("Programming"),
		PreviousSubjects: jsonArray("cs101"),
		YearsExperience:  25,
		Designation:      "Regular Faculty",
	}
	score, tagMatch := Score(course, instructor, 0, 18)
	assert.Equal(t, 100.0, tagMatch)
	assert.Equal(t, 100.0+50+20+10, score)
}

func TestScoreDisqualifiedAtCap(t *testing.T) {
	course := models.Course{Tags: jsonArray("Programming")}
	instructor := models.Instructor{Specializations: jsonArray("Programming")}
	score, _ := Score(course, instructor, 18, 18)
	assert.Equal(t, float64(disqualifiedScore), score)
}

func TestRankFiltersAndOrders(t *testing.T) {
	course := models.Course{SubjectCode: "CS101", Tags: jsonArray("Programming")}
	instructors := []models.Instructor{
		{ID: "a", LastName: "Zed", Status: models.StatusApproved, Specializations: jsonArray("Programming"), YearsExperience: 5},
		{ID: "b", LastName: "Alpha", Status: models.StatusApproved, Specializations: jsonArray("Programming"), YearsExperience: 5},
		{ID: "c", LastName: "Unrelated", Status: models.StatusApproved, Specializations: jsonArray("Networking")},
		{ID: "d", LastName: "NotApproved", Status: models.StatusPending, Specializations: jsonArray("Programming")},
	}
	ranked := Rank(course, instructors, nil, 18, 6)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Alpha", ranked[0].LastName, "ties broken by last name ascending")
	assert.Equal(t, "Zed", ranked[1].LastName)
}

func TestRankShortlistCap(t *testing.T) {
	course := models.Course{Tags: jsonArray("Programming")}
	var instructors []models.Instructor
	for i := 0; i < 8; i++ {
		instructors = append(instructors, models.Instructor{
			ID:              string(rune('a' + i)),
			LastName:        string(rune('a' + i)),
			Status:          models.StatusApproved,
			Specializations: jsonArray("Programming"),
		})
	}
	ranked := Rank(course, instructors, nil, 18, 6)
	assert.Len(t, ranked, 5)
}

func TestRankCampusAdminCap(t *testing.T) {
	course := models.Course{Tags: jsonArray("Programming")}
	instructors := []models.Instructor{
		{ID: "admin", LastName: "Admin", Role: models.RoleCampusAdmin, Status: models.StatusApproved, Specializations: jsonArray("Programming")},
	}
	workload := map[string]int{"admin": 6}
	ranked := Rank(course, instructors, workload, 18, 6)
	assert.Empty(t, ranked, "campus admin at the 6-unit cap is disqualified")
}
