package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinutes(t *testing.T) {
	m, err := ToMinutes("07:30")
	require.NoError(t, err)
	assert.Equal(t, 450, m)

	_, err = ToMinutes("nope")
	assert.Error(t, err)

	_, err = ToMinutes("25:00")
	assert.Error(t, err)
}

func TestFormatRoundTrip(t *testing.T) {
	assert.Equal(t, "07:00", Format(DayStart))
	assert.Equal(t, "20:00", Format(DayEnd))
	assert.Equal(t, "12:00", Format(LunchStart))
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(60, 120, 90, 150))
	assert.False(t, Overlaps(60, 120, 120, 180))
	assert.False(t, Overlaps(60, 120, 150, 180))
}

func TestValidSlot(t *testing.T) {
	assert.True(t, ValidSlot(DayStart, DayStart+60))
	assert.False(t, ValidSlot(DayStart-30, DayStart+30), "before opening hour")
	assert.False(t, ValidSlot(DayEnd-30, DayEnd+30), "past closing hour")
	assert.False(t, ValidSlot(LunchStart-30, LunchStart+30), "crosses into lunch")
	assert.True(t, ValidSlot(LunchEnd, LunchEnd+60), "starts right after lunch")
}

func TestRestSatisfied(t *testing.T) {
	assert.True(t, RestSatisfied(480, 540, 570, 630, 30), "exactly 30 minutes apart")
	assert.False(t, RestSatisfied(480, 540, 560, 620, 30), "only 20 minutes apart")
	assert.False(t, RestSatisfied(480, 600, 540, 660, 30), "overlapping")
}

func TestSlots1H(t *testing.T) {
	require.Len(t, Slots1H, 12)
	assert.Equal(t, Slot{Start: 420, End: 480}, Slots1H[0])
	last := Slots1H[len(Slots1H)-1]
	assert.Equal(t, 1200, last.End)
	for _, s := range Slots1H {
		assert.False(t, IntersectsLunch(s.Start, s.End))
	}
}

func TestSlots1H5(t *testing.T) {
	require.Len(t, Slots1H5, 20)
	for _, s := range Slots1H5 {
		assert.True(t, ValidSlot(s.Start, s.End))
		assert.Equal(t, 90, s.End-s.Start)
	}
	last := Slots1H5[len(Slots1H5)-1]
	assert.Equal(t, "18:30", last.StartHHMM())
	assert.Equal(t, "20:00", last.EndHHMM())
}

func TestSingleDaysDedup(t *testing.T) {
	assert.Equal(t, []string{"Monday", "Wednesday", "Tuesday", "Thursday", "Friday"}, SingleDays)
}
