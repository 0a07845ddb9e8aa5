package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSexKnownAndUnknown(t *testing.T) {
	assert.Equal(t, SexColt, ParseSex("1"))
	assert.Equal(t, SexGelding, ParseSex("3"))
	assert.Equal(t, SexUnknown, ParseSex("9"))
	assert.Equal(t, "unknown", ParseSex("9").String())
}

func TestParseVenueRoundTrips(t *testing.T) {
	v := ParseVenue("05")
	assert.Equal(t, VenueTokyo, v)
	assert.Equal(t, "05", v.String())
}

func TestParseGradeUnknownCodeIsNone(t *testing.T) {
	assert.Equal(t, GradeNone, ParseGrade("Z"))
	assert.Equal(t, "none", ParseGrade("Z").String())
}

func TestParseDayOfWeekBoundaries(t *testing.T) {
	assert.Equal(t, DayOfWeekMonday, ParseDayOfWeek("1"))
	assert.Equal(t, DayOfWeekSunday, ParseDayOfWeek("7"))
	assert.Equal(t, DayOfWeekUnknown, ParseDayOfWeek("8"))
}

func TestParseTrainingCentre(t *testing.T) {
	assert.Equal(t, TrainingCentreMiho, ParseTrainingCentre("1"))
	assert.Equal(t, TrainingCentreRitto, ParseTrainingCentre("2"))
	assert.Equal(t, TrainingCentreUnknown, ParseTrainingCentre("9"))
}
