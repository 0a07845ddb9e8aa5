package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRaceIdValid(t *testing.T) {
	id, err := NewRaceId(" 202401010106 ")
	require.NoError(t, err)
	assert.Equal(t, "202401010106", id.Value())
	date, err := id.MeetingDate()
	require.NoError(t, err)
	assert.Equal(t, 2024, date.Year())
	assert.Equal(t, 1, int(date.Month()))
	assert.Equal(t, 1, date.Day())
}

func TestNewRaceIdRejectsBadDate(t *testing.T) {
	_, err := NewRaceId("202413010106")
	assert.Error(t, err)
}

func TestNewRaceIdRejectsLength(t *testing.T) {
	_, err := NewRaceId("2024")
	assert.Error(t, err)

	_, err = NewRaceId("2024010112345678901")
	assert.Error(t, err)
}

func TestNewRaceIdRejectsNonAlphanumeric(t *testing.T) {
	_, err := NewRaceId("20240101-1")
	assert.Error(t, err)
}

func TestNewRaceIdRejectsBlank(t *testing.T) {
	_, err := NewRaceId("   ")
	assert.Error(t, err)
}

func TestNewRunnerIdValid(t *testing.T) {
	id, err := NewRunnerId(" 1234567890 ")
	require.NoError(t, err)
	assert.Equal(t, "1234567890", id.Value())
}

func TestNewRunnerIdRejectsWrongLength(t *testing.T) {
	_, err := NewRunnerId("123456789")
	assert.Error(t, err)
	_, err = NewRunnerId("12345678901")
	assert.Error(t, err)
}

func TestNewRunnerIdRejectsNonDigits(t *testing.T) {
	_, err := NewRunnerId("12345A7890")
	assert.Error(t, err)
}

func TestUnsafeConstructorsSkipValidation(t *testing.T) {
	id := NewRaceIdUnsafe("not-a-valid-race-id")
	assert.Equal(t, "not-a-valid-race-id", id.Value())

	rid := NewRunnerIdUnsafe("abc")
	assert.Equal(t, "abc", rid.Value())
}
