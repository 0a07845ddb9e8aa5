package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeBuf(size int) []byte {
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = ' '
	}
	return buf
}

func writeAt(buf []byte, offset int, s string) {
	copy(buf[offset:], s)
}

func TestParseRecordRaceDetail(t *testing.T) {
	buf := makeBuf(100)
	writeAt(buf, 0, "RA")
	writeAt(buf, 11, "202401010106")
	writeAt(buf, 27, "Test Stakes")
	writeAt(buf, 87, "05")
	writeAt(buf, 89, "A")
	writeAt(buf, 90, "701")
	writeAt(buf, 93, "1")
	writeAt(buf, 94, "2000")
	writeAt(buf, 98, "16")

	rec, err := ParseRecord(buf)
	require.NoError(t, err)
	ra, ok := rec.(RaceDetail)
	require.True(t, ok)
	assert.Equal(t, "202401010106", ra.RaceKey.Value())
	assert.Equal(t, "Test Stakes", ra.RaceName)
	assert.Equal(t, VenueTokyo, ra.Venue)
	assert.Equal(t, GradeG1, ra.Grade)
	assert.Equal(t, int64(2000), ra.DistanceM)
	assert.Equal(t, int64(16), ra.HeadCount)
}

func TestParseRecordMissingRequiredFieldFails(t *testing.T) {
	buf := makeBuf(100)
	writeAt(buf, 0, "RA")
	// RaceKey left blank, RaceName left blank.

	_, err := ParseRecord(buf)
	require.Error(t, err)
	var mrf *MissingRequiredField
	assert.ErrorAs(t, err, &mrf)
}

func TestParseRecordUnrecognisedKind(t *testing.T) {
	buf := makeBuf(20)
	writeAt(buf, 0, "ZZ")

	rec, err := ParseRecord(buf)
	require.NoError(t, err)
	un, ok := rec.(Unrecognised)
	require.True(t, ok)
	assert.Equal(t, "ZZ", un.Kind)
}

func TestParseRecordTooShortBuffer(t *testing.T) {
	buf := []byte("RA")
	_, err := ParseRecord(buf)
	require.Error(t, err)
	var tooShort *RecordTooShort
	assert.ErrorAs(t, err, &tooShort)
}

func TestParseBatchFailFastStopsAtFirstError(t *testing.T) {
	good := makeBuf(100)
	writeAt(good, 0, "RA")
	writeAt(good, 11, "202401010106")
	writeAt(good, 27, "Good Race")

	bad := makeBuf(100)
	writeAt(bad, 0, "RA")
	// RaceName left blank -> MissingRequiredField.

	recs, err := ParseBatch([][]byte{good, bad, good}, FailFast)
	require.Error(t, err)
	assert.Len(t, recs, 1)
}

func TestParseBatchCollectErrorsKeepsGoingAndReportsAll(t *testing.T) {
	good := makeBuf(100)
	writeAt(good, 0, "RA")
	writeAt(good, 11, "202401010106")
	writeAt(good, 27, "Good Race")

	bad := makeBuf(100)
	writeAt(bad, 0, "RA")

	recs, err := ParseBatch([][]byte{good, bad, good}, CollectErrors)
	require.Error(t, err)
	var batchErr *BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Len(t, batchErr.Errors, 1)
	assert.Equal(t, 1, batchErr.Errors[0].Index)
	assert.Len(t, recs, 2)
}

func TestParseRecordRunnerEntryAndMasters(t *testing.T) {
	buf := makeBuf(90)
	writeAt(buf, 0, "SE")
	writeAt(buf, 11, "202401010106")
	writeAt(buf, 27, "1234567890")
	writeAt(buf, 37, "Good Horse")
	writeAt(buf, 73, "1")
	writeAt(buf, 74, "3")
	writeAt(buf, 75, "480")
	writeAt(buf, 78, "00512")
	writeAt(buf, 83, "2")

	rec, err := ParseRecord(buf)
	require.NoError(t, err)
	se, ok := rec.(RunnerEntry)
	require.True(t, ok)
	assert.Equal(t, "1234567890", se.HorseId.Value())
	assert.Equal(t, SexColt, se.Sex)
	assert.Equal(t, HairColourBlack, se.HairColour)
	assert.Equal(t, RunningStyleStalker, se.Style)
}

func TestParseRecordJockeyMasterRequiresCode(t *testing.T) {
	buf := makeBuf(50)
	writeAt(buf, 0, "KS")

	_, err := ParseRecord(buf)
	require.Error(t, err)
}
