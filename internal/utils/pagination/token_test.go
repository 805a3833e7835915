package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	journalDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 3, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(journalDate, createdAt)
	require.NotEmpty(t, token)

	decodedJournalDate, decodedCreatedAt, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, journalDate.Equal(decodedJournalDate))
	assert.True(t, createdAt.Equal(decodedCreatedAt))
}

func TestEncodeDecodeToken_NanosecondPrecisionSurvives(t *testing.T) {
	// The keyset comparison in the listing query needs the exact created_at,
	// so the cursor must not truncate sub-second precision.
	now := time.Now().UTC()

	journalDate, createdAt, err := DecodeToken(EncodeToken(now, now))
	require.NoError(t, err)
	assert.True(t, now.Equal(journalDate))
	assert.True(t, now.Equal(createdAt))
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	// A single timestamp without the separator is not a valid cursor.
	_, _, err := DecodeToken("MjAyNi0wMy0xNVQwMDowMDowMFo=")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split")
}

func TestDecodeToken_UnparseableTimestamp(t *testing.T) {
	// "notadate|2026-03-15T14:30:45.123456789Z"
	_, _, err := DecodeToken("bm90YWRhdGV8MjAyNi0wMy0xNVQxNDozMDo0NS4xMjM0NTY3ODla")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal date parse")
}
