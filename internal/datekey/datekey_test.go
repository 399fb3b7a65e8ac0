package datekey_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsbrief/internal/datekey"
)

func TestParse_Valid(t *testing.T) {
	t.Parallel()

	key, err := datekey.Parse("20250314")
	require.NoError(t, err)
	assert.Equal(t, "20250314", key.String())
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"2025031",    // too short
		"202503140",  // too long
		"20241301",   // month 13
		"20240230",   // Feb 30
		"2025-03-14", // wrong separator
		"abcdefgh",
	}

	for _, input := range cases {
		_, err := datekey.Parse(input)
		assert.ErrorIs(t, err, datekey.ErrInvalidKey, "input %q", input)
	}
}

func TestForTime_CrossesMidnightInZone(t *testing.T) {
	t.Parallel()

	eastern, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 03:30 UTC on March 15 is still March 14 in New York.
	utc := time.Date(2025, 3, 15, 3, 30, 0, 0, time.UTC)
	assert.Equal(t, datekey.Key("20250314"), datekey.ForTime(utc, eastern))
}

func TestKeyTime_RoundTrip(t *testing.T) {
	t.Parallel()

	eastern, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	key, err := datekey.Parse("20250701")
	require.NoError(t, err)

	midnight, err := key.Time(eastern)
	require.NoError(t, err)
	assert.Equal(t, key, datekey.ForTime(midnight, eastern))
}

func TestLoadLocation_DefaultsToEastern(t *testing.T) {
	t.Parallel()

	loc, err := datekey.LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, datekey.DefaultTimezone, loc.String())
}

func TestLoadLocation_Unknown(t *testing.T) {
	t.Parallel()

	_, err := datekey.LoadLocation("Not/AZone")
	assert.Error(t, err)
}
