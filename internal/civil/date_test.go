package civil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Formats(t *testing.T) {
	cases := map[string]time.Time{
		"2024-05-01T00:00:00.000Z":  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		"2024-05-01T13:45:00Z":      time.Date(2024, 5, 1, 13, 45, 0, 0, time.UTC),
		"2024-05-01":                time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		"5/1/2024":                  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		"05/01/2024":                time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		"2024-05-01T10:00:00+02:00": time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			d, err := Parse(in)
			require.NoError(t, err)
			assert.True(t, d.Day(time.UTC).Equal(Midnight(want, time.UTC)), "got %s", d.Day(time.UTC))
		})
	}
}

func TestParse_EmptyAndGarbage(t *testing.T) {
	d, err := Parse("  ")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = Parse("next tuesday")
	assert.Error(t, err)
}

func TestDay_BareDateKeepsCalendarDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	d := MustParse("2024-05-01")
	day := d.Day(ny)
	assert.Equal(t, 1, day.Day())
	assert.Equal(t, time.May, day.Month())
	assert.Equal(t, ny, day.Location())
}

func TestDay_InstantShiftsIntoLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Midnight UTC is still the previous evening in New York.
	d := MustParse("2024-05-01T00:00:00.000Z")
	assert.Equal(t, 30, d.Day(ny).Day())
	assert.Equal(t, 1, d.Day(time.UTC).Day())
}

func TestSameDay(t *testing.T) {
	a := MustParse("2024-05-01T08:00:00Z")
	b := MustParse("2024-05-01")
	c := MustParse("2024-05-02")

	assert.True(t, a.SameDay(b, time.UTC))
	assert.False(t, a.SameDay(c, time.UTC))
	assert.False(t, Date{}.SameDay(a, time.UTC))
	assert.False(t, a.SameDay(Date{}, time.UTC))
}

func TestJSON(t *testing.T) {
	var payload struct {
		Due   Date `json:"due"`
		Start Date `json:"start"`
		Bad   Date `json:"bad"`
		Null  Date `json:"null"`
	}
	err := json.Unmarshal([]byte(`{"due":"2024-05-01","start":"2024-05-01T00:00:00.000Z","bad":"soon","null":null}`), &payload)
	require.NoError(t, err)

	assert.Equal(t, "2024-05-01", payload.Due.Format(InputLayout, time.UTC))
	assert.Equal(t, "2024-05-01", payload.Start.Format(InputLayout, time.UTC))
	assert.True(t, payload.Bad.IsZero())
	assert.True(t, payload.Null.IsZero())

	out, err := json.Marshal(payload.Due)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-05-01"`, string(out))

	out, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestUnmarshal_NonString(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`12`), &d))
}

func TestStored_BareDayBecomesUTCMidnight(t *testing.T) {
	d := MustParse("2025-01-10").Stored()

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-01-10T00:00:00Z"`, string(out))

	instant := MustParse("2025-01-10T15:00:00Z")
	assert.Equal(t, instant, instant.Stored())
	assert.True(t, Date{}.Stored().IsZero())
}

func TestEntered_ReadsInstantsInUTC(t *testing.T) {
	assert.Equal(t, "2025-01-10", MustParse("2025-01-10T00:00:00.000Z").Entered())
	assert.Equal(t, "2025-01-10", MustParse("2025-01-10").Entered())
	assert.Equal(t, "", Date{}.Entered())
}
