package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Layouts(t *testing.T) {
	want := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{
		"2026-03-07",
		"2026-3-7",
		"2026/03/07",
		"2026/3/7",
		"03/07/2026",
		"3/7/2026",
		"Mar 7 2026",
		"Mar 7, 2026",
		"March 7 2026",
		"March 7, 2026",
		"2026-03-07 14:30:00",
		"2026-03-07T14:30:00Z",
		"  2026-03-07  ",
	} {
		got, err := Parse(raw)
		require.NoError(t, err, "raw=%q", raw)
		assert.True(t, got.Equal(want), "raw=%q got=%v", raw, got)
	}
}

func TestParse_RelativeKeywords(t *testing.T) {
	fixed := time.Date(2026, 3, 7, 17, 45, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	defer func() { now = time.Now }()

	today, err := Parse("today")
	require.NoError(t, err)
	assert.True(t, today.Equal(time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)))

	yesterday, err := Parse("Yesterday")
	require.NoError(t, err)
	assert.True(t, yesterday.Equal(time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)))

	tomorrow, err := Parse("tomorrow")
	require.NoError(t, err)
	assert.True(t, tomorrow.Equal(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)))
}

func TestParse_Invalid(t *testing.T) {
	for _, raw := range []string{"", "  ", "not a date", "2026-13-40", "07-03-2026"} {
		_, err := Parse(raw)
		require.Error(t, err, "raw=%q", raw)

		var perr *ParseError
		assert.ErrorAs(t, err, &perr, "raw=%q", raw)
	}
}

func TestDay(t *testing.T) {
	got := Day(time.Date(2026, 3, 7, 23, 59, 59, 0, time.UTC))
	assert.True(t, got.Equal(time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 5, DaysBetween(a, b))
	assert.Equal(t, 5, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}
