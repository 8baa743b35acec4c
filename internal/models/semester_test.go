package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSemester(t *testing.T) {
	valid := []string{"2025w", "2026s", "1999w"}
	for _, raw := range valid {
		semester, err := ParseSemester(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, semester.String())
	}

	invalid := []string{"", "2026", "2026x", "26s", "2026S", "2026ss", "abcd s"}
	for _, raw := range invalid {
		_, err := ParseSemester(raw)
		assert.Error(t, err, raw)
	}
}

func TestCurrentSemester(t *testing.T) {
	cases := []struct {
		date time.Time
		want Semester
	}{
		{time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), "2026s"},
		{time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC), "2026s"},
		{time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC), "2026s"},
		{time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), "2026w"},
		{time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC), "2026w"},
		{time.Date(2027, time.January, 10, 0, 0, 0, 0, time.UTC), "2026w"},
		{time.Date(2027, time.February, 28, 0, 0, 0, 0, time.UTC), "2026w"},
	}
	for _, tc := range cases {
		t.Run(tc.date.Format("2006-01-02"), func(t *testing.T) {
			assert.Equal(t, tc.want, CurrentSemester(tc.date))
		})
	}
}

func TestSemesterAccessors(t *testing.T) {
	winter := Semester("2025w")
	assert.Equal(t, 2025, winter.Year())
	assert.True(t, winter.IsWinter())
	assert.Equal(t, "WS 2025/26", winter.ShortName())
	assert.Equal(t, Semester("2026s"), winter.Next())

	summer := Semester("2026s")
	assert.False(t, summer.IsWinter())
	assert.Equal(t, "SS 2026", summer.ShortName())
	assert.Equal(t, Semester("2026w"), summer.Next())
}
