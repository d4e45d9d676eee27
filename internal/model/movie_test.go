package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShowtimesScan(t *testing.T) {
	var s Showtimes
	err := s.Scan([]byte(`[{"time":"10:00 AM","theater":"PVR Cinemas"}]`))
	assert.NoError(t, err)
	assert.Equal(t, Showtimes{{Time: "10:00 AM", Theater: "PVR Cinemas"}}, s)

	var empty Showtimes
	assert.NoError(t, empty.Scan(nil))
	assert.Equal(t, Showtimes{}, empty)

	assert.Error(t, s.Scan(42))
}

func TestShowtimesContains(t *testing.T) {
	s := Showtimes{
		{Time: "10:00 AM", Theater: "PVR Cinemas"},
		{Time: "06:00 PM", Theater: "Cinepolis"},
	}
	assert.True(t, s.Contains("06:00 PM", "Cinepolis"))
	// Same time at a different theater is a different slot.
	assert.False(t, s.Contains("06:00 PM", "PVR Cinemas"))
	assert.False(t, s.Contains("09:30 PM", "Cinepolis"))
	assert.False(t, Showtimes(nil).Contains("10:00 AM", "PVR Cinemas"))
}

func TestMovieReleased(t *testing.T) {
	today := time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)
	day := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}

	cases := []struct {
		name    string
		release *time.Time
		want    bool
	}{
		{"no release date", nil, false},
		{"released yesterday", day(2026, 3, 14), true},
		{"releases today", day(2026, 3, 15), true},
		{"releases tomorrow", day(2026, 3, 16), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Movie{ReleaseDate: tc.release}
			assert.Equal(t, tc.want, m.Released(today))
		})
	}

	// Date-only comparison: a release stored late in the day still counts
	// as released on that day.
	late := time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)
	m := Movie{ReleaseDate: &late}
	assert.True(t, m.Released(time.Date(2026, 3, 15, 0, 1, 0, 0, time.UTC)))
}
