package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinebook/movie-booking/internal/model"
)

func TestDefaultShowtimes(t *testing.T) {
	got := DefaultShowtimes()
	assert.Equal(t, model.Showtimes{
		{Time: "10:00 AM", Theater: "PVR Cinemas"},
		{Time: "02:00 PM", Theater: "INOX"},
		{Time: "06:00 PM", Theater: "Cinepolis"},
		{Time: "09:30 PM", Theater: "PVR Cinemas"},
	}, got)

	// Callers mutate their copy without affecting the next one.
	got[0].Theater = "changed"
	assert.Equal(t, "PVR Cinemas", DefaultShowtimes()[0].Theater)
}
