package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSeats(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"uppercase and trim", []string{" a1 ", "b2"}, []string{"A1", "B2"}},
		{"dedupe keeps first", []string{"A1", "a1", "B2", "A1"}, []string{"A1", "B2"}},
		{"drops empties", []string{"", "  ", "C3"}, []string{"C3"}},
		{"empty input", nil, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeSeats(tc.in))
		})
	}
}

func TestConflictingSeats(t *testing.T) {
	cases := []struct {
		name      string
		requested []string
		taken     []string
		want      []string
	}{
		{"no overlap", []string{"A1", "A2"}, []string{"B1"}, nil},
		{"partial overlap in request order", []string{"C3", "A1", "B2"}, []string{"B2", "A1"}, []string{"A1", "B2"}},
		{"full overlap", []string{"A1"}, []string{"A1"}, []string{"A1"}},
		{"nothing taken", []string{"A1"}, nil, nil},
		{"nothing requested", nil, []string{"A1"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ConflictingSeats(tc.requested, tc.taken))
		})
	}
}
