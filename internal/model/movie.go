package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Showtime is a single scheduled screening slot for a movie.  The time is
// kept as the display string used throughout the catalog (e.g. "10:00 AM")
// rather than a timestamp; the concrete calendar date is fixed when a
// booking is created.
type Showtime struct {
	Time    string `json:"time"`
	Theater string `json:"theater"`
}

// Showtimes is stored in the movies.showtimes JSON column.  It implements
// sql.Scanner and driver.Valuer so repositories can read and write it
// directly with database/sql.
type Showtimes []Showtime

// Scan decodes the JSON column value.  NULL becomes an empty list.
func (s *Showtimes) Scan(src interface{}) error {
	if src == nil {
		*s = Showtimes{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("showtimes: unsupported scan type %T", src)
	}
	if len(raw) == 0 {
		*s = Showtimes{}
		return nil
	}
	return json.Unmarshal(raw, s)
}

// Value encodes the list as JSON for storage.
func (s Showtimes) Value() (driver.Value, error) {
	if s == nil {
		s = Showtimes{}
	}
	return json.Marshal(s)
}

// Contains reports whether the list holds a slot with the given display
// time and theater.  Used when validating a booking request against the
// movie's published schedule.
func (s Showtimes) Contains(timeStr, theater string) bool {
	for _, st := range s {
		if st.Time == timeStr && st.Theater == theater {
			return true
		}
	}
	return false
}

// Genres is stored in the movies.genre JSON column as an array of strings.
type Genres []string

func (g *Genres) Scan(src interface{}) error {
	if src == nil {
		*g = Genres{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("genres: unsupported scan type %T", src)
	}
	if len(raw) == 0 {
		*g = Genres{}
		return nil
	}
	return json.Unmarshal(raw, g)
}

func (g Genres) Value() (driver.Value, error) {
	if g == nil {
		g = Genres{}
	}
	return json.Marshal(g)
}

// Movie mirrors the `movies` table.  Catalog rows are inserted by admins
// and mutated by the availability updater, which flips IsAvailable and
// seeds the default showtime schedule once the release date has passed.
//
// Fields:
//  ID              – primary key identifier.
//  Title           – display title.
//  Description     – synopsis (nullable).
//  PosterURL       – poster image URL (nullable).
//  BackdropURL     – backdrop image URL (nullable).
//  Genre           – list of genre names (JSON column).
//  Language        – primary audio language.
//  Rating          – aggregate rating on a 0–10 scale.
//  DurationMinutes – running time in minutes.
//  ReleaseDate     – theatrical release date (nullable for unannounced).
//  IsAvailable     – whether the movie is currently bookable.
//  Showtimes       – published screening slots (JSON column).
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Movie struct {
	ID              uint64     `json:"id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description"`
	PosterURL       *string    `json:"poster_url"`
	BackdropURL     *string    `json:"backdrop_url"`
	Genre           Genres     `json:"genre"`
	Language        string     `json:"language"`
	Rating          float64    `json:"rating"`
	DurationMinutes uint32     `json:"duration_minutes"`
	ReleaseDate     *time.Time `json:"release_date"`
	IsAvailable     bool       `json:"is_available"`
	Showtimes       Showtimes  `json:"showtimes"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Released reports whether the movie's release date has passed (or is
// today) relative to the given day.  Movies without a release date are
// never considered released.
func (m *Movie) Released(today time.Time) bool {
	if m.ReleaseDate == nil {
		return false
	}
	y1, m1, d1 := m.ReleaseDate.UTC().Date()
	y2, m2, d2 := today.UTC().Date()
	rd := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	td := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return !rd.After(td)
}
