// Package model defines the data structures used throughout the Filmscape application.
package model

import (
	"sort"
	"strings"
	"time"
)

// Film represents a single row of the film dataset.
type Film struct {
	OriginalIndex int           `json:"original_index" xml:"original_index,attr"`
	ReleaseDate   time.Time     `json:"release_date" xml:"release_date"`
	Title         string        `json:"title" xml:"title"`
	Genre         string        `json:"genre" xml:"genre"`
	Runtime       time.Duration `json:"runtime" xml:"runtime"`
	Language      string        `json:"language" xml:"language"`
	Type          string        `json:"type" xml:"type"`
	Rating        *float64      `json:"rating,omitempty" xml:"rating,omitempty"`
}

// HasRating reports whether the film matched a rating record.
func (f Film) HasRating() bool {
	return f.Rating != nil
}

// FilmSet is an ordered, read-only view over film records. Operations that
// narrow or reorder a FilmSet return a new one and leave the receiver untouched.
type FilmSet struct {
	films []*Film
}

// NewFilmSet builds a FilmSet over the given records, keeping their order.
func NewFilmSet(films []*Film) FilmSet {
	return FilmSet{films: append([]*Film(nil), films...)}
}

// Len returns the number of films in the set.
func (fs FilmSet) Len() int {
	return len(fs.films)
}

// At returns a copy of the i-th film.
func (fs FilmSet) At(i int) Film {
	return *fs.films[i]
}

// Films returns copies of all films in order.
func (fs FilmSet) Films() []Film {
	out := make([]Film, len(fs.films))
	for i, f := range fs.films {
		out[i] = *f
	}
	return out
}

// Indexes returns the original indexes of the films in order.
func (fs FilmSet) Indexes() []int {
	out := make([]int, len(fs.films))
	for i, f := range fs.films {
		out[i] = f.OriginalIndex
	}
	return out
}

// ByIndex finds a film by its original index.
func (fs FilmSet) ByIndex(index int) (Film, bool) {
	for _, f := range fs.films {
		if f.OriginalIndex == index {
			return *f, true
		}
	}
	return Film{}, false
}

// Contains reports whether a film with the original index is part of the set.
func (fs FilmSet) Contains(index int) bool {
	_, ok := fs.ByIndex(index)
	return ok
}

// Select returns the films for which keep returns true, in the receiver's order.
func (fs FilmSet) Select(keep func(Film) bool) FilmSet {
	out := make([]*Film, 0, len(fs.films))
	for _, f := range fs.films {
		if keep(*f) {
			out = append(out, f)
		}
	}
	return FilmSet{films: out}
}

// SortStable returns the films ordered by less; equal films keep their relative order.
func (fs FilmSet) SortStable(less func(a, b Film) bool) FilmSet {
	out := append([]*Film(nil), fs.films...)
	sort.SliceStable(out, func(i, j int) bool {
		return less(*out[i], *out[j])
	})
	return FilmSet{films: out}
}

// Concat returns the receiver followed by other.
func (fs FilmSet) Concat(other FilmSet) FilmSet {
	out := make([]*Film, 0, len(fs.films)+len(other.films))
	out = append(out, fs.films...)
	out = append(out, other.films...)
	return FilmSet{films: out}
}

// Pick returns the films of the receiver whose original index appears in indexes,
// ordered like indexes. Unknown indexes are skipped.
func (fs FilmSet) Pick(indexes []int) FilmSet {
	byIndex := make(map[int]*Film, len(fs.films))
	for _, f := range fs.films {
		byIndex[f.OriginalIndex] = f
	}
	out := make([]*Film, 0, len(indexes))
	for _, idx := range indexes {
		if f, ok := byIndex[idx]; ok {
			out = append(out, f)
		}
	}
	return FilmSet{films: out}
}

// Column identifies one of the displayable film fields.
type Column int

const (
	ColumnOriginalIndex Column = iota
	ColumnReleaseDate
	ColumnTitle
	ColumnGenre
	ColumnRuntime
	ColumnLanguage
	ColumnType
	ColumnRating
)

// Columns lists every displayable column in dataset order.
var Columns = []Column{
	ColumnOriginalIndex,
	ColumnReleaseDate,
	ColumnTitle,
	ColumnGenre,
	ColumnRuntime,
	ColumnLanguage,
	ColumnType,
	ColumnRating,
}

// String returns the dataset header of the column.
func (c Column) String() string {
	switch c {
	case ColumnOriginalIndex:
		return "Original Index"
	case ColumnReleaseDate:
		return "Release date"
	case ColumnTitle:
		return "Title"
	case ColumnGenre:
		return "Genre"
	case ColumnRuntime:
		return "Runtime"
	case ColumnLanguage:
		return "Language"
	case ColumnType:
		return "Type"
	case ColumnRating:
		return "Rating"
	default:
		return "Unknown"
	}
}

// ParseColumn resolves a dataset header or its snake_case form to a Column.
func ParseColumn(name string) (Column, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "_", " ")
	for _, c := range Columns {
		if strings.ToLower(c.String()) == key {
			return c, nil
		}
	}
	switch key {
	case "index", "idx":
		return ColumnOriginalIndex, nil
	case "date", "release":
		return ColumnReleaseDate, nil
	}
	return 0, &ColumnError{Column: name}
}

// FilmFilter holds the criteria of a filter pass. Nil bounds and empty
// categorical values leave the dimension unrestricted.
type FilmFilter struct {
	DateFrom    *time.Time
	DateTo      *time.Time
	RuntimeFrom *time.Duration
	RuntimeTo   *time.Duration
	RatingFrom  *float64
	RatingTo    *float64
	Genre       string
	Language    string
	Type        string
}

// IsZero reports whether the filter restricts nothing.
func (f FilmFilter) IsZero() bool {
	return f.DateFrom == nil && f.DateTo == nil &&
		f.RuntimeFrom == nil && f.RuntimeTo == nil &&
		f.RatingFrom == nil && f.RatingTo == nil &&
		f.Genre == "" && f.Language == "" && f.Type == ""
}
