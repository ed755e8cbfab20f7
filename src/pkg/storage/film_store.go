// Package storage provides functionality for persisting and retrieving Filmscape data.
// This file handles loading the merged film dataset.
package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"filmscape/local-app/src/pkg/model"
)

// FilmLoad reads the merged film dataset. Columns are located by header name,
// so their order in the file does not matter.
func FilmLoad(path string) (model.FilmSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.FilmSet{}, &model.DatasetError{Path: path, Err: err}
	}
	defer file.Close()

	films, err := FilmRead(file, path)
	if err != nil {
		return model.FilmSet{}, err
	}
	return model.NewFilmSet(films), nil
}

// FilmRead parses dataset rows from r. name is only used in error messages.
func FilmRead(r io.Reader, name string) ([]*model.Film, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &model.DatasetError{Path: name, Reason: "file is empty"}
		}
		return nil, &model.DatasetError{Path: name, Reason: "cannot read header", Err: err}
	}

	cols, err := locateColumns(header)
	if err != nil {
		return nil, &model.DatasetError{Path: name, Line: 1, Err: err}
	}

	var films []*model.Film
	seen := make(map[int]int)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, &model.DatasetError{Path: name, Line: perr.Line, Err: perr.Err}
			}
			return nil, &model.DatasetError{Path: name, Err: err}
		}
		line, _ := reader.FieldPos(0)

		film, err := parseFilm(record, cols)
		if err != nil {
			return nil, &model.DatasetError{Path: name, Line: line, Err: err}
		}
		if reason := claimIndex(seen, film.OriginalIndex, line, "line"); reason != "" {
			return nil, &model.DatasetError{Path: name, Line: line, Reason: reason}
		}
		films = append(films, film)
	}
	return films, nil
}

// locateColumns maps each dataset column to its position in the header.
func locateColumns(header []string) (map[model.Column]int, error) {
	cols := make(map[model.Column]int, len(model.Columns))
	for i, name := range header {
		// Excel-written files carry a BOM on the first header
		name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
		col, err := model.ParseColumn(name)
		if err != nil {
			continue
		}
		if _, dup := cols[col]; !dup {
			cols[col] = i
		}
	}
	var missing []string
	for _, col := range model.Columns {
		if _, ok := cols[col]; !ok {
			missing = append(missing, col.String())
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseFilm(record []string, cols map[model.Column]int) (*model.Film, error) {
	field := func(c model.Column) string {
		i := cols[c]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	index, err := parseIndex(field(model.ColumnOriginalIndex))
	if err != nil {
		return nil, err
	}
	released, err := ParseDate(field(model.ColumnReleaseDate))
	if err != nil {
		return nil, err
	}
	runtime, err := ConvertRuntime(field(model.ColumnRuntime))
	if err != nil {
		return nil, err
	}
	rating, err := parseRating(field(model.ColumnRating))
	if err != nil {
		return nil, err
	}

	return &model.Film{
		OriginalIndex: index,
		ReleaseDate:   released,
		Title:         field(model.ColumnTitle),
		Genre:         field(model.ColumnGenre),
		Runtime:       runtime,
		Language:      field(model.ColumnLanguage),
		Type:          field(model.ColumnType),
		Rating:        rating,
	}, nil
}

// claimIndex records index as used at position at. It returns a reason when an
// earlier record already holds the index.
func claimIndex(seen map[int]int, index, at int, unit string) string {
	if prev, dup := seen[index]; dup {
		return fmt.Sprintf("original index %d already used on %s %d", index, unit, prev)
	}
	seen[index] = at
	return ""
}

func parseIndex(text string) (int, error) {
	if n, err := strconv.Atoi(text); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid original index '%s'", text)
	}
	return int(f), nil
}

func parseRating(text string) (*float64, error) {
	switch strings.ToLower(text) {
	case "", "nan", "na", "null":
		return nil, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid rating '%s'", text)
	}
	return &v, nil
}
