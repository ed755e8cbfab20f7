package session

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
	"filmscape/local-app/src/pkg/query"
	"filmscape/local-app/src/pkg/storage"
)

// handleFilmShow returns the current view
func handleFilmShow(s *Session, cmd model.Command) (interface{}, error) {
	return s.View(), nil
}

// handleFilmGet returns one catalog film by its original index
func handleFilmGet(s *Session, cmd model.Command) (interface{}, error) {
	index, err := parseIndex(cmd.Args[0])
	if err != nil {
		return nil, err
	}
	film, ok := s.DataManager.QueryEngine.ByIndex(index)
	if !ok {
		return nil, &model.InputError{Field: "index", Constraint: fmt.Sprintf("no film with index %d", index)}
	}
	return film, nil
}

// handleFilmFilter handles "film filter [key=value]...". Without arguments the filter is cleared.
func handleFilmFilter(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling film filter command", log.Fields{"args": cmd.Args})

	criteria, err := parseFilter(cmd.Args)
	if err != nil {
		return nil, err
	}
	if err := s.FilterApply(criteria); err != nil {
		return nil, err
	}
	return s.View(), nil
}

// handleFilmSearch handles "film search [title=<text>] [genre=<text>]". A bare word searches titles.
func handleFilmSearch(s *Session, cmd model.Command) (interface{}, error) {
	var title, genre string
	for _, arg := range cmd.Args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			title = arg
			continue
		}
		switch strings.ToLower(key) {
		case "title":
			title = value
		case "genre":
			genre = value
		default:
			return nil, &model.InputError{Field: "search", Constraint: fmt.Sprintf("unknown key '%s', use title or genre", key)}
		}
	}
	if err := s.SearchApply(title, genre); err != nil {
		return nil, err
	}
	return s.View(), nil
}

// handleFilmSort handles "film sort <column>"
func handleFilmSort(s *Session, cmd model.Command) (interface{}, error) {
	column, err := model.ParseColumn(cmd.Args[0])
	if err != nil {
		return nil, err
	}
	pass, err := s.SortApply(column)
	if err != nil {
		return nil, err
	}
	s.logger.Debug(context.Background(), "Sort applied", log.Fields{"column": pass.Column.String(), "ascending": pass.Ascending})
	return s.View(), nil
}

// handleFilmReset clears filter, search and sort state
func handleFilmReset(s *Session, cmd model.Command) (interface{}, error) {
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s.View(), nil
}

// handleFilmValues lists the accepted values of a categorical filter
func handleFilmValues(s *Session, cmd model.Command) (interface{}, error) {
	dimension := strings.ToLower(cmd.Args[0])
	switch dimension {
	case query.DimensionGenre, query.DimensionLanguage, query.DimensionType:
	default:
		return nil, &model.InputError{Field: "dimension", Constraint: "must be one of genre, language, type"}
	}
	return model.CategoryValues{
		Dimension: dimension,
		Values:    s.DataManager.QueryEngine.Vocabulary(dimension),
	}, nil
}

// handleFilmExport writes the current view to a file
func handleFilmExport(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	filename := cmd.Args[0]

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if len(cmd.Args) == 2 {
		format = strings.ToLower(cmd.Args[1])
	}
	switch format {
	case "json", "xml", "csv":
	case "":
		format = "json"
		filename += ".json"
	default:
		return nil, fmt.Errorf("invalid export format: %s", format)
	}
	s.logger.Info(ctx, "Handling film export command", log.Fields{"filename": filename, "format": format})

	view := s.View()
	if err := s.DataManager.FilmExport(view, filename, format); err != nil {
		return nil, err
	}
	return fmt.Sprintf("%d films exported to %s", view.Len(), filename), nil
}

// parseFilter converts key=value arguments into filter criteria
func parseFilter(args []string) (model.FilmFilter, error) {
	var criteria model.FilmFilter
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if !found || value == "" {
			return model.FilmFilter{}, &model.InputError{Field: "filter", Constraint: fmt.Sprintf("'%s' must have the form key=value", arg)}
		}

		var err error
		switch key {
		case "date_from":
			criteria.DateFrom, err = parseDateBound(value)
		case "date_to":
			criteria.DateTo, err = parseDateBound(value)
		case "runtime_from":
			criteria.RuntimeFrom, err = parseRuntimeBound(value)
		case "runtime_to":
			criteria.RuntimeTo, err = parseRuntimeBound(value)
		case "rating_from":
			criteria.RatingFrom, err = parseRatingBound(value)
		case "rating_to":
			criteria.RatingTo, err = parseRatingBound(value)
		case "genre":
			criteria.Genre = value
		case "language":
			criteria.Language = value
		case "type":
			criteria.Type = value
		default:
			err = &model.InputError{Field: "filter", Constraint: fmt.Sprintf("unknown key '%s'", key)}
		}
		if err != nil {
			return model.FilmFilter{}, err
		}
	}
	return criteria, nil
}

func parseDateBound(text string) (*time.Time, error) {
	t, err := storage.ParseDate(text)
	if err != nil {
		return nil, &model.InputError{Field: "date", Constraint: fmt.Sprintf("'%s' is not a YYYY-MM-DD date", text)}
	}
	return &t, nil
}

func parseRuntimeBound(text string) (*time.Duration, error) {
	d, err := storage.ConvertRuntime(text)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseRatingBound(text string) (*float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, &model.InputError{Field: "rating", Constraint: fmt.Sprintf("'%s' is not a number", text)}
	}
	return &v, nil
}
