package query

import (
	"cmp"
	"context"
	"strconv"

	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
)

// SortBy orders films by column. The sort is stable in both directions and
// films lacking a value for the column come last either way.
func (e *Engine) SortBy(column model.Column, ascending bool, films model.FilmSet) (model.FilmSet, error) {
	compare, present, err := comparator(column)
	if err != nil {
		e.logger.Warn(context.Background(), "Sort rejected", log.Fields{"column": int(column)})
		return model.FilmSet{}, err
	}

	withValue := films.Select(present)
	withoutValue := films.Select(func(f model.Film) bool { return !present(f) })

	sorted := withValue.SortStable(func(a, b model.Film) bool {
		if ascending {
			return compare(a, b) < 0
		}
		return compare(a, b) > 0
	})

	e.logger.Debug(context.Background(), "Sort applied", log.Fields{
		"column":    column.String(),
		"ascending": ascending,
		"count":     films.Len(),
	})
	return sorted.Concat(withoutValue), nil
}

func hasText(s string) bool { return s != "" }

// comparator returns the ordering of a column and the test for a present value.
func comparator(column model.Column) (func(a, b model.Film) int, func(model.Film) bool, error) {
	always := func(model.Film) bool { return true }
	switch column {
	case model.ColumnOriginalIndex:
		return func(a, b model.Film) int { return cmp.Compare(a.OriginalIndex, b.OriginalIndex) }, always, nil
	case model.ColumnReleaseDate:
		return func(a, b model.Film) int { return a.ReleaseDate.Compare(b.ReleaseDate) },
			func(f model.Film) bool { return !f.ReleaseDate.IsZero() }, nil
	case model.ColumnTitle:
		return func(a, b model.Film) int { return cmp.Compare(a.Title, b.Title) },
			func(f model.Film) bool { return hasText(f.Title) }, nil
	case model.ColumnGenre:
		return func(a, b model.Film) int { return cmp.Compare(a.Genre, b.Genre) },
			func(f model.Film) bool { return hasText(f.Genre) }, nil
	case model.ColumnRuntime:
		return func(a, b model.Film) int { return cmp.Compare(a.Runtime, b.Runtime) }, always, nil
	case model.ColumnLanguage:
		return func(a, b model.Film) int { return cmp.Compare(a.Language, b.Language) },
			func(f model.Film) bool { return hasText(f.Language) }, nil
	case model.ColumnType:
		return func(a, b model.Film) int { return cmp.Compare(a.Type, b.Type) },
			func(f model.Film) bool { return hasText(f.Type) }, nil
	case model.ColumnRating:
		return func(a, b model.Film) int { return cmp.Compare(*a.Rating, *b.Rating) },
			func(f model.Film) bool { return f.Rating != nil }, nil
	default:
		return nil, nil, &model.ColumnError{Column: strconv.Itoa(int(column))}
	}
}
