package query

import (
	"context"
	"strings"

	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
)

const (
	ratingMin = 0.0
	ratingMax = 10.0
)

// FilterValidate checks criteria without applying them. Ranges must be ordered,
// ratings must lie in [0, 10] and categorical values must exist in the catalog.
func (e *Engine) FilterValidate(criteria model.FilmFilter) error {
	if criteria.DateFrom != nil && criteria.DateTo != nil && criteria.DateFrom.After(*criteria.DateTo) {
		return &model.RangeError{Dimension: "date"}
	}
	if criteria.RuntimeFrom != nil && criteria.RuntimeTo != nil && *criteria.RuntimeFrom > *criteria.RuntimeTo {
		return &model.RangeError{Dimension: "runtime"}
	}
	if (criteria.RuntimeFrom != nil && *criteria.RuntimeFrom < 0) || (criteria.RuntimeTo != nil && *criteria.RuntimeTo < 0) {
		return &model.RangeError{Dimension: "runtime", Reason: "bounds must not be negative"}
	}
	for _, bound := range []*float64{criteria.RatingFrom, criteria.RatingTo} {
		if bound != nil && (*bound < ratingMin || *bound > ratingMax) {
			return &model.RangeError{Dimension: "rating", Reason: "bounds must lie between 0 and 10"}
		}
	}
	from, to := ratingBounds(criteria)
	if from > to {
		return &model.RangeError{Dimension: "rating"}
	}

	for _, c := range []struct {
		dimension string
		value     string
	}{
		{DimensionGenre, criteria.Genre},
		{DimensionLanguage, criteria.Language},
		{DimensionType, criteria.Type},
	} {
		if c.value != "" && !e.knownTerm(c.dimension, c.value) {
			return &model.CategoryError{Dimension: c.dimension, Value: c.value}
		}
	}
	return nil
}

// FilterBy keeps the films matching every criterion. Bounds are inclusive.
// Films without a rating are dropped only when the rating range is narrower than [0, 10].
func (e *Engine) FilterBy(criteria model.FilmFilter, films model.FilmSet) (model.FilmSet, error) {
	ctx := context.Background()

	if err := e.FilterValidate(criteria); err != nil {
		e.logger.Warn(ctx, "Filter rejected", log.Fields{"error": err})
		return model.FilmSet{}, err
	}
	if criteria.IsZero() {
		return films, nil
	}

	ratingFrom, ratingTo := ratingBounds(criteria)
	ratingRestricted := ratingFrom > ratingMin || ratingTo < ratingMax
	genre := strings.ToLower(criteria.Genre)
	language := strings.ToLower(criteria.Language)
	kind := strings.ToLower(criteria.Type)

	out := films.Select(func(f model.Film) bool {
		if criteria.DateFrom != nil && f.ReleaseDate.Before(*criteria.DateFrom) {
			return false
		}
		if criteria.DateTo != nil && f.ReleaseDate.After(*criteria.DateTo) {
			return false
		}
		if criteria.RuntimeFrom != nil && f.Runtime < *criteria.RuntimeFrom {
			return false
		}
		if criteria.RuntimeTo != nil && f.Runtime > *criteria.RuntimeTo {
			return false
		}
		if ratingRestricted {
			if f.Rating == nil || *f.Rating < ratingFrom || *f.Rating > ratingTo {
				return false
			}
		}
		if genre != "" && !strings.Contains(strings.ToLower(f.Genre), genre) {
			return false
		}
		if language != "" && !strings.Contains(strings.ToLower(f.Language), language) {
			return false
		}
		if kind != "" && !strings.Contains(strings.ToLower(f.Type), kind) {
			return false
		}
		return true
	})

	e.logger.Debug(ctx, "Filter applied", log.Fields{"in": films.Len(), "out": out.Len()})
	return out, nil
}

// ratingBounds fills missing rating bounds with the full scale.
func ratingBounds(criteria model.FilmFilter) (float64, float64) {
	from, to := ratingMin, ratingMax
	if criteria.RatingFrom != nil {
		from = *criteria.RatingFrom
	}
	if criteria.RatingTo != nil {
		to = *criteria.RatingTo
	}
	return from, to
}
