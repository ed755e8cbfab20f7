// Package query implements search, filter and sort operations over film sets.
// Every operation returns a new FilmSet and leaves its input untouched.
package query

import (
	"context"
	"sort"
	"strings"

	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
)

// Categorical dimensions validated against the catalog vocabulary.
const (
	DimensionGenre    = "genre"
	DimensionLanguage = "language"
	DimensionType     = "type"
)

// Engine runs queries against film sets drawn from one catalog. The catalog
// fixes the vocabulary that categorical filters are validated against.
type Engine struct {
	catalog model.FilmSet
	byIndex map[int]model.Film
	vocab   map[string]map[string]string
	logger  *log.Logger
}

// NewEngine captures the catalog and its categorical vocabulary.
func NewEngine(catalog model.FilmSet, logger *log.Logger) *Engine {
	e := &Engine{
		catalog: catalog,
		byIndex: make(map[int]model.Film, catalog.Len()),
		vocab: map[string]map[string]string{
			DimensionGenre:    {},
			DimensionLanguage: {},
			DimensionType:     {},
		},
		logger: logger,
	}
	for _, f := range catalog.Films() {
		e.byIndex[f.OriginalIndex] = f
		e.addTerm(DimensionGenre, f.Genre)
		e.addTerm(DimensionLanguage, f.Language)
		e.addTerm(DimensionType, f.Type)
	}
	logger.Info(context.Background(), "Query engine ready", log.Fields{
		"films":     catalog.Len(),
		"genres":    len(e.vocab[DimensionGenre]),
		"languages": len(e.vocab[DimensionLanguage]),
		"types":     len(e.vocab[DimensionType]),
	})
	return e
}

func (e *Engine) addTerm(dimension, value string) {
	if value == "" {
		return
	}
	key := strings.ToLower(value)
	if _, ok := e.vocab[dimension][key]; !ok {
		e.vocab[dimension][key] = value
	}
}

// Catalog returns the full film set.
func (e *Engine) Catalog() model.FilmSet {
	return e.catalog
}

// ByIndex looks a film up in the catalog by original index.
func (e *Engine) ByIndex(index int) (model.Film, bool) {
	f, ok := e.byIndex[index]
	return f, ok
}

// Vocabulary lists the distinct values of a categorical dimension, sorted.
func (e *Engine) Vocabulary(dimension string) []string {
	terms := e.vocab[dimension]
	out := make([]string, 0, len(terms))
	for _, v := range terms {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// knownTerm reports whether value names a category of the catalog, ignoring case.
func (e *Engine) knownTerm(dimension, value string) bool {
	_, ok := e.vocab[dimension][strings.ToLower(value)]
	return ok
}

// SearchTitle keeps films whose title contains text. Matching is case-sensitive;
// empty text returns films unchanged.
func (e *Engine) SearchTitle(text string, films model.FilmSet) model.FilmSet {
	if text == "" {
		return films
	}
	return films.Select(func(f model.Film) bool {
		return strings.Contains(f.Title, text)
	})
}

// SearchGenre keeps films whose genre contains text, with the same rules as SearchTitle.
func (e *Engine) SearchGenre(text string, films model.FilmSet) model.FilmSet {
	if text == "" {
		return films
	}
	return films.Select(func(f model.Film) bool {
		return strings.Contains(f.Genre, text)
	})
}
