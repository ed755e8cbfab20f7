package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"filmscape/local-app/src/pkg/model"
	"filmscape/local-app/src/pkg/storage"
)

const noRating = "-"

// FilmTable prints films as a table in their current order.
func (u *UI) FilmTable(films model.FilmSet) {
	if films.Len() == 0 {
		u.Info("No films to display")
		return
	}

	headers := make([]string, len(model.Columns))
	for i, c := range model.Columns {
		headers[i] = c.String()
	}

	rows := make([][]string, 0, films.Len())
	for _, f := range films.Films() {
		rows = append(rows, filmRow(f))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	if u.useColor {
		t = t.BorderStyle(borderStyle).StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	} else {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	}

	u.Println(t.String())
	u.Info(strconv.Itoa(films.Len()) + " films")
}

// FilmInfo prints every field of a single film.
func (u *UI) FilmInfo(f model.Film) {
	values := filmRow(f)
	for i, c := range model.Columns {
		u.Printf("%s %s\n", u.style(c.String()+":", labelStyle), values[i])
	}
}

// CategoryValues prints the values of a categorical dimension, one per line.
func (u *UI) CategoryValues(values model.CategoryValues) {
	if len(values.Values) == 0 {
		u.Info("No values for " + values.Dimension)
		return
	}
	for _, v := range values.Values {
		u.Printf("- %s\n", v)
	}
}

func filmRow(f model.Film) []string {
	rating := noRating
	if f.Rating != nil {
		rating = strconv.FormatFloat(*f.Rating, 'f', 1, 64)
	}
	released := ""
	if !f.ReleaseDate.IsZero() {
		released = storage.FormatDate(f.ReleaseDate)
	}
	return []string{
		strconv.Itoa(f.OriginalIndex),
		released,
		f.Title,
		f.Genre,
		storage.FormatRuntime(f.Runtime),
		f.Language,
		f.Type,
		rating,
	}
}
