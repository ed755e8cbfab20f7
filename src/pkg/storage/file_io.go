package storage

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"filmscape/local-app/src/pkg/model"
)

// filmExport is the on-disk shape of an exported film. Dates and runtimes are
// written in their dataset text form so exports stay readable and reloadable.
type filmExport struct {
	OriginalIndex int      `json:"original_index" xml:"original_index,attr"`
	ReleaseDate   string   `json:"release_date" xml:"release_date"`
	Title         string   `json:"title" xml:"title"`
	Genre         string   `json:"genre" xml:"genre"`
	Runtime       string   `json:"runtime" xml:"runtime"`
	Language      string   `json:"language" xml:"language"`
	Type          string   `json:"type" xml:"type"`
	Rating        *float64 `json:"rating,omitempty" xml:"rating,omitempty"`
}

type filmsExport struct {
	XMLName xml.Name     `json:"-" xml:"films"`
	Films   []filmExport `json:"films" xml:"film"`
}

// FileExport exports a film set to a file in the specified format (json, xml or csv).
func FileExport(films model.FilmSet, filename string, format string) error {
	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(toExport(films), "", "  ")
	case "xml":
		data, err = xml.MarshalIndent(toExport(films), "", "  ")
	case "csv":
		return exportCSV(films, filename)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal films: %w", err)
	}

	if err := ensureDir(filename); err != nil {
		return err
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// FileImport imports a film set from a file in the specified format (json, xml or csv).
func FileImport(filename string, format string) (model.FilmSet, error) {
	if format == "csv" {
		return FilmLoad(filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return model.FilmSet{}, fmt.Errorf("failed to read file: %w", err)
	}

	var imported filmsExport
	switch format {
	case "json":
		err = json.Unmarshal(data, &imported)
	case "xml":
		err = xml.Unmarshal(data, &imported)
	default:
		return model.FilmSet{}, fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return model.FilmSet{}, fmt.Errorf("failed to unmarshal data: %w", err)
	}

	films := make([]*model.Film, 0, len(imported.Films))
	seen := make(map[int]int, len(imported.Films))
	for i, fe := range imported.Films {
		if reason := claimIndex(seen, fe.OriginalIndex, i+1, "record"); reason != "" {
			return model.FilmSet{}, &model.DatasetError{Path: filename, Reason: reason}
		}
		released, err := ParseDate(fe.ReleaseDate)
		if err != nil {
			return model.FilmSet{}, fmt.Errorf("film %d: %w", fe.OriginalIndex, err)
		}
		runtime, err := ConvertRuntime(fe.Runtime)
		if err != nil {
			return model.FilmSet{}, fmt.Errorf("film %d: %w", fe.OriginalIndex, err)
		}
		films = append(films, &model.Film{
			OriginalIndex: fe.OriginalIndex,
			ReleaseDate:   released,
			Title:         fe.Title,
			Genre:         fe.Genre,
			Runtime:       runtime,
			Language:      fe.Language,
			Type:          fe.Type,
			Rating:        fe.Rating,
		})
	}
	return model.NewFilmSet(films), nil
}

func toExport(films model.FilmSet) filmsExport {
	out := filmsExport{Films: make([]filmExport, 0, films.Len())}
	for _, f := range films.Films() {
		out.Films = append(out.Films, filmExport{
			OriginalIndex: f.OriginalIndex,
			ReleaseDate:   f.ReleaseDate.Format(time.DateOnly),
			Title:         f.Title,
			Genre:         f.Genre,
			Runtime:       exportRuntime(f.Runtime),
			Language:      f.Language,
			Type:          f.Type,
			Rating:        f.Rating,
		})
	}
	return out
}

func exportCSV(films model.FilmSet, filename string) error {
	if err := ensureDir(filename); err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := writeCSV(file, films); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

func writeCSV(out io.Writer, films model.FilmSet) error {
	w := csv.NewWriter(out)
	header := make([]string, len(model.Columns))
	for i, c := range model.Columns {
		header[i] = c.String()
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, f := range films.Films() {
		rating := ""
		if f.Rating != nil {
			rating = strconv.FormatFloat(*f.Rating, 'f', -1, 64)
		}
		row := []string{
			strconv.Itoa(f.OriginalIndex),
			f.ReleaseDate.Format(time.DateOnly),
			f.Title,
			f.Genre,
			exportRuntime(f.Runtime),
			f.Language,
			f.Type,
			rating,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write film %d: %w", f.OriginalIndex, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// exportRuntime writes whole-minute runtimes in dataset form and anything finer
// as a Go duration, which ConvertRuntime reads back unchanged.
func exportRuntime(d time.Duration) string {
	if d%time.Minute == 0 {
		return FormatRuntime(d)
	}
	return d.String()
}

func ensureDir(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}
