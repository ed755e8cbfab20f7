package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"filmscape/local-app/src/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDataset = `Original Index,Release date,Title,Genre,Runtime,Language,Type,Rating
1,2019-11-27,The Irishman,Crime drama,3 h 29 min,English,Films,7.8
2,2020-01-15,Night on Earth,Documentary,4 h 2 min,English,Documentaries,7.3
3,2021-06-04,"Sweet Tooth, Part 1",Drama,1 h 38 min,English,Films,
`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "films.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFilmLoad(t *testing.T) {
	films, err := FilmLoad(writeDataset(t, sampleDataset))
	require.NoError(t, err)
	require.Equal(t, 3, films.Len())

	first := films.At(0)
	assert.Equal(t, 1, first.OriginalIndex)
	assert.Equal(t, time.Date(2019, 11, 27, 0, 0, 0, 0, time.UTC), first.ReleaseDate)
	assert.Equal(t, 209*time.Minute, first.Runtime)
	require.NotNil(t, first.Rating)
	assert.InDelta(t, 7.8, *first.Rating, 1e-9)

	third := films.At(2)
	assert.Equal(t, "Sweet Tooth, Part 1", third.Title)
	assert.Nil(t, third.Rating)
}

func TestFilmLoadColumnOrderIndependent(t *testing.T) {
	content := "Title,Rating,Type,Language,Runtime,Genre,Release date,Original Index\n" +
		"Roma,7.7,Films,Spanish,2 h 15 min,Drama,2018-12-14,12\n"
	films, err := FilmLoad(writeDataset(t, content))
	require.NoError(t, err)
	require.Equal(t, 1, films.Len())
	assert.Equal(t, 12, films.At(0).OriginalIndex)
	assert.Equal(t, "Spanish", films.At(0).Language)
}

func TestFilmLoadFailures(t *testing.T) {
	_, err := FilmLoad(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, model.ErrDatasetUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = FilmLoad(writeDataset(t, "Title,Genre\nRoma,Drama\n"))
	assert.ErrorIs(t, err, model.ErrDatasetUnavailable)
	assert.Contains(t, err.Error(), "missing columns")

	dup := sampleDataset + "1,2022-01-01,Again,Drama,1 h,English,Films,5.0\n"
	_, err = FilmLoad(writeDataset(t, dup))
	assert.ErrorIs(t, err, model.ErrDatasetUnavailable)
	assert.Contains(t, err.Error(), "already used")

	badRuntime := strings.Replace(sampleDataset, "1 h 38 min", "long", 1)
	_, err = FilmLoad(writeDataset(t, badRuntime))
	assert.ErrorIs(t, err, model.ErrDatasetUnavailable)
	assert.ErrorIs(t, err, model.ErrInvalidRuntimeFormat)

	_, err = FilmLoad(writeDataset(t, ""))
	assert.ErrorIs(t, err, model.ErrDatasetUnavailable)
}

func TestFileExportRoundTrip(t *testing.T) {
	films, err := FilmLoad(writeDataset(t, sampleDataset))
	require.NoError(t, err)
	dir := t.TempDir()

	for _, format := range []string{"json", "xml", "csv"} {
		path := filepath.Join(dir, "out", "films."+format)
		require.NoError(t, FileExport(films, path, format), format)

		back, err := FileImport(path, format)
		require.NoError(t, err, format)
		assert.Equal(t, films.Indexes(), back.Indexes(), format)
		assert.Equal(t, films.At(2).Title, back.At(2).Title, format)
		assert.Nil(t, back.At(2).Rating, format)
		assert.Equal(t, films.At(0).Runtime, back.At(0).Runtime, format)
	}

	assert.Error(t, FileExport(films, filepath.Join(dir, "films.txt"), "txt"))
}

func TestDatasetLoadByExtension(t *testing.T) {
	films, err := FilmLoad(writeDataset(t, sampleDataset))
	require.NoError(t, err)
	dir := t.TempDir()

	path := filepath.Join(dir, "catalog.json")
	require.NoError(t, FileExport(films, path, "json"))
	back, err := datasetLoad(path)
	require.NoError(t, err)
	assert.Equal(t, films.Indexes(), back.Indexes())

	duplicate := filepath.Join(dir, "duplicate.json")
	require.NoError(t, os.WriteFile(duplicate, []byte(`{"films": [
		{"original_index": 1, "release_date": "2019-11-27", "title": "A", "runtime": "90"},
		{"original_index": 1, "release_date": "2020-01-15", "title": "B", "runtime": "95"}
	]}`), 0644))
	_, err = datasetLoad(duplicate)
	assert.ErrorIs(t, err, model.ErrDatasetUnavailable)
	assert.Contains(t, err.Error(), "original index 1 already used on record 1")

	broken := filepath.Join(dir, "broken.xml")
	require.NoError(t, os.WriteFile(broken, []byte("<films"), 0644))
	_, err = datasetLoad(broken)
	assert.ErrorIs(t, err, model.ErrDatasetUnavailable)
}

func TestFileExportKeepsSubMinuteRuntimes(t *testing.T) {
	films := model.NewFilmSet([]*model.Film{
		{OriginalIndex: 1, Title: "Short", Runtime: 12*time.Minute + 30*time.Second},
		{OriginalIndex: 2, Title: "Feature", Runtime: 98 * time.Minute},
	})
	dir := t.TempDir()

	for _, format := range []string{"json", "xml", "csv"} {
		path := filepath.Join(dir, "films."+format)
		require.NoError(t, FileExport(films, path, format), format)

		back, err := FileImport(path, format)
		require.NoError(t, err, format)
		assert.Equal(t, 12*time.Minute+30*time.Second, back.At(0).Runtime, format)
		assert.Equal(t, 98*time.Minute, back.At(1).Runtime, format)
	}

	data, err := os.ReadFile(filepath.Join(dir, "films.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "1 h 38 min")
	assert.Contains(t, string(data), "12m30s")
}
