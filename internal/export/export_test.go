package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmshelf/filmshelf/internal/domain"
)

func sampleMovies() []*domain.Movie {
	return []*domain.Movie{
		{ID: 1, Title: "Heat", Year: 1995, Rating: 8.3, PosterURL: "https://img/heat.jpg"},
		{ID: 2, Title: "Home Video", Year: 2015, Rating: 6},
	}
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(context.Background(), &buf, "Alice's Movies", sampleMovies()))

	out := buf.String()
	assert.Contains(t, out, "<title>Alice&#39;s Movies</title>")
	assert.Equal(t, 2, strings.Count(out, `<div class="movie">`))
	assert.Contains(t, out, `<img class="movie-poster" src="https://img/heat.jpg" alt="Heat">`)
	assert.Contains(t, out, `<div class="movie-title">Home Video</div>`)
	assert.Contains(t, out, `<div class="movie-year">2015</div>`)
	assert.Equal(t, 1, strings.Count(out, "movie-poster-missing\""))
}

func TestHTML_EscapesTitles(t *testing.T) {
	movies := []*domain.Movie{{Title: `<script>alert("x")</script>`, Year: 2000}}

	var buf bytes.Buffer
	require.NoError(t, HTML(context.Background(), &buf, "", movies))

	out := buf.String()
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "<title>"+DefaultTitle+"</title>")
}

func TestHTML_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(context.Background(), &buf, "Empty", nil))
	assert.NotContains(t, buf.String(), `<div class="movie">`)
}

func TestHTML_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := HTML(ctx, io.Discard, "x", sampleMovies())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown(context.Background(), &buf, "My Movies", sampleMovies()))

	out := buf.String()
	assert.Contains(t, out, "# My Movies")
	assert.Contains(t, out, "https://img/heat.jpg")
	assert.Contains(t, out, "Home Video")
	assert.Contains(t, out, "2015")
	assert.NotContains(t, out, "<li>")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site", "index.html")

	err := WriteFile(path, func(w io.Writer) error {
		return HTML(context.Background(), w, "Gallery", sampleMovies())
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h1>Gallery</h1>")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestWriteFile_RenderErrorKeepsOldFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	wantErr := errors.New("boom")
	err := WriteFile(path, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
