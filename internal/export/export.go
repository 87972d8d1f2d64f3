// Package export renders a user's catalog as a static gallery page.
package export

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/filmshelf/filmshelf/internal/domain"
)

// Defaults for the generated page.
const (
	DefaultOutputPath = "index.html"
	DefaultTitle      = "My Movie App"
)

//go:embed templates/*.html
var templates embed.FS

var indexTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

// page is the data passed to the gallery template.
type page struct {
	Title  string
	Movies []*domain.Movie
}

// RenderFunc writes a rendered document to w.
type RenderFunc func(w io.Writer) error

// HTML writes the gallery page for movies to w. Titles and URLs are escaped
// by html/template.
func HTML(ctx context.Context, w io.Writer, title string, movies []*domain.Movie) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if title == "" {
		title = DefaultTitle
	}
	if err := indexTemplate.Execute(w, page{Title: title, Movies: movies}); err != nil {
		return fmt.Errorf("execute gallery template: %w", err)
	}
	return nil
}

// Markdown writes the gallery as Markdown, converted from the HTML page.
func Markdown(ctx context.Context, w io.Writer, title string, movies []*domain.Movie) error {
	var buf bytes.Buffer
	if err := HTML(ctx, &buf, title, movies); err != nil {
		return err
	}

	md, err := htmltomarkdown.ConvertString(buf.String())
	if err != nil {
		return fmt.Errorf("convert gallery to markdown: %w", err)
	}

	if _, err := io.WriteString(w, md+"\n"); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// WriteFile renders into a temporary file next to path and renames it into
// place, so readers never see a partial page. Missing directories are created.
func WriteFile(path string, render RenderFunc) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := f.Name()
	defer os.Remove(tmpPath) // Clean up on failure
	defer f.Close()

	if err := render(f); err != nil {
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
