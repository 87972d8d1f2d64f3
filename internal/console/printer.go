package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/filmshelf/filmshelf/internal/domain"
	"github.com/filmshelf/filmshelf/internal/service"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

// Printer writes console output, coloring headers, prompts and errors
// unless colors are disabled.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

// Println writes a plain line.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Printf writes formatted plain text.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Header writes a yellow line.
func (p *Printer) Header(s string) {
	fmt.Fprintln(p.w, p.paint(colorYellow, s))
}

// Success writes a green line.
func (p *Printer) Success(s string) {
	fmt.Fprintln(p.w, p.paint(colorGreen, s))
}

// Error writes a red line.
func (p *Printer) Error(s string) {
	fmt.Fprintln(p.w, p.paint(colorRed, s))
}

// Prompt writes a yellow prompt with no trailing newline.
func (p *Printer) Prompt(s string) {
	fmt.Fprint(p.w, p.paint(colorYellow, s))
}

func (p *Printer) paint(color, s string) string {
	if !p.color {
		return s
	}
	return color + s + colorReset
}

// Movies writes a count line followed by one line per movie.
func (p *Printer) Movies(movies []*domain.Movie) {
	p.Printf("%d movies in total\n", len(movies))
	for _, m := range movies {
		p.Printf("%s Rating %s Year %d\n", m.Title, FormatRating(m.Rating), m.Year)
	}
}

// MovieAdded confirms an add. Lookup-sourced movies mention the poster.
func (p *Printer) MovieAdded(m *domain.Movie, source service.Source) {
	msg := fmt.Sprintf("Added '%s' (Year: %d, Rating: %s)", m.Title, m.Year, FormatRating(m.Rating))
	if source == service.SourceLookup {
		p.Success(msg + ", poster URL saved.")
		return
	}
	p.Success(msg + ".")
}

// RandomMovie writes the picked movie.
func (p *Printer) RandomMovie(m *domain.Movie) {
	p.Printf("Random movie %s with rating %s and year %d\n", m.Title, FormatRating(m.Rating), m.Year)
}

// Stats writes mean, median and the tied best and worst titles.
func (p *Printer) Stats(s *domain.RatingStats) {
	p.Printf("Average rating: %.2f\n", s.Mean)
	p.Printf("Median rating: %.2f\n", s.Median)
	p.Println("Best movies:")
	for _, t := range s.Best {
		p.Printf("%s (Rating: %s)\n", t, FormatRating(s.BestRating))
	}
	p.Println("Worst movies:")
	for _, t := range s.Worst {
		p.Printf("%s (Rating: %s)\n", t, FormatRating(s.WorstRating))
	}
}

// SearchResult writes substring matches, else suggestions, else a
// not-found line.
func (p *Printer) SearchResult(res *service.SearchResult) {
	switch {
	case len(res.Matches) > 0:
		for _, m := range res.Matches {
			p.Printf("%s with rating %s and year %d\n", m.Title, FormatRating(m.Rating), m.Year)
		}
	case len(res.Suggestions) > 0:
		p.Error("The movie does not exist. Did you mean:")
		for _, s := range res.Suggestions {
			p.Println(s.Movie.Title)
		}
	default:
		p.Error("No movies found matching search.")
	}
}

// FormatRating renders a rating with at least one decimal: 8 -> "8.0",
// 8.25 -> "8.25".
func FormatRating(r float64) string {
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
