package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/filmshelf/filmshelf/internal/domain"
	"github.com/filmshelf/filmshelf/internal/service"
)

func newTestPrinter() (*Printer, *bytes.Buffer) {
	var out bytes.Buffer
	return NewPrinter(&out, false), &out
}

func TestPrinter_Movies(t *testing.T) {
	p, out := newTestPrinter()
	p.Movies([]*domain.Movie{
		{Title: "Heat", Year: 1995, Rating: 8.3},
		{Title: "Alien", Year: 1979, Rating: 8},
	})
	assert.Equal(t, "2 movies in total\nHeat Rating 8.3 Year 1995\nAlien Rating 8.0 Year 1979\n", out.String())

	p, out = newTestPrinter()
	p.Movies(nil)
	assert.Equal(t, "0 movies in total\n", out.String())
}

func TestPrinter_MovieAdded(t *testing.T) {
	heat := &domain.Movie{Title: "Heat", Year: 1995, Rating: 8.3}

	p, out := newTestPrinter()
	p.MovieAdded(heat, service.SourceLookup)
	assert.Equal(t, "Added 'Heat' (Year: 1995, Rating: 8.3), poster URL saved.\n", out.String())

	p, out = newTestPrinter()
	p.MovieAdded(heat, service.SourceManual)
	assert.Equal(t, "Added 'Heat' (Year: 1995, Rating: 8.3).\n", out.String())
}

func TestPrinter_RandomMovie(t *testing.T) {
	p, out := newTestPrinter()
	p.RandomMovie(&domain.Movie{Title: "Heat", Year: 1995, Rating: 8.3})
	assert.Equal(t, "Random movie Heat with rating 8.3 and year 1995\n", out.String())
}

func TestPrinter_Stats(t *testing.T) {
	p, out := newTestPrinter()
	p.Stats(&domain.RatingStats{
		Count:       3,
		Mean:        7.5,
		Median:      8,
		BestRating:  9,
		Best:        []string{"Alien", "Heat"},
		WorstRating: 5.5,
		Worst:       []string{"Jaws 4"},
	})
	assert.Equal(t, "Average rating: 7.50\n"+
		"Median rating: 8.00\n"+
		"Best movies:\n"+
		"Alien (Rating: 9.0)\n"+
		"Heat (Rating: 9.0)\n"+
		"Worst movies:\n"+
		"Jaws 4 (Rating: 5.5)\n", out.String())
}

func TestPrinter_SearchResult(t *testing.T) {
	heat := &domain.Movie{Title: "Heat", Year: 1995, Rating: 8.3}

	t.Run("matches", func(t *testing.T) {
		p, out := newTestPrinter()
		p.SearchResult(&service.SearchResult{Matches: []*domain.Movie{heat}})
		assert.Equal(t, "Heat with rating 8.3 and year 1995\n", out.String())
	})

	t.Run("suggestions", func(t *testing.T) {
		p, out := newTestPrinter()
		p.SearchResult(&service.SearchResult{Suggestions: []service.Suggestion{{Movie: heat, Score: 75}}})
		assert.Equal(t, "The movie does not exist. Did you mean:\nHeat\n", out.String())
	})

	t.Run("nothing", func(t *testing.T) {
		p, out := newTestPrinter()
		p.SearchResult(&service.SearchResult{})
		assert.Equal(t, "No movies found matching search.\n", out.String())
	})
}
