package service

import (
	"cmp"
	"context"
	"slices"

	"github.com/filmshelf/filmshelf/internal/domain"
	domainerrors "github.com/filmshelf/filmshelf/internal/errors"
	"github.com/filmshelf/filmshelf/internal/normalize"
	"github.com/filmshelf/filmshelf/internal/search"
)

// Suggestion is a fuzzy "did you mean" candidate.
type Suggestion struct {
	Movie *domain.Movie
	Score int
}

// SearchResult holds substring matches or, when there are none, fuzzy
// suggestions. Both are empty when nothing is close.
type SearchResult struct {
	Matches     []*domain.Movie
	Suggestions []Suggestion
}

// Empty reports whether the search found nothing at all.
func (r *SearchResult) Empty() bool {
	return len(r.Matches) == 0 && len(r.Suggestions) == 0
}

func errNoMovies() error {
	return domainerrors.NotFound("no movies available")
}

// Search finds the user's movies whose titles contain query, ignoring case.
// With no substring match it falls back to fuzzy suggestions.
func (s *CatalogService) Search(ctx context.Context, session domain.Session, query string) (*SearchResult, error) {
	query = normalize.Title(query)
	if query == "" {
		return nil, domainerrors.Validation("search query is required")
	}

	movies, err := s.Movies(ctx, session)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{}
	for _, m := range movies {
		if search.Contains(m.Title, query) {
			result.Matches = append(result.Matches, m)
		}
	}
	if len(result.Matches) > 0 {
		return result, nil
	}

	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}
	for _, match := range search.Suggest(query, titles) {
		result.Suggestions = append(result.Suggestions, Suggestion{
			Movie: movies[match.Index],
			Score: match.Score,
		})
	}

	s.logger.Debug("search",
		"user_id", session.UserID,
		"query", query,
		"suggestions", len(result.Suggestions),
	)
	return result, nil
}

// Stats summarizes the user's ratings. Ties at the best and worst rating
// are all reported, in insertion order.
func (s *CatalogService) Stats(ctx context.Context, session domain.Session) (*domain.RatingStats, error) {
	movies, err := s.Movies(ctx, session)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, errNoMovies()
	}

	return computeStats(movies), nil
}

func computeStats(movies []*domain.Movie) *domain.RatingStats {
	ratings := make([]float64, len(movies))
	var sum float64
	for i, m := range movies {
		ratings[i] = m.Rating
		sum += m.Rating
	}

	stats := &domain.RatingStats{
		Count:       len(movies),
		Mean:        sum / float64(len(movies)),
		Median:      median(ratings),
		BestRating:  slices.Max(ratings),
		WorstRating: slices.Min(ratings),
	}
	for _, m := range movies {
		if m.Rating == stats.BestRating {
			stats.Best = append(stats.Best, m.Title)
		}
		if m.Rating == stats.WorstRating {
			stats.Worst = append(stats.Worst, m.Title)
		}
	}
	return stats
}

// median returns the middle value, or the mean of the two middle values
// for an even count. values must be non-empty; it is not modified.
func median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// SortByRating returns the user's movies by rating, highest first.
// Movies with equal ratings keep insertion order.
func (s *CatalogService) SortByRating(ctx context.Context, session domain.Session) ([]*domain.Movie, error) {
	movies, err := s.Movies(ctx, session)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(movies, func(a, b *domain.Movie) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	return movies, nil
}

// RandomMovie picks one of the user's movies uniformly at random.
func (s *CatalogService) RandomMovie(ctx context.Context, session domain.Session) (*domain.Movie, error) {
	movies, err := s.Movies(ctx, session)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, errNoMovies()
	}

	return movies[s.intN(len(movies))], nil
}
