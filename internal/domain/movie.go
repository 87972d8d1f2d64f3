package domain

// Rating and year bounds enforced on manually entered movies.
// Lookup-sourced ratings may be 0.0 when the source has none.
const (
	MinRating = 1.0
	MaxRating = 10.0
	MinYear   = 1888
	MaxYear   = 2100
)

// Movie is one row of a user's catalog. The (UserID, Title) pair is unique
// and Title never changes after creation.
type Movie struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Rating    float64 `json:"rating"`
	PosterURL string  `json:"poster_url,omitempty"` // empty when unknown
}

// Info returns the per-title details stored alongside the movie.
func (m *Movie) Info() MovieInfo {
	return MovieInfo{Year: m.Year, Rating: m.Rating, PosterURL: m.PosterURL}
}

// HasPoster reports whether a poster URL is stored.
func (m *Movie) HasPoster() bool {
	return m.PosterURL != ""
}

// MovieInfo is the value side of a Catalog.
type MovieInfo struct {
	Year      int     `json:"year"`
	Rating    float64 `json:"rating"`
	PosterURL string  `json:"poster_url,omitempty"`
}

// Catalog maps a title to its details for a single user.
type Catalog map[string]MovieInfo

// Titles returns the catalog's titles in unspecified order.
func (c Catalog) Titles() []string {
	titles := make([]string, 0, len(c))
	for t := range c {
		titles = append(titles, t)
	}
	return titles
}

// ManualEntry holds the fields a user types when no lookup record is available.
type ManualEntry struct {
	Rating float64 `name:"rating" validate:"gte=1,lte=10"`
	Year   int     `name:"year" validate:"gte=1888,lte=2100"`
}

// RatingUpdate is the validated input for changing a movie's rating.
type RatingUpdate struct {
	Title  string  `name:"title" validate:"required"`
	Rating float64 `name:"rating" validate:"gte=1,lte=10"`
}
