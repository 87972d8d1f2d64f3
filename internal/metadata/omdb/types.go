package omdb

import "fmt"

// Query selects a title to look up. IMDbID wins when both are set.
type Query struct {
	Title  string
	IMDbID string
}

// IsEmpty reports whether the query has nothing to look up.
func (q Query) IsEmpty() bool {
	return q.Title == "" && q.IMDbID == ""
}

func (q Query) String() string {
	if q.IMDbID != "" {
		return "i=" + q.IMDbID
	}
	return fmt.Sprintf("t=%q", q.Title)
}

// Kind tags a lookup Result.
type Kind int

const (
	// KindFound means Record holds a usable record.
	KindFound Kind = iota
	// KindNotFound means OMDb answered but has no such title.
	KindNotFound
	// KindTransportError means the lookup could not be completed.
	KindTransportError
)

func (k Kind) String() string {
	switch k {
	case KindFound:
		return "found"
	case KindNotFound:
		return "not_found"
	case KindTransportError:
		return "transport_error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Record is a looked-up title with its fields as OMDb reports them.
// Year may be a range ("2001–2003") and Rating or Poster may be "N/A".
type Record struct {
	Title  string
	Year   string
	Rating string
	Poster string
	IMDbID string
}

// Result is the outcome of a lookup. Record is only meaningful when Kind is
// KindFound; Err is set for the other kinds.
type Result struct {
	Kind   Kind
	Record Record
	Err    error
}

// Found reports whether the lookup produced a record.
func (r Result) Found() bool {
	return r.Kind == KindFound
}

func found(rec Record) Result {
	return Result{Kind: KindFound, Record: rec}
}

func notFound(err error) Result {
	return Result{Kind: KindNotFound, Err: err}
}

func transportError(err error) Result {
	return Result{Kind: KindTransportError, Err: err}
}

// rawResponse is the subset of the OMDb JSON document filmshelf reads.
// Title is a pointer so a missing field can be told apart from an empty one.
type rawResponse struct {
	Response   string  `json:"Response"`
	Error      string  `json:"Error"`
	Title      *string `json:"Title"`
	Year       string  `json:"Year"`
	IMDbRating string  `json:"imdbRating"`
	Poster     string  `json:"Poster"`
	IMDbID     string  `json:"imdbID"`
}

func (r *rawResponse) record() Record {
	return Record{
		Title:  *r.Title,
		Year:   r.Year,
		Rating: r.IMDbRating,
		Poster: r.Poster,
		IMDbID: r.IMDbID,
	}
}
