package domain

// RatingStats summarizes the ratings in one user's catalog.
// Best and Worst list every title tied at the extreme rating.
type RatingStats struct {
	Count       int      `json:"count"`
	Mean        float64  `json:"mean"`
	Median      float64  `json:"median"`
	BestRating  float64  `json:"best_rating"`
	Best        []string `json:"best"`
	WorstRating float64  `json:"worst_rating"`
	Worst       []string `json:"worst"`
}
