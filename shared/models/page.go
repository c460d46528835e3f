package models

// Page is the envelope of a paginated listing.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Pagination selects a window of a listing. Number starts at 1.
type Pagination struct {
	Number int
	Size   int
}

func (p Pagination) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}
