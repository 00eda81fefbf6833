package models

// Stock is a single watchlist entry.
type Stock struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
