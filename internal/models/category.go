package models

// Category is a named grouping for algorithms. Names are unique.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
