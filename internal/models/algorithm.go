package models

// AccessPublic is the default visibility for a new algorithm.
const AccessPublic = "public"

// Algorithm is a user-owned content record, grouped under a category.
// The json tags define its public view: exactly these fields are ever
// returned to a client.
type Algorithm struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	CategoryID  *int64 `json:"category_id"` // nil once the category is deleted
	SubCategory string `json:"sub_category"`
	UserID      int64  `json:"user_id"`
	Access      string `json:"access"`
}

// AlgorithmPatch carries the fields a partial update may change.
// A nil field leaves the current value untouched.
type AlgorithmPatch struct {
	Title       *string
	Content     *string
	CategoryID  *int64
	SubCategory *string
	Access      *string
}
