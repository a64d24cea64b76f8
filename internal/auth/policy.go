package auth

import "github.com/montaro/algohub/internal/models"

// Authorization rules, kept apart from status-code mapping so handlers
// decide how a denial is reported.

// CanManageCategories reports whether the principal may create, update or
// delete categories. Reading them only takes an authenticated session.
func CanManageCategories(p Principal) bool {
	return p.Role == models.RoleAdmin
}

// CanModifyAlgorithm reports whether the principal may update or delete
// the given algorithm. Only the owner may.
func CanModifyAlgorithm(p Principal, a models.Algorithm) bool {
	return p.ID == a.UserID
}
