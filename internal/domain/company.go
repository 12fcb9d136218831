package domain

import "time"

// Company is the hiring side of the marketplace. Exactly one user owns it.
type Company struct {
	ID           string
	UserID       string
	Name         string
	Website      *string
	ContactEmail *string
	Industries   []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
