package domain

import "time"

// MatchStatus is free to move between any of its values.
type MatchStatus string

const (
	MatchStatusSuggested   MatchStatus = "suggested"
	MatchStatusShortlisted MatchStatus = "shortlisted"
	MatchStatusContacted   MatchStatus = "contacted"
	MatchStatusHired       MatchStatus = "hired"
	MatchStatusDeclined    MatchStatus = "declined"
)

// Valid reports whether the status is one of the known values.
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusSuggested, MatchStatusShortlisted, MatchStatusContacted, MatchStatusHired, MatchStatusDeclined:
		return true
	}
	return false
}

// Match pairs one brief with one creator and scopes their conversation.
type Match struct {
	ID        string
	BriefID   string
	CreatorID string
	Status    MatchStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MatchParties is a match joined with both sides' owner identities.
type MatchParties struct {
	Match
	BriefTitle     string
	CompanyID      string
	CompanyName    string
	CompanyOwnerID string
	CreatorName    string
	CreatorOwnerID string
}
