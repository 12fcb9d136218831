package conversation

import "github.com/matchstack-dev/matchstack/internal/domain"

// Access is the viewer's standing on a match.
type Access string

const (
	AccessCompany Access = "company"
	AccessCreator Access = "creator"
	AccessNone    Access = "no-access"
)

// Resolve decides which side of the match userID is on. The company side
// wins when one account owns both the brief's company and the creator profile.
func Resolve(parties *domain.MatchParties, userID string) Access {
	if parties == nil || userID == "" {
		return AccessNone
	}
	switch userID {
	case parties.CompanyOwnerID:
		return AccessCompany
	case parties.CreatorOwnerID:
		return AccessCreator
	}
	return AccessNone
}

// SenderRole maps an access level to the role its messages carry.
func (a Access) SenderRole() (domain.SenderRole, bool) {
	switch a {
	case AccessCompany:
		return domain.SenderCompany, true
	case AccessCreator:
		return domain.SenderCreator, true
	}
	return "", false
}

// Counterpart returns the name of the other side of the conversation.
func (a Access) Counterpart(parties *domain.MatchParties) string {
	switch a {
	case AccessCompany:
		return parties.CreatorName
	case AccessCreator:
		return parties.CompanyName
	}
	return ""
}
