package domain

import "time"

// Urgency enumerates how soon a company needs the content.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

// Cadence enumerates how often content is needed.
type Cadence string

const (
	CadenceOneOff  Cadence = "one-off"
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
)

// BriefStatus enumerates lifecycle states for briefs.
type BriefStatus string

const (
	BriefStatusOpen   BriefStatus = "open"
	BriefStatusClosed BriefStatus = "closed"
)

// Brief is a company's posted content need.
type Brief struct {
	ID               string
	CompanyID        string
	Title            string
	Description      string
	RoleTypeRequired RoleType
	Niches           []string
	BudgetMin        *int
	BudgetMax        *int
	Urgency          Urgency
	Cadence          Cadence
	Status           BriefStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BriefWithCompany is a brief joined with its owning company.
type BriefWithCompany struct {
	Brief
	Company Company
}
