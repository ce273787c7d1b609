package models

import (
	"gorm.io/gorm"
)

// Lead pipeline statuses. Any status is reachable from any other; the
// pipeline is intentionally permissive (a lost lead can be un-marked).
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusPromising = "promising"
	LeadStatusFuture    = "future"
	LeadStatusLost      = "lost"
	LeadStatusConverted = "converted"
)

// Lead priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Property interest
const (
	InterestBuy  = "buy"
	InterestRent = "rent"
)

// Lead sources
const (
	SourceWebsite  = "website"
	SourceReferral = "referral"
	SourceCall     = "call"
	SourceSocial   = "social"
	SourceOther    = "other"
)

// Lead represents a prospective client tracked through the sales pipeline
type Lead struct {
	gorm.Model

	// Contact details
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"not null;index" json:"email"`
	Phone string `gorm:"not null" json:"phone"`

	// What they are looking for
	PropertyInterest string `gorm:"not null" json:"property_interest"` // buy, rent
	BudgetMin        int64  `gorm:"not null" json:"budget_min"`
	BudgetMax        int64  `gorm:"not null" json:"budget_max"`
	Location         string `gorm:"not null" json:"location"`

	// Pipeline tracking
	Source   string `gorm:"not null" json:"source"`                     // website, referral, call, social, other
	Priority string `gorm:"not null;default:'medium'" json:"priority"`  // low, medium, high
	Status   string `gorm:"not null;index;default:'new'" json:"status"` // new, contacted, promising, future, lost, converted

	// Assignment and notes
	AssignedTo *uint   `gorm:"index" json:"assigned_to,omitempty"`
	Notes      *string `json:"notes,omitempty"`

	// Relations
	Activities []Activity `gorm:"foreignKey:LeadID" json:"activities,omitempty"`
	Meetings   []Meeting  `gorm:"foreignKey:LeadID" json:"meetings,omitempty"`
}

// LeadStatuses lists every pipeline status in display order.
var LeadStatuses = []string{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusPromising,
	LeadStatusFuture,
	LeadStatusLost,
	LeadStatusConverted,
}

// ValidLeadStatus reports whether status is a known pipeline status.
func ValidLeadStatus(status string) bool {
	for _, s := range LeadStatuses {
		if s == status {
			return true
		}
	}
	return false
}
