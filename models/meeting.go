package models

import (
	"time"

	"gorm.io/gorm"
)

// Meeting types
const (
	MeetingShowing      = "showing"
	MeetingConsultation = "consultation"
	MeetingFollowUp     = "follow_up"
	MeetingClosing      = "closing"
	MeetingInspection   = "inspection"
)

// Meeting statuses
const (
	MeetingScheduled = "scheduled"
	MeetingCompleted = "completed"
	MeetingCancelled = "cancelled"
)

// Meeting is a scheduled appointment linked to a lead and an agent.
// LeadName and AgentName are denormalized for calendar rendering and are
// reconciled when the referenced lead is renamed.
type Meeting struct {
	gorm.Model

	Title string `gorm:"not null" json:"title"`

	LeadID   uint   `gorm:"not null;index" json:"lead_id"`
	LeadName string `gorm:"not null" json:"lead_name"`

	PropertyID      *uint   `gorm:"index" json:"property_id,omitempty"`
	PropertyAddress *string `json:"property_address,omitempty"`

	// Calendar slot: date as YYYY-MM-DD, time as HH:MM, duration in minutes
	Date     string `gorm:"not null;index" json:"date"`
	Time     string `gorm:"not null" json:"time"`
	Duration int    `gorm:"not null;default:60" json:"duration"`

	Type   string `gorm:"not null" json:"type"`                       // showing, consultation, follow_up, closing, inspection
	Status string `gorm:"not null;default:'scheduled'" json:"status"` // scheduled, completed, cancelled

	AgentID   uint   `gorm:"not null;index" json:"agent_id"`
	AgentName string `gorm:"not null" json:"agent_name"`

	// Set once the reminder worker has notified the agent
	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`

	// Relations
	Lead  Lead `json:"-"`
	Agent User `gorm:"foreignKey:AgentID" json:"-"`
}

// ValidMeetingType reports whether t is a known meeting type.
func ValidMeetingType(t string) bool {
	switch t {
	case MeetingShowing, MeetingConsultation, MeetingFollowUp, MeetingClosing, MeetingInspection:
		return true
	}
	return false
}
