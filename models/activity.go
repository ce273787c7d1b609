package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity types
const (
	ActivityCall         = "call"
	ActivityMeeting      = "meeting"
	ActivityComment      = "comment"
	ActivityStatusChange = "status_change"
	ActivityFollowUp     = "follow_up"
	ActivityFileSent     = "file_sent"
)

// Activity is an immutable timestamped event recorded against a lead and
// attributed to the acting user. Activities are append-only: no update or
// delete path exists, so the timeline doubles as an audit trail.
type Activity struct {
	gorm.Model

	LeadID uint `gorm:"not null;index" json:"lead_id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	Type        string    `gorm:"not null" json:"type"` // call, meeting, comment, status_change, follow_up, file_sent
	Description string    `gorm:"not null" json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"`

	// Minutes; meaningful for calls and meetings
	Duration *int `json:"duration,omitempty"`

	// Set when the activity was produced by scheduling a meeting
	MeetingID *uint `gorm:"index" json:"meeting_id,omitempty"`

	// Relations
	Lead Lead `json:"-"`
	User User `json:"-"`
}
