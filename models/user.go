package models

import (
	"gorm.io/gorm"
)

// User roles
const (
	RoleSuperAdmin      = "super_admin"
	RoleSalesSupervisor = "sales_supervisor"
	RoleSalesAgent      = "sales_agent"
)

// User represents a team member account in the system
type User struct {
	gorm.Model

	// Authentication fields
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Profile information
	Name      string  `gorm:"not null" json:"name"`
	Role      string  `gorm:"not null;index;default:'sales_agent'" json:"role"` // super_admin, sales_supervisor, sales_agent
	AvatarURL *string `json:"avatar_url,omitempty"`

	// Only meaningful for sales agents; must reference a sales_supervisor
	SupervisorID *uint `gorm:"index" json:"supervisor_id,omitempty"`

	// Account status
	IsActive bool `gorm:"default:true" json:"is_active"`

	// Relations
	AssignedLeads []Lead     `gorm:"foreignKey:AssignedTo" json:"assigned_leads,omitempty"`
	Activities    []Activity `gorm:"foreignKey:UserID" json:"activities,omitempty"`
	Meetings      []Meeting  `gorm:"foreignKey:AgentID" json:"meetings,omitempty"`
}

// IsManager reports whether the user may see the full lead collection.
func (u *User) IsManager() bool {
	return u.Role == RoleSuperAdmin || u.Role == RoleSalesSupervisor
}

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleSalesSupervisor, RoleSalesAgent:
		return true
	}
	return false
}
