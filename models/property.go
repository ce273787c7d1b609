package models

import (
	"gorm.io/gorm"
)

// Property types
const (
	PropertyHouse      = "house"
	PropertyApartment  = "apartment"
	PropertyCondo      = "condo"
	PropertyTownhouse  = "townhouse"
	PropertyLand       = "land"
	PropertyCommercial = "commercial"
)

// Property listing statuses
const (
	ListingActive    = "active"
	ListingPending   = "pending"
	ListingSold      = "sold"
	ListingOffMarket = "off_market"
)

// Property represents a listing browsable by the sales team
type Property struct {
	gorm.Model

	Title   string `gorm:"not null" json:"title"`
	Address string `gorm:"not null" json:"address"`
	City    string `gorm:"not null" json:"city"`
	State   string `gorm:"not null" json:"state"`
	ZipCode string `gorm:"not null" json:"zip_code"`

	Price     int64  `gorm:"not null" json:"price"`
	Type      string `gorm:"not null;index" json:"type"` // house, apartment, condo, townhouse, land, commercial
	Bedrooms  int    `gorm:"not null" json:"bedrooms"`
	Bathrooms int    `gorm:"not null" json:"bathrooms"`
	Sqft      int    `gorm:"not null" json:"sqft"`
	YearBuilt int    `gorm:"not null" json:"year_built"`

	Status    string `gorm:"not null;index;default:'active'" json:"status"` // active, pending, sold, off_market
	MLSNumber string `gorm:"column:mls_number" json:"mls_number"`

	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Features    string `json:"features"` // comma-separated feature list
	ListedDate  string `json:"listed_date"`
	AgentName   string `json:"agent_name"`
}
