package models

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedFixtures populates empty tables with the demo data set. Each collection
// is seeded only when its table is empty, so repeated calls are idempotent.
func SeedFixtures(db *gorm.DB) error {
	if err := seedUsers(db); err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}
	if err := seedLeads(db); err != nil {
		return fmt.Errorf("seeding leads: %w", err)
	}
	if err := seedActivities(db); err != nil {
		return fmt.Errorf("seeding activities: %w", err)
	}
	if err := seedMeetings(db); err != nil {
		return fmt.Errorf("seeding meetings: %w", err)
	}
	if err := seedProperties(db); err != nil {
		return fmt.Errorf("seeding properties: %w", err)
	}
	return nil
}

func seedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	type seedUser struct {
		Email        string
		Password     string
		Name         string
		Role         string
		SupervisorID *uint
		CreatedAt    string
	}

	supervisorID := uint(2)
	fixtures := []seedUser{
		{Email: "admin@realestate.com", Password: "admin123", Name: "Emran Hayredin", Role: RoleSuperAdmin, CreatedAt: "2024-01-01T00:00:00Z"},
		{Email: "supervisor@realestate.com", Password: "super123", Name: "Alazar Damena", Role: RoleSalesSupervisor, CreatedAt: "2024-01-15T00:00:00Z"},
		{Email: "agent1@realestate.com", Password: "agent123", Name: "Abenezer T", Role: RoleSalesAgent, SupervisorID: &supervisorID, CreatedAt: "2024-02-01T00:00:00Z"},
		{Email: "agent2@realestate.com", Password: "agent123", Name: "Emily Chen", Role: RoleSalesAgent, SupervisorID: &supervisorID, CreatedAt: "2024-02-15T00:00:00Z"},
		{Email: "agent3@realestate.com", Password: "agent123", Name: "Michael Brown", Role: RoleSalesAgent, SupervisorID: &supervisorID, CreatedAt: "2024-03-01T00:00:00Z"},
	}

	for _, f := range fixtures {
		hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := User{
			Email:        f.Email,
			PasswordHash: string(hash),
			Name:         f.Name,
			Role:         f.Role,
			SupervisorID: f.SupervisorID,
			IsActive:     true,
		}
		user.CreatedAt = mustTime(f.CreatedAt)
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedLeads(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Lead{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	fixtures := []Lead{
		{
			Name: "Robert Anderson", Email: "robert.anderson@email.com", Phone: "+1 (555) 123-4567",
			PropertyInterest: InterestBuy, BudgetMin: 500000, BudgetMax: 750000, Location: "Downtown Manhattan",
			Source: SourceWebsite, Priority: PriorityHigh, Status: LeadStatusPromising, AssignedTo: uintPtr(3),
			Notes: strPtr("Looking for a 2-bedroom apartment with city view. Very motivated buyer."),
		},
		{
			Name: "Jennifer Lopez", Email: "j.lopez@email.com", Phone: "+1 (555) 234-5678",
			PropertyInterest: InterestRent, BudgetMin: 3000, BudgetMax: 5000, Location: "Brooklyn Heights",
			Source: SourceReferral, Priority: PriorityMedium, Status: LeadStatusContacted, AssignedTo: uintPtr(3),
			Notes: strPtr("Relocating for work, needs pet-friendly apartment."),
		},
		{
			Name: "William Chen", Email: "w.chen@email.com", Phone: "+1 (555) 345-6789",
			PropertyInterest: InterestBuy, BudgetMin: 1000000, BudgetMax: 1500000, Location: "Upper East Side",
			Source: SourceCall, Priority: PriorityHigh, Status: LeadStatusNew, AssignedTo: uintPtr(4),
			Notes: strPtr("Investment property, cash buyer."),
		},
		{
			Name: "Maria Garcia", Email: "maria.g@email.com", Phone: "+1 (555) 456-7890",
			PropertyInterest: InterestBuy, BudgetMin: 800000, BudgetMax: 1200000, Location: "SoHo",
			Source: SourceWebsite, Priority: PriorityHigh, Status: LeadStatusConverted, AssignedTo: uintPtr(4),
			Notes: strPtr("Successfully closed! Purchased 3BR loft."),
		},
		{
			Name: "David Kim", Email: "david.kim@email.com", Phone: "+1 (555) 567-8901",
			PropertyInterest: InterestRent, BudgetMin: 2000, BudgetMax: 3500, Location: "Williamsburg",
			Source: SourceReferral, Priority: PriorityLow, Status: LeadStatusFuture, AssignedTo: uintPtr(5),
			Notes: strPtr("Not ready to move for 6 months, follow up in September."),
		},
		{
			Name: "Amanda White", Email: "a.white@email.com", Phone: "+1 (555) 678-9012",
			PropertyInterest: InterestBuy, BudgetMin: 600000, BudgetMax: 900000, Location: "Chelsea",
			Source: SourceWebsite, Priority: PriorityMedium, Status: LeadStatusLost, AssignedTo: uintPtr(5),
			Notes: strPtr("Found property with another agency."),
		},
		{
			Name: "Thomas Johnson", Email: "t.johnson@email.com", Phone: "+1 (555) 789-0123",
			PropertyInterest: InterestBuy, BudgetMin: 2000000, BudgetMax: 3000000, Location: "Tribeca",
			Source: SourceCall, Priority: PriorityHigh, Status: LeadStatusPromising, AssignedTo: uintPtr(3),
			Notes: strPtr("Looking for luxury penthouse with terrace."),
		},
		{
			Name: "Lisa Martinez", Email: "lisa.m@email.com", Phone: "+1 (555) 890-1234",
			PropertyInterest: InterestRent, BudgetMin: 4000, BudgetMax: 6000, Location: "Financial District",
			Source: SourceWebsite, Priority: PriorityMedium, Status: LeadStatusContacted, AssignedTo: uintPtr(4),
			Notes: strPtr("Corporate relocation, needs furnished apartment."),
		},
	}

	created := []string{
		"2024-06-01T10:00:00Z", "2024-06-05T09:00:00Z", "2024-06-18T15:00:00Z", "2024-05-01T10:00:00Z",
		"2024-06-10T08:00:00Z", "2024-05-15T11:00:00Z", "2024-06-12T14:00:00Z", "2024-06-15T10:00:00Z",
	}
	updated := []string{
		"2024-06-15T14:30:00Z", "2024-06-12T11:00:00Z", "2024-06-18T15:00:00Z", "2024-06-10T16:00:00Z",
		"2024-06-14T10:00:00Z", "2024-06-08T09:00:00Z", "2024-06-17T16:00:00Z", "2024-06-16T11:00:00Z",
	}

	for i, lead := range fixtures {
		lead.CreatedAt = mustTime(created[i])
		lead.UpdatedAt = mustTime(updated[i])
		if err := db.Create(&lead).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedActivities(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Activity{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	fixtures := []Activity{
		{LeadID: 1, UserID: 3, Type: ActivityCall, Description: "Initial discovery call - discussed requirements and budget", Date: mustTime("2024-06-02T10:00:00Z"), Duration: intPtr(25)},
		{LeadID: 1, UserID: 3, Type: ActivityMeeting, Description: "Property viewing at 425 Park Avenue", Date: mustTime("2024-06-08T14:00:00Z"), Duration: intPtr(60)},
		{LeadID: 1, UserID: 3, Type: ActivityStatusChange, Description: "Status changed from contacted to promising", Date: mustTime("2024-06-08T16:00:00Z")},
		{LeadID: 2, UserID: 3, Type: ActivityCall, Description: "Follow-up call to discuss available properties", Date: mustTime("2024-06-10T11:00:00Z"), Duration: intPtr(15)},
		{LeadID: 3, UserID: 4, Type: ActivityComment, Description: "Lead submitted inquiry through website contact form", Date: mustTime("2024-06-18T15:00:00Z")},
		{LeadID: 4, UserID: 4, Type: ActivityMeeting, Description: "Final walkthrough and contract signing", Date: mustTime("2024-06-10T10:00:00Z"), Duration: intPtr(120)},
		{LeadID: 4, UserID: 4, Type: ActivityStatusChange, Description: "Deal closed! Status changed to converted", Date: mustTime("2024-06-10T16:00:00Z")},
		{LeadID: 7, UserID: 3, Type: ActivityCall, Description: "Introduced available luxury properties in Tribeca", Date: mustTime("2024-06-13T10:00:00Z"), Duration: intPtr(30)},
		{LeadID: 7, UserID: 3, Type: ActivityMeeting, Description: "Showed 3 penthouses, client very interested in One Tribeca Park", Date: mustTime("2024-06-17T14:00:00Z"), Duration: intPtr(180)},
		{LeadID: 6, UserID: 5, Type: ActivityStatusChange, Description: "Marked as lost - client went with competitor", Date: mustTime("2024-06-08T09:00:00Z")},
	}

	for _, activity := range fixtures {
		if err := db.Create(&activity).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedMeetings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Meeting{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	fixtures := []Meeting{
		{
			Title: "Property Showing - Downtown Estate", LeadID: 1, LeadName: "Robert Anderson",
			PropertyID: uintPtr(1), PropertyAddress: strPtr("African Union Headquarters"),
			Date: "2024-06-20", Time: "10:00", Duration: 60, Type: MeetingShowing, Status: MeetingScheduled,
			AgentID: 3, AgentName: "Abenezer T",
		},
		{
			Title: "Contract Review", LeadID: 4, LeadName: "Maria Garcia",
			PropertyID: uintPtr(2), PropertyAddress: strPtr("African Union Headquarters"),
			Date: "2024-06-20", Time: "14:00", Duration: 90, Type: MeetingClosing, Status: MeetingScheduled,
			AgentID: 4, AgentName: "Emily Chen",
		},
		{
			Title: "Initial Consultation", LeadID: 3, LeadName: "William Chen",
			Date: "2024-06-21", Time: "11:00", Duration: 45, Type: MeetingConsultation, Status: MeetingScheduled,
			AgentID: 4, AgentName: "Emily Chen",
		},
		{
			Title: "Follow-up Call", LeadID: 5, LeadName: "David Kim",
			Date: "2024-06-22", Time: "15:30", Duration: 30, Type: MeetingFollowUp, Status: MeetingScheduled,
			AgentID: 5, AgentName: "Michael Brown",
		},
	}

	for _, meeting := range fixtures {
		if err := db.Create(&meeting).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedProperties(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Property{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	fixtures := []Property{
		{
			Title: "Abay Homes Downtown", Address: "African Union Headquarters", City: "Addis Ababa", State: "AA", ZipCode: "1000",
			Price: 2450000, Type: PropertyHouse, Bedrooms: 5, Bathrooms: 4, Sqft: 4200, YearBuilt: 2019,
			Status: ListingActive, MLSNumber: "MLS-2024-001",
			Description: "Stunning modern estate with panoramic city views",
			ImageURL:    "https://images.unsplash.com/photo-1613490493576-7fde63acd811?w=800",
			Features:    "Pool,Smart Home,Wine Cellar,Home Theater", ListedDate: "2024-01-10", AgentName: "Sarah Johnson",
		},
		{
			Title: "Abay Homes Complex", Address: "African Union Headquarters", City: "Addis Ababa", State: "AA", ZipCode: "1000",
			Price: 1850000, Type: PropertyCondo, Bedrooms: 3, Bathrooms: 3, Sqft: 2800, YearBuilt: 2021,
			Status: ListingPending, MLSNumber: "MLS-2024-002",
			Description: "Ultra-modern penthouse with 360-degree views",
			ImageURL:    "https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=800",
			Features:    "Rooftop Access,Concierge,Gym,Valet Parking", ListedDate: "2024-01-05", AgentName: "Sarah Johnson",
		},
		{
			Title: "Abay Homes Complex2", Address: "African Union Headquarters", City: "Addis Ababa", State: "AA", ZipCode: "1000",
			Price: 895000, Type: PropertyHouse, Bedrooms: 4, Bathrooms: 2, Sqft: 2400, YearBuilt: 1925,
			Status: ListingActive, MLSNumber: "MLS-2024-003",
			Description: "Beautifully restored craftsman with original details",
			ImageURL:    "https://images.unsplash.com/photo-1568605114967-8130f3a36994?w=800",
			Features:    "Original Woodwork,Garden,Updated Kitchen,Detached Garage", ListedDate: "2024-01-15", AgentName: "Maria Garcia",
		},
		{
			Title: "Abay Homes Complex3", Address: "African Union Headquarters", City: "Addis Ababa", State: "AA", ZipCode: "1000",
			Price: 1250000, Type: PropertyCondo, Bedrooms: 2, Bathrooms: 2, Sqft: 1600, YearBuilt: 2018,
			Status: ListingActive, MLSNumber: "MLS-2024-004",
			Description: "Steps from the beach with stunning ocean views",
			ImageURL:    "https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800",
			Features:    "Ocean View,Balcony,Parking,Fitness Center", ListedDate: "2024-01-12", AgentName: "James Wilson",
		},
	}

	for _, property := range fixtures {
		if err := db.Create(&property).Error; err != nil {
			return err
		}
	}
	return nil
}

func mustTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(fmt.Sprintf("bad fixture timestamp %q: %v", value, err))
	}
	return t
}

func uintPtr(v uint) *uint { return &v }
func strPtr(v string) *string { return &v }
func intPtr(v int) *int { return &v }
