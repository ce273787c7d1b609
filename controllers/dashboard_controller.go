package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatecrm/models"
	"estatecrm/utils"
)

type DashboardController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewDashboardController(db *gorm.DB, logger *log.Logger) *DashboardController {
	return &DashboardController{
		DB:     db,
		Logger: logger,
	}
}

type DashboardStats struct {
	TotalLeads     int64   `json:"total_leads"`
	NewLeads       int64   `json:"new_leads"`
	ContactedLeads int64   `json:"contacted_leads"`
	PromisingLeads int64   `json:"promising_leads"`
	FutureLeads    int64   `json:"future_leads"`
	ConvertedLeads int64   `json:"converted_leads"`
	LostLeads      int64   `json:"lost_leads"`
	ConversionRate float64 `json:"conversion_rate"`
}

// GetDashboardStats returns pipeline counts for the caller's scope: agents
// get their own numbers, managers get the whole team's. Everything is
// recomputed from the current snapshot on each request.
func (dc *DashboardController) GetDashboardStats(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	scope := func() *gorm.DB {
		q := dc.DB.Model(&models.Lead{})
		if !user.IsManager() {
			q = q.Where("assigned_to = ?", user.ID)
		}
		return q
	}

	var stats DashboardStats
	if err := scope().Count(&stats.TotalLeads).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute stats", err)
	}

	byStatus := map[string]*int64{
		models.LeadStatusNew:       &stats.NewLeads,
		models.LeadStatusContacted: &stats.ContactedLeads,
		models.LeadStatusPromising: &stats.PromisingLeads,
		models.LeadStatusFuture:    &stats.FutureLeads,
		models.LeadStatusConverted: &stats.ConvertedLeads,
		models.LeadStatusLost:      &stats.LostLeads,
	}
	for status, target := range byStatus {
		if err := scope().Where("status = ?", status).Count(target).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute stats", err)
		}
	}

	stats.ConversionRate = utils.ConversionRate(stats.ConvertedLeads, stats.TotalLeads)

	return c.JSON(utils.SuccessResponse(stats))
}

// GetRecentLeads returns the caller's most recently touched leads.
func (dc *DashboardController) GetRecentLeads(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	query := dc.DB.Model(&models.Lead{})
	if !user.IsManager() {
		query = query.Where("assigned_to = ?", user.ID)
	}

	var leads []models.Lead
	if err := query.Order("updated_at DESC").Limit(5).Find(&leads).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch recent leads", err)
	}

	return c.JSON(utils.SuccessResponse(leads))
}

// GetRecentActivities returns the latest timeline events visible to the
// caller, most recent first.
func (dc *DashboardController) GetRecentActivities(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	// Agents are scoped by lead visibility, not by who authored the entry:
	// a supervisor's status change on their lead still shows up, while their
	// own old entries on reassigned leads do not.
	query := dc.DB.Model(&models.Activity{})
	if !user.IsManager() {
		query = query.Where("lead_id IN (?)",
			dc.DB.Model(&models.Lead{}).Select("id").Where("assigned_to = ?", user.ID))
	}

	var activities []models.Activity
	if err := query.Order("date DESC").Limit(10).Find(&activities).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch recent activities", err)
	}

	return c.JSON(utils.SuccessResponse(activities))
}
