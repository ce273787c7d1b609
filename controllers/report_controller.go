package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatecrm/models"
	"estatecrm/utils"
)

type ReportController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewReportController(db *gorm.DB, logger *log.Logger) *ReportController {
	return &ReportController{
		DB:     db,
		Logger: logger,
	}
}

type AgentPerformance struct {
	AgentID        uint    `json:"agent_id"`
	AgentName      string  `json:"agent_name"`
	TotalLeads     int64   `json:"total_leads"`
	Converted      int64   `json:"converted"`
	Promising      int64   `json:"promising"`
	Calls          int64   `json:"calls"`
	Meetings       int64   `json:"meetings"`
	ConversionRate float64 `json:"conversion_rate"`
}

type TeamTotals struct {
	TotalLeads     int64   `json:"total_leads"`
	TotalConverted int64   `json:"total_converted"`
	TotalCalls     int64   `json:"total_calls"`
	TotalMeetings  int64   `json:"total_meetings"`
	ConversionRate float64 `json:"conversion_rate"`
}

type CountItem struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type WeeklyActivity struct {
	Calls    int64 `json:"calls"`
	Meetings int64 `json:"meetings"`
	Comments int64 `json:"comments"`
}

type ReportSummary struct {
	TotalLeads     int64              `json:"total_leads"`
	ConversionRate float64            `json:"conversion_rate"`
	ActiveAgents   int64              `json:"active_agents"`
	Sources        []CountItem        `json:"sources"`
	Interest       []CountItem        `json:"interest"`
	Agents         []AgentPerformance `json:"agents"`
	LastWeek       WeeklyActivity     `json:"last_week"`
}

// GetAgentPerformance returns per-agent pipeline and activity numbers plus
// team totals. Recomputed from the current snapshot on every request.
func (rc *ReportController) GetAgentPerformance(c *fiber.Ctx) error {
	agents, err := rc.agentPerformance()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute performance", err)
	}

	var totals TeamTotals
	if err := rc.DB.Model(&models.Lead{}).Count(&totals.TotalLeads).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute performance", err)
	}
	if err := rc.DB.Model(&models.Lead{}).Where("status = ?", models.LeadStatusConverted).Count(&totals.TotalConverted).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute performance", err)
	}
	if err := rc.DB.Model(&models.Activity{}).Where("type = ?", models.ActivityCall).Count(&totals.TotalCalls).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute performance", err)
	}
	if err := rc.DB.Model(&models.Activity{}).Where("type = ?", models.ActivityMeeting).Count(&totals.TotalMeetings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute performance", err)
	}
	totals.ConversionRate = utils.ConversionRate(totals.TotalConverted, totals.TotalLeads)

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"agents": agents,
		"totals": totals,
	}))
}

// GetReportSummary returns the organization-wide report: source distribution,
// interest split, per-agent conversions and the last week of activity.
func (rc *ReportController) GetReportSummary(c *fiber.Ctx) error {
	var summary ReportSummary

	if err := rc.DB.Model(&models.Lead{}).Count(&summary.TotalLeads).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute report", err)
	}

	var converted int64
	if err := rc.DB.Model(&models.Lead{}).Where("status = ?", models.LeadStatusConverted).Count(&converted).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute report", err)
	}
	summary.ConversionRate = utils.ConversionRate(converted, summary.TotalLeads)

	if err := rc.DB.Model(&models.User{}).Where("role = ?", models.RoleSalesAgent).Count(&summary.ActiveAgents).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute report", err)
	}

	sources, err := rc.groupLeads("source")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute report", err)
	}
	summary.Sources = sources

	interest, err := rc.groupLeads("property_interest")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute report", err)
	}
	summary.Interest = interest

	agents, err := rc.agentPerformance()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute report", err)
	}
	summary.Agents = agents

	weekAgo := time.Now().AddDate(0, 0, -7)
	lastWeek := rc.DB.Model(&models.Activity{}).Where("date >= ?", weekAgo)
	if err := lastWeek.Session(&gorm.Session{}).Where("type = ?", models.ActivityCall).Count(&summary.LastWeek.Calls).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute report", err)
	}
	if err := lastWeek.Session(&gorm.Session{}).Where("type = ?", models.ActivityMeeting).Count(&summary.LastWeek.Meetings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute report", err)
	}
	if err := lastWeek.Session(&gorm.Session{}).Where("type = ?", models.ActivityComment).Count(&summary.LastWeek.Comments).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute report", err)
	}

	return c.JSON(utils.SuccessResponse(summary))
}

func (rc *ReportController) agentPerformance() ([]AgentPerformance, error) {
	var agents []models.User
	if err := rc.DB.Where("role = ?", models.RoleSalesAgent).Order("id ASC").Find(&agents).Error; err != nil {
		return nil, err
	}

	performance := make([]AgentPerformance, 0, len(agents))
	for _, agent := range agents {
		entry := AgentPerformance{
			AgentID:   agent.ID,
			AgentName: agent.Name,
		}

		leads := rc.DB.Model(&models.Lead{}).Where("assigned_to = ?", agent.ID)
		if err := leads.Session(&gorm.Session{}).Count(&entry.TotalLeads).Error; err != nil {
			return nil, err
		}
		if err := leads.Session(&gorm.Session{}).Where("status = ?", models.LeadStatusConverted).Count(&entry.Converted).Error; err != nil {
			return nil, err
		}
		if err := leads.Session(&gorm.Session{}).Where("status = ?", models.LeadStatusPromising).Count(&entry.Promising).Error; err != nil {
			return nil, err
		}

		acts := rc.DB.Model(&models.Activity{}).Where("user_id = ?", agent.ID)
		if err := acts.Session(&gorm.Session{}).Where("type = ?", models.ActivityCall).Count(&entry.Calls).Error; err != nil {
			return nil, err
		}
		if err := acts.Session(&gorm.Session{}).Where("type = ?", models.ActivityMeeting).Count(&entry.Meetings).Error; err != nil {
			return nil, err
		}

		entry.ConversionRate = utils.ConversionRate(entry.Converted, entry.TotalLeads)
		performance = append(performance, entry)
	}

	return performance, nil
}

func (rc *ReportController) groupLeads(column string) ([]CountItem, error) {
	type row struct {
		Name  string
		Count int64
	}
	var rows []row
	if err := rc.DB.Model(&models.Lead{}).
		Select(column + " AS name, COUNT(*) AS count").
		Group(column).
		Order("count DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]CountItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, CountItem{Name: r.Name, Count: r.Count})
	}
	return items, nil
}
