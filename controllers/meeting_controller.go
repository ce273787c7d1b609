package controller

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatecrm/models"
	"estatecrm/utils"
)

type MeetingController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewMeetingController(db *gorm.DB, logger *log.Logger) *MeetingController {
	return &MeetingController{
		DB:     db,
		Logger: logger,
	}
}

// CreateMeeting schedules an appointment for a lead. The lead name is
// resolved from the database at creation time, and a meeting activity is
// appended to the lead's timeline in the same transaction.
func (mc *MeetingController) CreateMeeting(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		Title           string  `json:"title" validate:"required,max=200"`
		LeadID          uint    `json:"lead_id" validate:"required"`
		PropertyID      *uint   `json:"property_id"`
		PropertyAddress *string `json:"property_address" validate:"omitempty,max=300"`
		Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
		Time            string  `json:"time" validate:"required,datetime=15:04"`
		Duration        int     `json:"duration" validate:"required,gt=0"`
		Type            string  `json:"type" validate:"required,oneof=showing consultation follow_up closing inspection"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	lc := LeadController{DB: mc.DB, Logger: mc.Logger}
	lead, status, err := lc.findVisibleLead(fmt.Sprint(input.LeadID), user)
	if err != nil {
		return utils.ErrorResponse(c, status, err.Error(), nil)
	}

	if input.PropertyID != nil {
		var property models.Property
		if err := mc.DB.First(&property, *input.PropertyID).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Property not found", nil)
		}
		if input.PropertyAddress == nil {
			input.PropertyAddress = utils.Pointer(property.Address)
		}
	}

	meeting := models.Meeting{
		Title:           input.Title,
		LeadID:          lead.ID,
		LeadName:        lead.Name,
		PropertyID:      input.PropertyID,
		PropertyAddress: input.PropertyAddress,
		Date:            input.Date,
		Time:            input.Time,
		Duration:        input.Duration,
		Type:            input.Type,
		Status:          models.MeetingScheduled,
		AgentID:         user.ID,
		AgentName:       user.Name,
	}

	activity := models.Activity{
		LeadID:      lead.ID,
		UserID:      user.ID,
		Type:        models.ActivityMeeting,
		Description: fmt.Sprintf("Scheduled %s meeting: %s", input.Type, input.Title),
		Date:        time.Now(),
	}
	err = mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&meeting).Error; err != nil {
			return err
		}
		activity.Duration = &meeting.Duration
		activity.MeetingID = &meeting.ID
		return logActivity(tx, &activity)
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to schedule meeting", err)
	}
	BroadcastActivity(&activity, lead.AssignedTo)

	mc.Logger.Printf("meeting %d scheduled for lead %d by user %d", meeting.ID, lead.ID, user.ID)
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(meeting))
}

// GetMeetings returns meetings for the calendar view. Agents see only their
// own schedule; managers see the whole team's.
func (mc *MeetingController) GetMeetings(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	query := mc.DB.Model(&models.Meeting{})
	if !user.IsManager() {
		query = query.Where("agent_id = ?", user.ID)
	}

	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}
	if leadID := c.Query("lead_id"); leadID != "" {
		query = query.Where("lead_id = ?", utils.ParseUint(leadID))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var meetings []models.Meeting
	if err := query.Order("date ASC, time ASC").Find(&meetings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch meetings", err)
	}

	return c.JSON(utils.SuccessResponse(meetings))
}

// UpdateMeeting merges partial fields into a meeting.
func (mc *MeetingController) UpdateMeeting(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var meeting models.Meeting
	if err := mc.DB.First(&meeting, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Meeting not found", nil)
	}

	if !user.IsManager() && meeting.AgentID != user.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "You do not have access to this meeting", nil)
	}

	var input struct {
		Title    *string `json:"title" validate:"omitempty,max=200"`
		Date     *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
		Time     *string `json:"time" validate:"omitempty,datetime=15:04"`
		Duration *int    `json:"duration" validate:"omitempty,gt=0"`
		Type     *string `json:"type" validate:"omitempty,oneof=showing consultation follow_up closing inspection"`
		Status   *string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Date != nil {
		updates["date"] = *input.Date
	}
	if input.Time != nil {
		updates["time"] = *input.Time
	}
	if input.Duration != nil {
		updates["duration"] = *input.Duration
	}
	if input.Type != nil {
		updates["type"] = *input.Type
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}

	if err := mc.DB.Model(&meeting).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update meeting", err)
	}

	if err := mc.DB.First(&meeting, meeting.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to reload meeting", err)
	}

	return c.JSON(utils.SuccessResponse(meeting))
}

// DeleteMeeting removes a scheduled meeting. The lead's activity timeline is
// left untouched; the audit trail outlives the appointment.
func (mc *MeetingController) DeleteMeeting(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var meeting models.Meeting
	if err := mc.DB.First(&meeting, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Meeting not found", nil)
	}

	if !user.IsManager() && meeting.AgentID != user.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "You do not have access to this meeting", nil)
	}

	if err := mc.DB.Delete(&meeting).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete meeting", err)
	}

	return c.JSON(fiber.Map{
		"message": "Meeting deleted successfully",
	})
}
