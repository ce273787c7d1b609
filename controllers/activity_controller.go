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

type ActivityController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewActivityController(db *gorm.DB, logger *log.Logger) *ActivityController {
	return &ActivityController{
		DB:     db,
		Logger: logger,
	}
}

// logActivity appends an event to the timeline. Activities are append-only;
// nothing in the codebase updates or deletes one. Broadcasting to the live
// feed is the caller's job, after its transaction commits.
func logActivity(tx *gorm.DB, activity *models.Activity) error {
	return tx.Create(activity).Error
}

// GetLeadActivities returns a lead's timeline, most recent first.
func (ac *ActivityController) GetLeadActivities(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	lead, status, err := ac.visibleLead(c.Params("id"), user)
	if err != nil {
		return utils.ErrorResponse(c, status, err.Error(), nil)
	}

	query := ac.DB.Where("lead_id = ?", lead.ID)
	if activityType := c.Query("type"); activityType != "" {
		query = query.Where("type = ?", activityType)
	}

	var activities []models.Activity
	if err := query.Order("date DESC").Find(&activities).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch activities", err)
	}

	return c.JSON(utils.SuccessResponse(activities))
}

// AddComment records a free-text comment on a lead.
func (ac *ActivityController) AddComment(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	lead, status, err := ac.visibleLead(c.Params("id"), user)
	if err != nil {
		return utils.ErrorResponse(c, status, err.Error(), nil)
	}

	var input struct {
		Description string `json:"description" validate:"required,max=2000"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	activity := models.Activity{
		LeadID:      lead.ID,
		UserID:      user.ID,
		Type:        models.ActivityComment,
		Description: input.Description,
		Date:        time.Now(),
	}
	if err := logActivity(ac.DB, &activity); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to add comment", err)
	}
	BroadcastActivity(&activity, lead.AssignedTo)

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(activity))
}

// LogCall records a phone call against a lead.
func (ac *ActivityController) LogCall(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	lead, status, err := ac.visibleLead(c.Params("id"), user)
	if err != nil {
		return utils.ErrorResponse(c, status, err.Error(), nil)
	}

	var input struct {
		Description string `json:"description" validate:"omitempty,max=2000"`
		Duration    *int   `json:"duration" validate:"omitempty,gt=0"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	description := input.Description
	if description == "" {
		description = "Call made to client"
	}
	duration := input.Duration
	if duration == nil {
		duration = utils.Pointer(15)
	}

	activity := models.Activity{
		LeadID:      lead.ID,
		UserID:      user.ID,
		Type:        models.ActivityCall,
		Description: description,
		Date:        time.Now(),
		Duration:    duration,
	}
	if err := logActivity(ac.DB, &activity); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to log call", err)
	}
	BroadcastActivity(&activity, lead.AssignedTo)

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(activity))
}

// SendFile records that a document was sent to the lead.
func (ac *ActivityController) SendFile(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	lead, status, err := ac.visibleLead(c.Params("id"), user)
	if err != nil {
		return utils.ErrorResponse(c, status, err.Error(), nil)
	}

	var input struct {
		FileName    string `json:"file_name" validate:"required,max=255"`
		FileType    string `json:"file_type" validate:"required,max=50"`
		Description string `json:"description" validate:"omitempty,max=2000"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	activity := models.Activity{
		LeadID:      lead.ID,
		UserID:      user.ID,
		Type:        models.ActivityFileSent,
		Description: fmt.Sprintf("Sent %s file: %s. %s", input.FileType, input.FileName, input.Description),
		Date:        time.Now(),
	}
	if err := logActivity(ac.DB, &activity); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record file send", err)
	}
	BroadcastActivity(&activity, lead.AssignedTo)

	ac.Logger.Printf("file %q sent to lead %d by user %d", input.FileName, lead.ID, user.ID)
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(activity))
}

func (ac *ActivityController) visibleLead(idParam string, user *models.User) (*models.Lead, int, error) {
	lc := LeadController{DB: ac.DB, Logger: ac.Logger}
	return lc.findVisibleLead(idParam, user)
}
