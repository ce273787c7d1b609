package controller

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatecrm/models"
	"estatecrm/utils"
)

type LeadController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewLeadController(db *gorm.DB, logger *log.Logger) *LeadController {
	return &LeadController{
		DB:     db,
		Logger: logger,
	}
}

// CreateLead creates a new lead and logs its creation on the activity
// timeline.
func (lc *LeadController) CreateLead(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		Name             string  `json:"name" validate:"required,max=200"`
		Email            string  `json:"email" validate:"required,email"`
		Phone            string  `json:"phone" validate:"required,max=40"`
		PropertyInterest string  `json:"property_interest" validate:"required,oneof=buy rent"`
		BudgetMin        int64   `json:"budget_min" validate:"gte=0"`
		BudgetMax        int64   `json:"budget_max" validate:"gtefield=BudgetMin"`
		Location         string  `json:"location" validate:"required,max=200"`
		Source           string  `json:"source" validate:"required,oneof=website referral call social other"`
		Priority         string  `json:"priority" validate:"required,oneof=low medium high"`
		Status           string  `json:"status" validate:"omitempty,oneof=new contacted promising future lost converted"`
		AssignedTo       *uint   `json:"assigned_to"`
		Notes            *string `json:"notes"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if err := utils.ValidateEmailFormat(input.Email); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid lead email address", err)
	}

	if input.AssignedTo != nil {
		var agent models.User
		if err := lc.DB.First(&agent, *input.AssignedTo).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Assigned agent not found", nil)
		}
	}

	status := input.Status
	if status == "" {
		status = models.LeadStatusNew
	}

	lead := models.Lead{
		Name:             input.Name,
		Email:            strings.ToLower(input.Email),
		Phone:            input.Phone,
		PropertyInterest: input.PropertyInterest,
		BudgetMin:        input.BudgetMin,
		BudgetMax:        input.BudgetMax,
		Location:         input.Location,
		Source:           input.Source,
		Priority:         input.Priority,
		Status:           status,
		AssignedTo:       input.AssignedTo,
		Notes:            input.Notes,
	}

	activity := models.Activity{
		UserID:      user.ID,
		Type:        models.ActivityComment,
		Description: "Lead created",
		Date:        time.Now(),
	}
	err := lc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&lead).Error; err != nil {
			return err
		}
		activity.LeadID = lead.ID
		return logActivity(tx, &activity)
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create lead", err)
	}
	BroadcastActivity(&activity, lead.AssignedTo)

	lc.Logger.Printf("lead %d created by user %d", lead.ID, user.ID)
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(lead))
}

// GetLeads returns the lead collection scoped by role: agents see only their
// assigned leads, supervisors and admins see everything.
func (lc *LeadController) GetLeads(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	query := lc.DB.Model(&models.Lead{})
	if !user.IsManager() {
		query = query.Where("assigned_to = ?", user.ID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if priority := c.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if assignedTo := c.Query("assigned_to"); assignedTo != "" && user.IsManager() {
		query = query.Where("assigned_to = ?", utils.ParseUint(assignedTo))
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(location) LIKE ?", pattern, pattern, pattern)
	}

	var leads []models.Lead
	if err := query.Order("updated_at DESC").Find(&leads).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch leads", err)
	}

	return c.JSON(utils.SuccessResponse(leads))
}

// GetLead returns one lead. Agents may only open leads assigned to them.
func (lc *LeadController) GetLead(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	lead, status, err := lc.findVisibleLead(c.Params("id"), user)
	if err != nil {
		return utils.ErrorResponse(c, status, err.Error(), nil)
	}

	return c.JSON(utils.SuccessResponse(lead))
}

// UpdateLead merges the provided fields into an existing lead. The updated
// timestamp is refreshed on every mutation regardless of which fields
// changed. Renames are propagated to the denormalized lead name on meetings.
func (lc *LeadController) UpdateLead(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	lead, status, err := lc.findVisibleLead(c.Params("id"), user)
	if err != nil {
		return utils.ErrorResponse(c, status, err.Error(), nil)
	}

	var input struct {
		Name             *string `json:"name" validate:"omitempty,max=200"`
		Email            *string `json:"email" validate:"omitempty,email"`
		Phone            *string `json:"phone" validate:"omitempty,max=40"`
		PropertyInterest *string `json:"property_interest" validate:"omitempty,oneof=buy rent"`
		BudgetMin        *int64  `json:"budget_min" validate:"omitempty,gte=0"`
		BudgetMax        *int64  `json:"budget_max"`
		Location         *string `json:"location" validate:"omitempty,max=200"`
		Source           *string `json:"source" validate:"omitempty,oneof=website referral call social other"`
		Priority         *string `json:"priority" validate:"omitempty,oneof=low medium high"`
		AssignedTo       *uint   `json:"assigned_to"`
		Notes            *string `json:"notes"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Email != nil {
		updates["email"] = strings.ToLower(*input.Email)
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.PropertyInterest != nil {
		updates["property_interest"] = *input.PropertyInterest
	}
	if input.BudgetMin != nil {
		updates["budget_min"] = *input.BudgetMin
	}
	if input.BudgetMax != nil {
		updates["budget_max"] = *input.BudgetMax
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.Source != nil {
		updates["source"] = *input.Source
	}
	if input.Priority != nil {
		updates["priority"] = *input.Priority
	}
	if input.AssignedTo != nil {
		var agent models.User
		if err := lc.DB.First(&agent, *input.AssignedTo).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Assigned agent not found", nil)
		}
		updates["assigned_to"] = *input.AssignedTo
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	// Budget range must stay ordered after the merge
	budgetMin := lead.BudgetMin
	budgetMax := lead.BudgetMax
	if input.BudgetMin != nil {
		budgetMin = *input.BudgetMin
	}
	if input.BudgetMax != nil {
		budgetMax = *input.BudgetMax
	}
	if budgetMin > budgetMax {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "budget_min must not exceed budget_max", nil)
	}

	// The updated timestamp is refreshed even for no-op payloads
	updates["updated_at"] = time.Now()

	err = lc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&lead).Updates(updates).Error; err != nil {
			return err
		}
		if input.Name != nil {
			// Reconcile the denormalized lead name on meetings
			if err := tx.Model(&models.Meeting{}).
				Where("lead_id = ?", lead.ID).
				Update("lead_name", *input.Name).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update lead", err)
	}

	// Return the merged record, not the caller's view of it
	if err := lc.DB.First(lead, lead.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to reload lead", err)
	}

	return c.JSON(utils.SuccessResponse(lead))
}

// UpdateLeadStatus moves a lead to another pipeline status. Transitions are
// intentionally unrestricted, but every one of them appends a status_change
// activity recording the prior and new status.
func (lc *LeadController) UpdateLeadStatus(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	lead, status, err := lc.findVisibleLead(c.Params("id"), user)
	if err != nil {
		return utils.ErrorResponse(c, status, err.Error(), nil)
	}

	var input struct {
		Status string `json:"status" validate:"required,oneof=new contacted promising future lost converted"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	previous := lead.Status

	activity := models.Activity{
		LeadID:      lead.ID,
		UserID:      user.ID,
		Type:        models.ActivityStatusChange,
		Description: fmt.Sprintf("Status changed from %s to %s", previous, input.Status),
		Date:        time.Now(),
	}
	err = lc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&lead).Updates(map[string]interface{}{
			"status":     input.Status,
			"updated_at": time.Now(),
		}).Error; err != nil {
			return err
		}
		return logActivity(tx, &activity)
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update status", err)
	}
	BroadcastActivity(&activity, lead.AssignedTo)

	if err := lc.DB.First(lead, lead.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to reload lead", err)
	}

	lc.Logger.Printf("lead %d status %s -> %s by user %d", lead.ID, previous, input.Status, user.ID)
	return c.JSON(utils.SuccessResponse(lead))
}

// DeleteLead removes a lead along with its activities and meetings.
func (lc *LeadController) DeleteLead(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var lead models.Lead
	if err := lc.DB.First(&lead, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", nil)
	}

	err := lc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lead_id = ?", lead.ID).Delete(&models.Activity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lead_id = ?", lead.ID).Delete(&models.Meeting{}).Error; err != nil {
			return err
		}
		return tx.Delete(&lead).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete lead", err)
	}

	lc.Logger.Printf("lead %d deleted by user %d", lead.ID, user.ID)
	return c.JSON(fiber.Map{
		"message": "Lead deleted successfully",
	})
}

// findVisibleLead loads a lead and checks the caller may see it. The error is
// suitable for the response body, paired with the returned HTTP status.
func (lc *LeadController) findVisibleLead(idParam string, user *models.User) (*models.Lead, int, error) {
	var lead models.Lead
	if err := lc.DB.First(&lead, utils.ParseUint(idParam)).Error; err != nil {
		return nil, fiber.StatusNotFound, errors.New("Lead not found")
	}

	if !user.IsManager() {
		if lead.AssignedTo == nil || *lead.AssignedTo != user.ID {
			return nil, fiber.StatusForbidden, errors.New("You do not have access to this lead")
		}
	}

	return &lead, fiber.StatusOK, nil
}
