package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"estatecrm/models"
	"estatecrm/utils"
)

type UserController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewUserController(db *gorm.DB, logger *log.Logger) *UserController {
	return &UserController{
		DB:     db,
		Logger: logger,
	}
}

// GetUsers lists every account.
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	query := uc.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Order("created_at ASC").Find(&users).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch users", err)
	}

	return c.JSON(utils.SuccessResponse(users))
}

// CreateUser adds a team member. An agent's supervisor reference must name a
// sales supervisor.
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	var input struct {
		Email        string  `json:"email" validate:"required,email"`
		Password     string  `json:"password" validate:"required,min=8"`
		Name         string  `json:"name" validate:"required,max=200"`
		Role         string  `json:"role" validate:"required,oneof=super_admin sales_supervisor sales_agent"`
		SupervisorID *uint   `json:"supervisor_id"`
		AvatarURL    *string `json:"avatar_url" validate:"omitempty,url"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var existing models.User
	if err := uc.DB.Where("LOWER(email) = LOWER(?)", input.Email).First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Email already registered", nil)
	}

	// Supervisor references only make sense on agents
	if input.Role != models.RoleSalesAgent {
		input.SupervisorID = nil
	}
	if input.SupervisorID != nil {
		if status, err := uc.checkSupervisor(*input.SupervisorID); err != nil {
			return utils.ErrorResponse(c, status, err.Error(), nil)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to hash password", err)
	}

	user := models.User{
		Email:        input.Email,
		PasswordHash: string(hashed),
		Name:         input.Name,
		Role:         input.Role,
		SupervisorID: input.SupervisorID,
		AvatarURL:    input.AvatarURL,
		IsActive:     true,
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create user", err)
	}

	uc.Logger.Printf("user %d (%s) created", user.ID, user.Role)
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(user))
}

// UpdateUser merges partial fields into an account.
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	var user models.User
	if err := uc.DB.First(&user, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found", nil)
	}

	var input struct {
		Email        *string `json:"email" validate:"omitempty,email"`
		Password     *string `json:"password" validate:"omitempty,min=8"`
		Name         *string `json:"name" validate:"omitempty,max=200"`
		Role         *string `json:"role" validate:"omitempty,oneof=super_admin sales_supervisor sales_agent"`
		SupervisorID *uint   `json:"supervisor_id"`
		AvatarURL    *string `json:"avatar_url" validate:"omitempty,url"`
		IsActive     *bool   `json:"is_active"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	updates := map[string]interface{}{}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to hash password", err)
		}
		updates["password_hash"] = string(hashed)
	}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Role != nil {
		updates["role"] = *input.Role
		if *input.Role != models.RoleSalesAgent {
			updates["supervisor_id"] = nil
		}
	}
	if input.SupervisorID != nil {
		role := user.Role
		if input.Role != nil {
			role = *input.Role
		}
		if role != models.RoleSalesAgent {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only sales agents can have a supervisor", nil)
		}
		if status, err := uc.checkSupervisor(*input.SupervisorID); err != nil {
			return utils.ErrorResponse(c, status, err.Error(), nil)
		}
		updates["supervisor_id"] = *input.SupervisorID
	}
	if input.AvatarURL != nil {
		updates["avatar_url"] = *input.AvatarURL
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if err := uc.DB.Model(&user).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update user", err)
	}

	if err := uc.DB.First(&user, user.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to reload user", err)
	}

	return c.JSON(utils.SuccessResponse(user))
}

// DeleteUser removes an account. Their leads are unassigned rather than
// deleted, and their activities stay on the timeline as audit trail.
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	actor := c.Locals("user").(*models.User)

	var user models.User
	if err := uc.DB.First(&user, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found", nil)
	}

	if user.ID == actor.ID {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "You cannot delete your own account", nil)
	}

	err := uc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Lead{}).
			Where("assigned_to = ?", user.ID).
			Update("assigned_to", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).
			Where("supervisor_id = ?", user.ID).
			Update("supervisor_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete user", err)
	}

	uc.Logger.Printf("user %d deleted by user %d", user.ID, actor.ID)
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}

func (uc *UserController) checkSupervisor(id uint) (int, error) {
	var supervisor models.User
	if err := uc.DB.First(&supervisor, id).Error; err != nil {
		return fiber.StatusBadRequest, errSupervisorNotFound
	}
	if supervisor.Role != models.RoleSalesSupervisor {
		return fiber.StatusBadRequest, errSupervisorRole
	}
	return fiber.StatusOK, nil
}
