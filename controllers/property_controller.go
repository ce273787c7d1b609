package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatecrm/models"
	"estatecrm/utils"
)

type PropertyController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewPropertyController(db *gorm.DB, logger *log.Logger) *PropertyController {
	return &PropertyController{
		DB:     db,
		Logger: logger,
	}
}

// GetProperties returns the listing catalogue with optional filters.
func (pc *PropertyController) GetProperties(c *fiber.Ctx) error {
	query := pc.DB.Model(&models.Property{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if propertyType := c.Query("type"); propertyType != "" {
		query = query.Where("type = ?", propertyType)
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		query = query.Where("price <= ?", utils.ParseUint(maxPrice))
	}
	if minBedrooms := c.Query("min_bedrooms"); minBedrooms != "" {
		query = query.Where("bedrooms >= ?", utils.ParseUint(minBedrooms))
	}

	var properties []models.Property
	if err := query.Order("listed_date DESC").Find(&properties).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch properties", err)
	}

	return c.JSON(utils.SuccessResponse(properties))
}

// GetProperty returns a single listing.
func (pc *PropertyController) GetProperty(c *fiber.Ctx) error {
	var property models.Property
	if err := pc.DB.First(&property, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Property not found", nil)
	}

	return c.JSON(utils.SuccessResponse(property))
}
