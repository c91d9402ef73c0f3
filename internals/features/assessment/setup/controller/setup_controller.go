package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"roadmapguide_backend/internals/features/assessment/setup/dto"
	"roadmapguide_backend/internals/features/assessment/setup/model"
	helper "roadmapguide_backend/internals/helpers"
)

type SetupController struct {
	DB *gorm.DB
}

func NewSetupController(db *gorm.DB) *SetupController {
	return &SetupController{DB: db}
}

// FindLatestSetup returns the most recent setup for a user, or
// gorm.ErrRecordNotFound when the user has not completed the setup step.
func FindLatestSetup(db *gorm.DB, userID uuid.UUID) (*model.SetupModel, error) {
	var setup model.SetupModel
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&setup).Error; err != nil {
		return nil, err
	}
	return &setup, nil
}

// POST /api/u/setup: create the engagement record that gates everything else
func (ctrl *SetupController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateSetupRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate(req); err != nil {
		return helper.ValidationError(c, err)
	}

	setup := req.ToModel(userID)
	if setup.ID == uuid.Nil {
		setup.ID = uuid.New()
	}
	if err := ctrl.DB.Create(&setup).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save setup")
	}

	return helper.JsonCreated(c, "Setup saved", setup)
}

// GET /api/u/setup/latest
func (ctrl *SetupController) Latest(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	setup, err := FindLatestSetup(ctrl.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Setup not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load setup")
	}

	return helper.JsonOK(c, "ok", setup)
}
