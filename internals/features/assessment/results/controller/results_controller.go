package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"roadmapguide_backend/internals/features/assessment/results/service"
	setupController "roadmapguide_backend/internals/features/assessment/setup/controller"
	helper "roadmapguide_backend/internals/helpers"
)

type ResultsController struct {
	DB *gorm.DB
}

func NewResultsController(db *gorm.DB) *ResultsController {
	return &ResultsController{DB: db}
}

// GET /api/u/assessment-results
func (ctrl *ResultsController) Results(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	setup, err := setupController.FindLatestSetup(ctrl.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Setup not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load setup")
	}

	results, err := service.CalculateResults(ctrl.DB, setup.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to calculate results")
	}

	return helper.JsonOK(c, "ok", results)
}
