package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"roadmapguide_backend/internals/features/assessment/catalog/dto"
	"roadmapguide_backend/internals/features/assessment/catalog/model"
	helper "roadmapguide_backend/internals/helpers"
)

type InitiativeController struct {
	DB *gorm.DB
}

func NewInitiativeController(db *gorm.DB) *InitiativeController {
	return &InitiativeController{DB: db}
}

// GET /api/u/initiatives: ordered catalog for the selection step
func (ctrl *InitiativeController) List(c *fiber.Ctx) error {
	var initiatives []model.InitiativeModel
	if err := ctrl.DB.Order("display_order ASC, id ASC").Find(&initiatives).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load initiatives")
	}
	return helper.JsonOK(c, "ok", initiatives)
}

// GET /api/a/initiatives: paginated admin listing
func (ctrl *InitiativeController) AdminList(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.InitiativeModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count initiatives")
	}

	var initiatives []model.InitiativeModel
	if err := ctrl.DB.
		Order("display_order ASC, id ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&initiatives).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load initiatives")
	}

	return helper.JsonList(c, "ok", initiatives, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// POST /api/a/initiatives
func (ctrl *InitiativeController) Create(c *fiber.Ctx) error {
	var req dto.CreateInitiativeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate(req); err != nil {
		return helper.ValidationError(c, err)
	}

	initiative := req.ToModel()
	if err := ctrl.DB.Create(&initiative).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "An initiative with that title already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create initiative")
	}

	return helper.JsonCreated(c, "Initiative created", initiative)
}

// PUT /api/a/initiatives/:id
func (ctrl *InitiativeController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid initiative id")
	}

	var req dto.UpdateInitiativeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var initiative model.InitiativeModel
	if err := ctrl.DB.First(&initiative, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Initiative not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load initiative")
	}

	req.Apply(&initiative)
	if err := ctrl.DB.Save(&initiative).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "An initiative with that title already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update initiative")
	}

	return helper.JsonOK(c, "Initiative updated", initiative)
}

// DELETE /api/a/initiatives/:id
func (ctrl *InitiativeController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid initiative id")
	}

	res := ctrl.DB.Delete(&model.InitiativeModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete initiative")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Initiative not found")
	}

	return helper.JsonOK(c, "Initiative deleted", nil)
}
