package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"roadmapguide_backend/internals/features/assessment/catalog/dto"
	"roadmapguide_backend/internals/features/assessment/catalog/model"
	helper "roadmapguide_backend/internals/helpers"
)

type QuestionController struct {
	DB *gorm.DB
}

func NewQuestionController(db *gorm.DB) *QuestionController {
	return &QuestionController{DB: db}
}

// GET /api/u/questions: the ordered catalog, optionally scoped to one
// initiative via ?strategic_goal=
func (ctrl *QuestionController) List(c *fiber.Ctx) error {
	q := ctrl.DB.Order("display_order ASC, id ASC")
	if goal := strings.TrimSpace(c.Query("strategic_goal")); goal != "" {
		q = q.Where("strategic_goal = ?", goal)
	}

	var questions []model.QuestionModel
	if err := q.Find(&questions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load questions")
	}
	if len(questions) == 0 {
		// not an error: the catalog may simply not be seeded yet
		return helper.JsonOK(c, "ok", []model.QuestionModel{})
	}
	return helper.JsonOK(c, "ok", questions)
}

// GET /api/a/questions: paginated admin listing
func (ctrl *QuestionController) AdminList(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.QuestionModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count questions")
	}

	var questions []model.QuestionModel
	if err := ctrl.DB.
		Order("display_order ASC, id ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&questions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load questions")
	}

	return helper.JsonList(c, "ok", questions, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// POST /api/a/questions
func (ctrl *QuestionController) Create(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate(req); err != nil {
		return helper.ValidationError(c, err)
	}

	question, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid validation rules")
	}
	if err := ctrl.DB.Create(&question).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create question")
	}

	return helper.JsonCreated(c, "Question created", question)
}

// PUT /api/a/questions/:id
func (ctrl *QuestionController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid question id")
	}

	var req dto.UpdateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var question model.QuestionModel
	if err := ctrl.DB.First(&question, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Question not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load question")
	}

	if err := req.Apply(&question); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid validation rules")
	}
	if err := ctrl.DB.Save(&question).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update question")
	}

	return helper.JsonOK(c, "Question updated", question)
}

// DELETE /api/a/questions/:id
func (ctrl *QuestionController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid question id")
	}
	if uint(id) == model.SelectionQuestionID {
		return helper.JsonError(c, fiber.StatusBadRequest, "The initiative-selection question cannot be deleted")
	}

	res := ctrl.DB.Delete(&model.QuestionModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete question")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Question not found")
	}

	return helper.JsonOK(c, "Question deleted", nil)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") || strings.Contains(low, "unique")
}
