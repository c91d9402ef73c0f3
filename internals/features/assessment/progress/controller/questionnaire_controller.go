package controller

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogModel "roadmapguide_backend/internals/features/assessment/catalog/model"
	"roadmapguide_backend/internals/features/assessment/progress/dto"
	"roadmapguide_backend/internals/features/assessment/progress/service"
	responseDTO "roadmapguide_backend/internals/features/assessment/response/dto"
	responseModel "roadmapguide_backend/internals/features/assessment/response/model"
	setupController "roadmapguide_backend/internals/features/assessment/setup/controller"
	helper "roadmapguide_backend/internals/helpers"
)

type QuestionnaireController struct {
	DB *gorm.DB
}

func NewQuestionnaireController(db *gorm.DB) *QuestionnaireController {
	return &QuestionnaireController{DB: db}
}

// GET /questionnaire/:index: one page per selected initiative. The guards
// push the user back to whichever step is still missing instead of erroring.
func (ctrl *QuestionnaireController) Page(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil || index < 0 {
		index = 0
	}

	setup, err := setupController.FindLatestSetup(ctrl.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Redirect("/setup", fiber.StatusSeeOther)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load setup")
	}

	selected, err := service.SelectedInitiatives(ctrl.DB, setup.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load initiative selection")
	}
	if len(selected) == 0 {
		return c.Redirect("/initiatives", fiber.StatusSeeOther)
	}

	progress, err := service.CalculateProgress(ctrl.DB, setup.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to calculate progress")
	}
	if index >= len(selected) || progress >= 100 {
		return c.Redirect("/assessment_results", fiber.StatusSeeOther)
	}

	initiative := selected[index]

	var questions []catalogModel.QuestionModel
	if err := ctrl.DB.
		Where("strategic_goal = ? AND id <> ?", initiative, catalogModel.SelectionQuestionID).
		Order("display_order ASC, id ASC").
		Find(&questions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load questions")
	}

	saved, err := savedAnswerMap(ctrl.DB, setup.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load saved answers")
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"initiative":        initiative,
		"initiative_index":  index,
		"total_initiatives": len(selected),
		"questions":         questions,
		"saved_answers":     saved,
		"progress":          progress,
	})
}

// POST /api/u/save-answer
func (ctrl *QuestionnaireController) SaveAnswer(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.SaveAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(req); err != nil {
		return helper.ValidationError(c, err)
	}

	setup, err := setupController.FindLatestSetup(ctrl.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Setup not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load setup")
	}

	saved, err := service.SaveAnswer(ctrl.DB, setup.ID, req.QuestionID, req.Answer)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	progress := service.RefreshProgressCache(ctrl.DB, setup.ID, userID)

	return helper.JsonOK(c, "Answer saved", fiber.Map{
		"response": saved,
		"progress": progress,
	})
}

// POST /api/u/initiatives: the selection is stored through the same answer
// pipeline, on the reserved selection question.
func (ctrl *QuestionnaireController) SelectInitiatives(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.SelectInitiativesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(req); err != nil {
		return helper.ValidationError(c, err)
	}

	setup, err := setupController.FindLatestSetup(ctrl.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Setup not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load setup")
	}

	answer := responseDTO.Answer{Kind: responseDTO.AnswerMulti, Selections: req.Initiatives}
	raw, err := answer.Encode()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to encode selection")
	}

	saved, err := service.SaveAnswer(ctrl.DB, setup.ID, catalogModel.SelectionQuestionID, raw)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !saved.IsValid {
		msg := "Invalid option(s) selected"
		if saved.ValidationMessage != nil {
			msg = *saved.ValidationMessage
		}
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, msg)
	}

	progress := service.RefreshProgressCache(ctrl.DB, setup.ID, userID)

	return helper.JsonOK(c, "Initiatives selected", fiber.Map{
		"initiatives": req.Initiatives,
		"progress":    progress,
	})
}

// GET /api/u/progress
func (ctrl *QuestionnaireController) Progress(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	setup, err := setupController.FindLatestSetup(ctrl.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonOK(c, "ok", fiber.Map{"progress": 0.0})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load setup")
	}

	progress, err := service.CalculateProgress(ctrl.DB, setup.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to calculate progress")
	}

	return helper.JsonOK(c, "ok", fiber.Map{"progress": progress})
}

// GET /api/u/saved-answers
func (ctrl *QuestionnaireController) SavedAnswers(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	setup, err := setupController.FindLatestSetup(ctrl.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonOK(c, "ok", map[uint]dto.SavedAnswerItem{})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load setup")
	}

	saved, err := savedAnswerMap(ctrl.DB, setup.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load saved answers")
	}

	return helper.JsonOK(c, "ok", saved)
}

// POST /api/u/validate-all: re-check every stored answer against the
// current catalog, then refresh the progress cache.
func (ctrl *QuestionnaireController) ValidateAll(c *fiber.Ctx) error {
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

	result, err := service.RevalidateAll(ctrl.DB, setup.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to revalidate answers")
	}

	progress := service.RefreshProgressCache(ctrl.DB, setup.ID, userID)

	return helper.JsonOK(c, "ok", fiber.Map{
		"result":   result,
		"progress": progress,
	})
}

func savedAnswerMap(db *gorm.DB, setupID uuid.UUID) (map[uint]dto.SavedAnswerItem, error) {
	var responses []responseModel.ResponseModel
	if err := db.Where("setup_id = ?", setupID).Find(&responses).Error; err != nil {
		return nil, err
	}

	saved := make(map[uint]dto.SavedAnswerItem, len(responses))
	for _, r := range responses {
		saved[r.QuestionID] = dto.SavedAnswerItem{
			QuestionID:        r.QuestionID,
			Answer:            json.RawMessage(r.Answer),
			IsValid:           r.IsValid,
			ValidationMessage: r.ValidationMessage,
		}
	}
	return saved, nil
}
