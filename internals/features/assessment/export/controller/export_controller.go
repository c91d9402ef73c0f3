package controller

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"roadmapguide_backend/internals/features/assessment/export/model"
	"roadmapguide_backend/internals/features/assessment/export/service"
	progressService "roadmapguide_backend/internals/features/assessment/progress/service"
	resultsService "roadmapguide_backend/internals/features/assessment/results/service"
	setupController "roadmapguide_backend/internals/features/assessment/setup/controller"
	userModel "roadmapguide_backend/internals/features/users/user/model"
	helper "roadmapguide_backend/internals/helpers"
)

const exportTimeout = 30 * time.Second

type ExportController struct {
	DB *gorm.DB

	// NewExporter is swappable for tests; nil means the real Google client.
	NewExporter func(ctx context.Context, db *gorm.DB, user *userModel.UserModel) (service.DocsExporter, error)
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{DB: db}
}

func (ctrl *ExportController) exporter(ctx context.Context, user *userModel.UserModel) (service.DocsExporter, error) {
	if ctrl.NewExporter != nil {
		return ctrl.NewExporter(ctx, ctrl.DB, user)
	}
	ts, err := service.UserTokenSource(ctx, ctrl.DB, user)
	if err != nil {
		return nil, err
	}
	return service.NewGoogleDocsExporter(ts), nil
}

// POST /api/u/generate-roadmap: renders the current assessment results into a
// new Google Doc in the user's Drive and records the export.
func (ctrl *ExportController) ExportRoadmap(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}

	setup, err := setupController.FindLatestSetup(ctrl.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Setup not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load setup")
	}

	results, err := resultsService.CalculateResults(ctrl.DB, setup.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to calculate results")
	}
	if len(results.Initiatives) == 0 {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Nothing to export: no initiatives selected")
	}

	// every required question must hold a valid answer before the export runs
	report, err := progressService.RevalidateAll(ctrl.DB, setup.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to validate answers")
	}
	if len(report.Invalid) > 0 {
		return helper.JsonErrorWithData(c, fiber.StatusBadRequest,
			"Please answer all required questions correctly before generating the roadmap",
			fiber.Map{"invalid": report.Invalid})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), exportTimeout)
	defer cancel()

	exporter, err := ctrl.exporter(ctx, &user)
	if err != nil {
		if errors.Is(err, service.ErrNoCredentials) {
			return helper.JsonError(c, fiber.StatusForbidden, "Google Drive access not granted. Sign in with Google first.")
		}
		return helper.JsonError(c, fiber.StatusBadGateway, "Failed to connect to Google")
	}

	title := service.RoadmapTitle(setup)
	body := service.RoadmapBody(setup, results)

	docID, err := exporter.CreateDocument(ctx, title, body)
	if err != nil {
		log.Printf("[ERROR] Roadmap export failed for user %s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Failed to create Google Doc")
	}

	// best effort: the doc is already created either way
	if setup.AdvisorEmail != "" && setup.AdvisorEmail != user.Email {
		if err := exporter.ShareDocument(ctx, docID, setup.AdvisorEmail); err != nil {
			log.Printf("[WARN] Failed to share doc %s with advisor: %v", docID, err)
		}
	}

	presentation := model.PresentationModel{
		ID:          uuid.New(),
		UserID:      userID,
		SetupID:     setup.ID,
		GoogleDocID: docID,
		Title:       title,
	}
	if err := ctrl.DB.Create(&presentation).Error; err != nil {
		log.Printf("[WARN] Failed to record export for user %s: %v", userID, err)
	}

	return helper.JsonCreated(c, "Roadmap exported", fiber.Map{
		"doc_id":  docID,
		"doc_url": presentation.DocURL(),
		"title":   title,
	})
}

// GET /api/u/exports
func (ctrl *ExportController) ListExports(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var exports []model.PresentationModel
	if err := ctrl.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&exports).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load exports")
	}

	return helper.JsonOK(c, "ok", exports)
}
