package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	catalogModel "roadmapguide_backend/internals/features/assessment/catalog/model"
	exportModel "roadmapguide_backend/internals/features/assessment/export/model"
	"roadmapguide_backend/internals/features/assessment/export/service"
	progressService "roadmapguide_backend/internals/features/assessment/progress/service"
	responseModel "roadmapguide_backend/internals/features/assessment/response/model"
	setupModel "roadmapguide_backend/internals/features/assessment/setup/model"
	userModel "roadmapguide_backend/internals/features/users/user/model"
	helper "roadmapguide_backend/internals/helpers"
)

type fakeExporter struct {
	createdTitle string
	createdBody  string
	sharedWith   []string
	failCreate   error
}

func (f *fakeExporter) CreateDocument(ctx context.Context, title, body string) (string, error) {
	if f.failCreate != nil {
		return "", f.failCreate
	}
	f.createdTitle = title
	f.createdBody = body
	return "doc-123", nil
}

func (f *fakeExporter) ShareDocument(ctx context.Context, docID, email string) error {
	f.sharedWith = append(f.sharedWith, email)
	return nil
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&catalogModel.QuestionModel{},
		&setupModel.SetupModel{},
		&responseModel.ResponseModel{},
		&exportModel.PresentationModel{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedCompletedAssessment(t *testing.T, db *gorm.DB) *userModel.UserModel {
	t.Helper()

	user := userModel.UserModel{UserName: "tester", Email: "tester@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	setup := setupModel.SetupModel{
		UserID:         user.ID,
		AdvisorName:    "Ada",
		AdvisorEmail:   "ada@example.com",
		LeaderName:     "Lee",
		LeaderEmail:    "lee@example.com",
		LeaderEmployer: "Acme",
	}
	require.NoError(t, db.Create(&setup).Error)

	rules, err := json.Marshal(catalogModel.QuestionRules{MinCount: 1, MaxCount: 3})
	require.NoError(t, err)
	require.NoError(t, db.Create(&catalogModel.QuestionModel{
		ID:           catalogModel.SelectionQuestionID,
		Text:         "Select initiatives",
		Options:      pq.StringArray{"Alpha"},
		QuestionType: catalogModel.TypeMultipleChoice,
		Required:     true,
		Rules:        rules,
	}).Error)
	require.NoError(t, db.Create(&catalogModel.QuestionModel{
		ID:            2,
		StrategicGoal: "Alpha",
		Text:          "q",
		Options:       pq.StringArray{"Low", "Mid", "High"},
		QuestionType:  catalogModel.TypeSingleChoice,
		Required:      true,
	}).Error)

	_, err = progressService.SaveAnswer(db, setup.ID, catalogModel.SelectionQuestionID, json.RawMessage(`["Alpha"]`))
	require.NoError(t, err)
	_, err = progressService.SaveAnswer(db, setup.ID, 2, json.RawMessage(`1`))
	require.NoError(t, err)

	return &user
}

func newTestApp(db *gorm.DB, userID uuid.UUID, exporter service.DocsExporter, exporterErr error) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, userID)
		return c.Next()
	})

	ctrl := NewExportController(db)
	ctrl.NewExporter = func(ctx context.Context, db *gorm.DB, user *userModel.UserModel) (service.DocsExporter, error) {
		if exporterErr != nil {
			return nil, exporterErr
		}
		return exporter, nil
	}
	app.Post("/api/u/generate-roadmap", ctrl.ExportRoadmap)
	app.Get("/api/u/exports", ctrl.ListExports)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil), -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp, body
}

func TestExportRoadmapCreatesDocAndRecordsIt(t *testing.T) {
	db := openTestDB(t)
	user := seedCompletedAssessment(t, db)
	exporter := &fakeExporter{}
	app := newTestApp(db, user.ID, exporter, nil)

	resp, body := doRequest(t, app, http.MethodPost, "/api/u/generate-roadmap")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]any)
	assert.Equal(t, "doc-123", data["doc_id"])
	assert.Equal(t, "https://docs.google.com/document/d/doc-123", data["doc_url"])

	assert.Contains(t, exporter.createdTitle, "Acme")
	assert.Contains(t, exporter.createdBody, "Alpha")
	assert.Equal(t, []string{"ada@example.com"}, exporter.sharedWith)

	var exports []exportModel.PresentationModel
	require.NoError(t, db.Find(&exports).Error)
	require.Len(t, exports, 1)
	assert.Equal(t, "doc-123", exports[0].GoogleDocID)
	assert.Equal(t, user.ID, exports[0].UserID)
}

func TestExportRoadmapWithoutSelection(t *testing.T) {
	db := openTestDB(t)

	user := userModel.UserModel{UserName: "tester", Email: "tester@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	setup := setupModel.SetupModel{
		UserID: user.ID, AdvisorName: "A", AdvisorEmail: "a@example.com",
		LeaderName: "L", LeaderEmail: "l@example.com", LeaderEmployer: "Acme",
	}
	require.NoError(t, db.Create(&setup).Error)

	app := newTestApp(db, user.ID, &fakeExporter{}, nil)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/u/generate-roadmap")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestExportRoadmapBlockedByUnansweredQuestion(t *testing.T) {
	db := openTestDB(t)
	user := seedCompletedAssessment(t, db)

	require.NoError(t, db.Create(&catalogModel.QuestionModel{
		ID:            3,
		StrategicGoal: "Alpha",
		Text:          "q2",
		Options:       pq.StringArray{"Low", "High"},
		QuestionType:  catalogModel.TypeSingleChoice,
		Required:      true,
	}).Error)

	exporter := &fakeExporter{}
	app := newTestApp(db, user.ID, exporter, nil)

	resp, body := doRequest(t, app, http.MethodPost, "/api/u/generate-roadmap")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Please answer all required questions correctly before generating the roadmap", body["message"])
	assert.Empty(t, exporter.createdTitle)

	var exports []exportModel.PresentationModel
	require.NoError(t, db.Find(&exports).Error)
	assert.Empty(t, exports)
}

func TestExportRoadmapWithoutCredentials(t *testing.T) {
	db := openTestDB(t)
	user := seedCompletedAssessment(t, db)
	app := newTestApp(db, user.ID, nil, service.ErrNoCredentials)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/u/generate-roadmap")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestListExports(t *testing.T) {
	db := openTestDB(t)
	user := seedCompletedAssessment(t, db)
	exporter := &fakeExporter{}
	app := newTestApp(db, user.ID, exporter, nil)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/u/generate-roadmap")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := doRequest(t, app, http.MethodGet, "/api/u/exports")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 1)
}
