package service

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	catalogModel "roadmapguide_backend/internals/features/assessment/catalog/model"
	responseDTO "roadmapguide_backend/internals/features/assessment/response/dto"
	responseModel "roadmapguide_backend/internals/features/assessment/response/model"
	setupModel "roadmapguide_backend/internals/features/assessment/setup/model"
	userModel "roadmapguide_backend/internals/features/users/user/model"
)

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
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// seedCatalog creates the selection question plus n single-choice questions
// per initiative, returning the created setup.
func seedCatalog(t *testing.T, db *gorm.DB, questionsPerInitiative map[string]int) *setupModel.SetupModel {
	t.Helper()

	titles := make([]string, 0, len(questionsPerInitiative))
	for title := range questionsPerInitiative {
		titles = append(titles, title)
	}

	rules, err := json.Marshal(catalogModel.QuestionRules{MinCount: 1, MaxCount: 3})
	require.NoError(t, err)
	require.NoError(t, db.Create(&catalogModel.QuestionModel{
		ID:           catalogModel.SelectionQuestionID,
		Text:         "Select initiatives",
		Options:      pq.StringArray(titles),
		QuestionType: catalogModel.TypeMultipleChoice,
		Required:     true,
		Rules:        rules,
	}).Error)

	id := catalogModel.SelectionQuestionID + 1
	for title, n := range questionsPerInitiative {
		for i := 0; i < n; i++ {
			require.NoError(t, db.Create(&catalogModel.QuestionModel{
				ID:            id,
				StrategicGoal: title,
				Text:          "q",
				Options:       pq.StringArray{"Low", "Mid", "High"},
				QuestionType:  catalogModel.TypeSingleChoice,
				Required:      true,
			}).Error)
			id++
		}
	}

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
	return &setup
}

func selectInitiatives(t *testing.T, db *gorm.DB, setupID uuid.UUID, titles ...string) {
	t.Helper()
	raw, err := json.Marshal(titles)
	require.NoError(t, err)
	saved, err := SaveAnswer(db, setupID, catalogModel.SelectionQuestionID, raw)
	require.NoError(t, err)
	require.True(t, saved.IsValid)
}

func questionsFor(t *testing.T, db *gorm.DB, initiative string) []catalogModel.QuestionModel {
	t.Helper()
	var questions []catalogModel.QuestionModel
	require.NoError(t, db.Where("strategic_goal = ?", initiative).Order("id ASC").Find(&questions).Error)
	return questions
}

func TestCalculateProgressNoSelection(t *testing.T) {
	db := openTestDB(t)
	setup := seedCatalog(t, db, map[string]int{"Alpha": 2})

	progress, err := CalculateProgress(db, setup.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, progress)
}

func TestCalculateProgressPartialAndComplete(t *testing.T) {
	db := openTestDB(t)
	setup := seedCatalog(t, db, map[string]int{"Alpha": 2, "Beta": 1})
	selectInitiatives(t, db, setup.ID, "Alpha", "Beta")

	progress, err := CalculateProgress(db, setup.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, progress)

	// answer 2 of 3 questions
	answered := 0
	for _, q := range append(questionsFor(t, db, "Alpha"), questionsFor(t, db, "Beta")...) {
		if answered == 2 {
			break
		}
		_, err := SaveAnswer(db, setup.ID, q.ID, json.RawMessage(`1`))
		require.NoError(t, err)
		answered++
	}

	progress, err = CalculateProgress(db, setup.ID)
	require.NoError(t, err)
	assert.InDelta(t, 66.67, progress, 0.1)

	// answer the rest
	for _, q := range append(questionsFor(t, db, "Alpha"), questionsFor(t, db, "Beta")...) {
		_, err := SaveAnswer(db, setup.ID, q.ID, json.RawMessage(`0`))
		require.NoError(t, err)
	}

	progress, err = CalculateProgress(db, setup.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, progress)
}

func TestCalculateProgressIgnoresInvalidAnswers(t *testing.T) {
	db := openTestDB(t)
	setup := seedCatalog(t, db, map[string]int{"Alpha": 1})
	selectInitiatives(t, db, setup.ID, "Alpha")

	q := questionsFor(t, db, "Alpha")[0]

	// out-of-range index: persisted, but not counted
	saved, err := SaveAnswer(db, setup.ID, q.ID, json.RawMessage(`9`))
	require.NoError(t, err)
	assert.False(t, saved.IsValid)
	require.NotNil(t, saved.ValidationMessage)
	assert.Equal(t, "Invalid option(s) selected", *saved.ValidationMessage)

	progress, err := CalculateProgress(db, setup.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, progress)
}

func TestSaveAnswerPersistsInvalidVerdictOnInsert(t *testing.T) {
	db := openTestDB(t)
	setup := seedCatalog(t, db, map[string]int{"Alpha": 1})
	selectInitiatives(t, db, setup.ID, "Alpha")

	q := questionsFor(t, db, "Alpha")[0]

	saved, err := SaveAnswer(db, setup.ID, q.ID, json.RawMessage(`9`))
	require.NoError(t, err)
	assert.False(t, saved.IsValid)

	// the freshly inserted row must carry the verdict, not a column default
	var row responseModel.ResponseModel
	require.NoError(t, db.Where("setup_id = ? AND question_id = ?", setup.ID, q.ID).
		First(&row).Error)
	assert.False(t, row.IsValid)
	require.NotNil(t, row.ValidationMessage)
	assert.Equal(t, "Invalid option(s) selected", *row.ValidationMessage)
}

func TestSaveAnswerUpsertsSingleRow(t *testing.T) {
	db := openTestDB(t)
	setup := seedCatalog(t, db, map[string]int{"Alpha": 1})
	selectInitiatives(t, db, setup.ID, "Alpha")

	q := questionsFor(t, db, "Alpha")[0]

	first, err := SaveAnswer(db, setup.ID, q.ID, json.RawMessage(`0`))
	require.NoError(t, err)
	second, err := SaveAnswer(db, setup.ID, q.ID, json.RawMessage(`2`))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&responseModel.ResponseModel{}).
		Where("setup_id = ? AND question_id = ?", setup.ID, q.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var row responseModel.ResponseModel
	require.NoError(t, db.Where("setup_id = ? AND question_id = ?", setup.ID, q.ID).First(&row).Error)
	answer, err := responseDTO.DecodeAnswer(row.Answer)
	require.NoError(t, err)
	require.NotNil(t, answer.Index)
	assert.Equal(t, 2, *answer.Index)
}

func TestSaveAnswerUnknownQuestion(t *testing.T) {
	db := openTestDB(t)
	setup := seedCatalog(t, db, map[string]int{"Alpha": 1})

	_, err := SaveAnswer(db, setup.ID, 999, json.RawMessage(`0`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Question not found")
}

func TestSelectedInitiatives(t *testing.T) {
	db := openTestDB(t)
	setup := seedCatalog(t, db, map[string]int{"Alpha": 1, "Beta": 1})

	selected, err := SelectedInitiatives(db, setup.ID)
	require.NoError(t, err)
	assert.Empty(t, selected)

	selectInitiatives(t, db, setup.ID, "Beta")

	selected, err = SelectedInitiatives(db, setup.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta"}, selected)
}

func TestRefreshProgressCacheWritesUserColumn(t *testing.T) {
	db := openTestDB(t)
	setup := seedCatalog(t, db, map[string]int{"Alpha": 1})
	selectInitiatives(t, db, setup.ID, "Alpha")

	q := questionsFor(t, db, "Alpha")[0]
	_, err := SaveAnswer(db, setup.ID, q.ID, json.RawMessage(`1`))
	require.NoError(t, err)

	progress := RefreshProgressCache(db, setup.ID, setup.UserID)
	assert.Equal(t, 100.0, progress)

	var user userModel.UserModel
	require.NoError(t, db.First(&user, "id = ?", setup.UserID).Error)
	assert.Equal(t, 100.0, user.ProgressPercentage)
}

func TestRevalidateAllFlagsStaleAnswers(t *testing.T) {
	db := openTestDB(t)
	setup := seedCatalog(t, db, map[string]int{"Alpha": 1})
	selectInitiatives(t, db, setup.ID, "Alpha")

	q := questionsFor(t, db, "Alpha")[0]
	_, err := SaveAnswer(db, setup.ID, q.ID, json.RawMessage(`2`))
	require.NoError(t, err)

	// shrink the option set so the stored index is now out of range
	require.NoError(t, db.Model(&catalogModel.QuestionModel{}).
		Where("id = ?", q.ID).
		Update("options", pq.StringArray{"Low", "Mid"}).Error)

	result, err := RevalidateAll(db, setup.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total) // selection + question
	assert.Equal(t, 1, result.Valid)
	require.Len(t, result.Invalid, 1)
	assert.Equal(t, q.ID, result.Invalid[0].QuestionID)
	assert.Equal(t, "Invalid option(s) selected", result.Invalid[0].Message)

	var row responseModel.ResponseModel
	require.NoError(t, db.Where("setup_id = ? AND question_id = ?", setup.ID, q.ID).First(&row).Error)
	assert.False(t, row.IsValid)
}

func TestRevalidateAllReportsUnansweredRequiredQuestions(t *testing.T) {
	db := openTestDB(t)
	setup := seedCatalog(t, db, map[string]int{"Alpha": 2})
	selectInitiatives(t, db, setup.ID, "Alpha")

	questions := questionsFor(t, db, "Alpha")
	_, err := SaveAnswer(db, setup.ID, questions[0].ID, json.RawMessage(`1`))
	require.NoError(t, err)

	result, err := RevalidateAll(db, setup.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total) // selection + answered + missing
	assert.Equal(t, 2, result.Valid)
	require.Len(t, result.Invalid, 1)
	assert.Equal(t, questions[1].ID, result.Invalid[0].QuestionID)
	assert.Equal(t, "This question requires an answer", result.Invalid[0].Message)
}
