// file: internals/features/assessment/progress/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"roadmapguide_backend/internals/features/assessment/progress/controller"
)

// UserProgressRoutes mounts the answer pipeline under the authenticated
// /api/u group, plus the per-initiative questionnaire page.
func UserProgressRoutes(user fiber.Router, db *gorm.DB) {
	questionnaireCtrl := controller.NewQuestionnaireController(db)

	user.Post("/initiatives", questionnaireCtrl.SelectInitiatives)
	user.Post("/save-answer", questionnaireCtrl.SaveAnswer)
	user.Post("/validate-all", questionnaireCtrl.ValidateAll)
	user.Get("/progress", questionnaireCtrl.Progress)
	user.Get("/saved-answers", questionnaireCtrl.SavedAnswers)
}

// QuestionnairePageRoute mounts the paged questionnaire view on the
// authenticated /questionnaire group so the path matches what the client
// links to.
func QuestionnairePageRoute(authed fiber.Router, db *gorm.DB) {
	questionnaireCtrl := controller.NewQuestionnaireController(db)

	authed.Get("/:index", questionnaireCtrl.Page)
}
