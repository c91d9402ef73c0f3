// file: internals/features/assessment/results/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"roadmapguide_backend/internals/features/assessment/results/controller"
)

func UserResultsRoutes(user fiber.Router, db *gorm.DB) {
	resultsCtrl := controller.NewResultsController(db)

	user.Get("/assessment-results", resultsCtrl.Results)
}
