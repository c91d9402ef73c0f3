// file: internals/features/assessment/catalog/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"roadmapguide_backend/internals/features/assessment/catalog/controller"
)

// UserCatalogRoutes mounts the read-only catalog endpoints.
func UserCatalogRoutes(user fiber.Router, db *gorm.DB) {
	initiativeCtrl := controller.NewInitiativeController(db)
	questionCtrl := controller.NewQuestionController(db)

	user.Get("/initiatives", initiativeCtrl.List)
	user.Get("/questions", questionCtrl.List)
}
