// file: internals/features/assessment/catalog/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"roadmapguide_backend/internals/features/assessment/catalog/controller"
)

// AdminCatalogRoutes mounts the catalog CRUD under an already-guarded group.
func AdminCatalogRoutes(admin fiber.Router, db *gorm.DB) {
	initiativeCtrl := controller.NewInitiativeController(db)
	questionCtrl := controller.NewQuestionController(db)

	initiatives := admin.Group("/initiatives")
	initiatives.Get("/", initiativeCtrl.AdminList)
	initiatives.Post("/", initiativeCtrl.Create)
	initiatives.Put("/:id", initiativeCtrl.Update)
	initiatives.Delete("/:id", initiativeCtrl.Delete)

	questions := admin.Group("/questions")
	questions.Get("/", questionCtrl.AdminList)
	questions.Post("/", questionCtrl.Create)
	questions.Put("/:id", questionCtrl.Update)
	questions.Delete("/:id", questionCtrl.Delete)
}
