// file: internals/features/assessment/setup/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"roadmapguide_backend/internals/features/assessment/setup/controller"
)

func UserSetupRoutes(user fiber.Router, db *gorm.DB) {
	setupCtrl := controller.NewSetupController(db)

	user.Post("/setup", setupCtrl.Create)
	user.Get("/setup/latest", setupCtrl.Latest)
}
