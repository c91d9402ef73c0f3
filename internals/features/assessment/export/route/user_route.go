// file: internals/features/assessment/export/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"roadmapguide_backend/internals/features/assessment/export/controller"
	"roadmapguide_backend/internals/middlewares"
)

// UserExportRoutes mounts the Docs export behind its own rate limiter; the
// Google round trip is the most expensive call the API makes.
func UserExportRoutes(user fiber.Router, db *gorm.DB) {
	exportCtrl := controller.NewExportController(db)

	user.Post("/generate-roadmap", middlewares.ExportRateLimiter(), exportCtrl.ExportRoadmap)
	user.Get("/exports", exportCtrl.ListExports)
}
