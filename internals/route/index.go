// file: internals/route/index.go
package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	catalogRoute "roadmapguide_backend/internals/features/assessment/catalog/route"
	exportRoute "roadmapguide_backend/internals/features/assessment/export/route"
	progressRoute "roadmapguide_backend/internals/features/assessment/progress/route"
	resultsRoute "roadmapguide_backend/internals/features/assessment/results/route"
	setupRoute "roadmapguide_backend/internals/features/assessment/setup/route"
	authRoute "roadmapguide_backend/internals/features/users/auth/route"
	authRepo "roadmapguide_backend/internals/features/users/auth/repository"
	authMiddleware "roadmapguide_backend/internals/middlewares/auth"
)

// SetupRoutes wires every feature group:
//
//	/api/auth  login, register, Google OAuth, token lifecycle
//	/api/u     authenticated user endpoints (setup, answers, results, export)
//	/api/a     admin catalog management
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	authRoute.AuthRoutes(app, db)

	authGuard := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              os.Getenv("JWT_SECRET"),
		AllowCookieFallback: true,
		BlacklistChecker: func(raw string) (bool, error) {
			return authRepo.IsTokenBlacklisted(db, raw)
		},
	})

	user := app.Group("/api/u", authGuard)
	catalogRoute.UserCatalogRoutes(user, db)
	setupRoute.UserSetupRoutes(user, db)
	progressRoute.UserProgressRoutes(user, db)
	resultsRoute.UserResultsRoutes(user, db)
	exportRoute.UserExportRoutes(user, db)

	// the paged questionnaire view sits at the app root so its redirects
	// land on the client routes (/setup, /initiatives, /assessment_results).
	// scoping the guard to /questionnaire keeps unmatched paths at 404.
	paged := app.Group("/questionnaire", authGuard)
	progressRoute.QuestionnairePageRoute(paged, db)

	admin := app.Group("/api/a", authGuard, authMiddleware.AdminOnly("catalog management"))
	catalogRoute.AdminCatalogRoutes(admin, db)
}
