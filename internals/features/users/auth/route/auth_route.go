// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "roadmapguide_backend/internals/features/users/auth/controller"
	authRepo "roadmapguide_backend/internals/features/users/auth/repository"
	rateLimiter "roadmapguide_backend/internals/middlewares"
	authMiddleware "roadmapguide_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	// Base: /api/auth
	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/login-google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)
	baseAuth.Post("/refresh-token", authController.RefreshToken)
	baseAuth.Post("/logout", authController.Logout)

	// Google OAuth consent flow (browser redirects)
	app.Get("/google_login", authController.GoogleLoginRedirect)
	app.Get("/google_login/callback", authController.GoogleCallback)

	// 🔒 Protected
	protected := baseAuth.Group("", authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              os.Getenv("JWT_SECRET"),
		AllowCookieFallback: true,
		BlacklistChecker: func(raw string) (bool, error) {
			return authRepo.IsTokenBlacklisted(db, raw)
		},
	}))
	protected.Get("/me", authController.Me)
}
