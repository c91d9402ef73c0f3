package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"roadmapguide_backend/internals/features/users/auth/service"
	models "roadmapguide_backend/internals/features/users/user/model"
	helper "roadmapguide_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var user models.UserModel
	if err := ac.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"user": fiber.Map{
			"id":                  user.ID,
			"user_name":           user.UserName,
			"email":               user.Email,
			"role":                user.Role,
			"progress_percentage": user.ProgressPercentage,
			"has_drive_access":    user.Credentials != nil,
		},
	})
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	return service.Register(ac.DB, c)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ac.DB, c)
}

func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	return service.LoginGoogle(ac.DB, c)
}

func (ac *AuthController) GoogleLoginRedirect(c *fiber.Ctx) error {
	return service.GoogleLoginRedirect(c)
}

func (ac *AuthController) GoogleCallback(c *fiber.Ctx) error {
	return service.GoogleCallback(ac.DB, c)
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return service.Logout(ac.DB, c)
}

func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	return service.RefreshTokenRotate(ac.DB, c)
}
