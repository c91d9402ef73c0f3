package service

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"roadmapguide_backend/internals/configs"
	authDTO "roadmapguide_backend/internals/features/users/auth/dto"
	authModel "roadmapguide_backend/internals/features/users/auth/model"
	authRepo "roadmapguide_backend/internals/features/users/auth/repository"
	userModel "roadmapguide_backend/internals/features/users/user/model"
	helpers "roadmapguide_backend/internals/helpers"
)

/* ==========================
   Const & small helpers
========================== */

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("JWT_REFRESH_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET is not set")
	}
	return secret, nil
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(hash), err
}

/* ==========================
   Claims & token issuing
========================== */

func BuildAccessClaims(user userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"id":        user.ID.String(),
		"user_name": user.UserName,
		"role":      user.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}
}

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": userID.String(),
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": now.Add(refreshTTLDefault).Unix(),
	}
}

// IssueTokens signs the access/refresh pair, persists the hashed refresh token
// and sets both cookies. Cookie + body both carry the access token so browser
// and API clients work the same way.
func IssueTokens(c *fiber.Ctx, db *gorm.DB, user userModel.UserModel) error {
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	now := nowUTC()
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, BuildAccessClaims(user, now)).SignedString([]byte(jwtSecret))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create access token")
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(user.ID, now)).SignedString([]byte(refreshSecret))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create refresh token")
	}

	ua, ip := c.Get("User-Agent"), c.IP()
	if err := authRepo.CreateRefreshToken(db, &authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: authRepo.HashRefreshToken(refreshToken, refreshSecret),
		ExpiresAt: now.Add(refreshTTLDefault),
		UserAgent: strptr(ua),
		IP:        strptr(ip),
	}); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	setAuthCookies(c, accessToken, refreshToken, now)

	respUser := authDTO.LoginResponseUser{
		ID:                 user.ID.String(),
		UserName:           user.UserName,
		Email:              user.Email,
		Role:               user.Role,
		ProgressPercentage: user.ProgressPercentage,
		HasDriveAccess:     user.Credentials != nil,
	}
	return helpers.JsonOK(c, "Login successful", fiber.Map{
		"user":         respUser,
		"access_token": accessToken,
	})
}

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(accessTTLDefault),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(refreshTTLDefault),
	})
}

/* ==========================
   REGISTER / LOGIN
========================== */

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input authDTO.RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helpers.Validate(input); err != nil {
		return helpers.ValidationError(c, err)
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		UserName: strings.TrimSpace(input.UserName),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: hash,
		IsActive: true,
	}
	user.SetDefaultValues()

	if err := authRepo.CreateUser(db, &user); err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helpers.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return IssueTokens(c, db, user)
}

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input authDTO.LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helpers.Validate(input); err != nil {
		return helpers.ValidationError(c, err)
	}

	user, err := authRepo.FindUserByEmail(db, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated. Contact an admin.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	return IssueTokens(c, db, *user)
}

/* ==========================
   LOGIN GOOGLE (ID token)
========================== */

func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var input authDTO.GoogleLoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helpers.Validate(input); err != nil {
		return helpers.ValidationError(c, err)
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to decode ID Token")
	}
	if !claimSet.EmailVerified {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Email not verified by Google")
	}

	user, err := upsertGoogleUser(db, claimSet.Email, claimSet.Name, claimSet.Sub)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated. Contact an admin.")
	}

	return IssueTokens(c, db, *user)
}

// upsertGoogleUser finds a user by google_id, falling back to verified email,
// and creates one when neither exists.
func upsertGoogleUser(db *gorm.DB, email, name, googleID string) (*userModel.UserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	if user, err := authRepo.FindUserByGoogleID(db, googleID); err == nil {
		return user, nil
	}

	if user, err := authRepo.FindUserByEmail(db, email); err == nil {
		// link the Google identity to the existing account
		if user.GoogleID == nil {
			if err := db.Model(user).Update("google_id", googleID).Error; err != nil {
				return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to link Google account")
			}
			user.GoogleID = &googleID
		}
		return user, nil
	}

	hash, _ := HashPassword(uuid.NewString()) // throwaway password for OAuth-only accounts
	newUser := userModel.UserModel{
		UserName: name,
		Email:    email,
		Password: hash,
		GoogleID: &googleID,
		IsActive: true,
	}
	newUser.SetDefaultValues()
	if err := authRepo.CreateUser(db, &newUser); err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return nil, fiber.NewError(fiber.StatusConflict, "Email already registered")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create Google user")
	}
	return &newUser, nil
}

/* ==========================
   REFRESH / LOGOUT
========================== */

func RefreshTokenRotate(db *gorm.DB, c *fiber.Ctx) error {
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	raw := helpers.GetRefreshTokenFromCookie(c)
	if raw == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.BodyParser(&body)
		raw = strings.TrimSpace(body.RefreshToken)
	}
	if raw == "" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Missing refresh token")
	}

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	hash := authRepo.HashRefreshToken(raw, refreshSecret)
	stored, err := authRepo.FindRefreshTokenByHash(db, hash)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token not recognized")
	}

	user, err := authRepo.FindUserByID(db, stored.UserID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated. Contact an admin.")
	}

	// rotation: the old token is revoked before the new pair is issued
	if err := authRepo.RevokeRefreshToken(db, hash); err != nil {
		log.Printf("[WARN] failed to revoke refresh token: %v", err)
	}

	return IssueTokens(c, db, *user)
}

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	accessToken := helpers.GetRawAccessToken(c)
	ttl := resolveBlacklistTTL(accessToken)

	if accessToken != "" {
		if err := authRepo.BlacklistToken(db, accessToken, ttl); err != nil {
			log.Printf("[WARN] Failed to blacklist token: %v", err)
		}
	} else {
		log.Println("[INFO] Logout without access token; clearing cookies anyway (idempotent)")
	}

	if rt := helpers.GetRefreshTokenFromCookie(c); rt != "" {
		if secret, err := getRefreshSecret(); err == nil {
			_ = authRepo.RevokeRefreshToken(db, authRepo.HashRefreshToken(rt, secret))
		}
	}

	expired := nowUTC().Add(-time.Hour)
	for _, name := range []string{"access_token", "refresh_token", "oauth_state"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   true,
			SameSite: "None",
			Path:     "/",
			Expires:  expired,
			MaxAge:   -1,
		})
	}

	return helpers.JsonOK(c, "Logout successful", nil)
}

func resolveBlacklistTTL(accessToken string) time.Duration {
	ttl := 2 * time.Minute
	if v := os.Getenv("BLACKLIST_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" || accessToken == "" {
		return ttl
	}
	if tok, err := jwt.Parse(accessToken, func(t *jwt.Token) (any, error) {
		return []byte(jwtSecret), nil
	}); err == nil {
		if claims, ok := tok.Claims.(jwt.MapClaims); ok && tok.Valid {
			if exp, ok := claims["exp"].(float64); ok {
				until := time.Until(time.Unix(int64(exp), 0))
				if until > 0 {
					return until + 60*time.Second
				}
				return time.Minute
			}
		}
	}
	return ttl
}
