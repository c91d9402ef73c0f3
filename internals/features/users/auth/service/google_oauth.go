package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"roadmapguide_backend/internals/configs"
	authRepo "roadmapguide_backend/internals/features/users/auth/repository"
	helpers "roadmapguide_backend/internals/helpers"
)

// Server-side OAuth 2.0 / OpenID Connect flow. Unlike the ID-token login this
// path also asks for Drive/Docs consent, so the stored credential can drive
// the roadmap export later.

const googleUserinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

type googleUserinfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
}

// GoogleLoginRedirect starts the consent flow: random state in a short-lived
// cookie, then redirect to Google's authorization endpoint.
func GoogleLoginRedirect(c *fiber.Ctx) error {
	cfg := configs.GoogleOAuthConfig()
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Google OAuth is not configured")
	}

	state := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     "oauth_state",
		Value:    state,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Minute),
	})

	url := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	return c.Redirect(url, fiber.StatusTemporaryRedirect)
}

// GoogleCallback exchanges the authorization code, fetches userinfo, upserts
// the user by verified email and stores the token JSON for the export path.
func GoogleCallback(db *gorm.DB, c *fiber.Ctx) error {
	if errParam := c.Query("error"); errParam != "" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, fmt.Sprintf("Google login was denied: %s", errParam))
	}

	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Authentication failed: no authorization code received")
	}

	state := strings.TrimSpace(c.Query("state"))
	if state == "" || state != strings.TrimSpace(c.Cookies("oauth_state")) {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Authentication failed: state mismatch")
	}

	cfg := configs.GoogleOAuthConfig()
	ctx := c.UserContext()

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		log.Printf("[ERROR] google token exchange: %v", err)
		return helpers.JsonError(c, fiber.StatusBadGateway, "Authentication failed: unable to obtain access token")
	}

	info, err := fetchUserinfo(cfg.Client(ctx, token))
	if err != nil {
		log.Printf("[ERROR] google userinfo: %v", err)
		return helpers.JsonError(c, fiber.StatusBadGateway, "Authentication failed: unable to get user info")
	}
	if !info.EmailVerified {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Authentication failed: email not verified by Google")
	}

	name := info.GivenName
	if name == "" {
		name = info.Name
	}
	user, err := upsertGoogleUser(db, info.Email, name, info.Sub)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated. Contact an admin.")
	}

	// persist the credential blob so the Docs export can rebuild a client
	if blob, err := json.Marshal(token); err == nil {
		if err := authRepo.UpdateUserCredentials(db, user.ID, string(blob)); err != nil {
			log.Printf("[WARN] failed to store OAuth credentials: %v", err)
		}
	}

	return IssueTokens(c, db, *user)
}

func fetchUserinfo(client *http.Client) (*googleUserinfo, error) {
	resp, err := client.Get(googleUserinfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("userinfo status %d: %s", resp.StatusCode, string(body))
	}

	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}
