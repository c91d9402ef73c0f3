package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"golang.org/x/oauth2"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"roadmapguide_backend/internals/configs"
	userModel "roadmapguide_backend/internals/features/users/user/model"
)

var ErrNoCredentials = errors.New("user has no stored Google credentials")

// DocsExporter writes a roadmap document into the user's Drive. The
// interface exists so the controller can be exercised without Google.
type DocsExporter interface {
	CreateDocument(ctx context.Context, title, body string) (string, error)
	ShareDocument(ctx context.Context, docID, email string) error
}

// GoogleDocsExporter is the production exporter, backed by the Docs and
// Drive APIs using the OAuth token captured at sign-in.
type GoogleDocsExporter struct {
	ts oauth2.TokenSource
}

func NewGoogleDocsExporter(ts oauth2.TokenSource) *GoogleDocsExporter {
	return &GoogleDocsExporter{ts: ts}
}

func (e *GoogleDocsExporter) CreateDocument(ctx context.Context, title, body string) (string, error) {
	svc, err := docs.NewService(ctx, option.WithTokenSource(e.ts))
	if err != nil {
		return "", fmt.Errorf("init docs client: %w", err)
	}

	doc, err := svc.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}

	// a fresh document has a single empty paragraph; index 1 is the start
	_, err = svc.Documents.BatchUpdate(doc.DocumentId, &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{
			{
				InsertText: &docs.InsertTextRequest{
					Location: &docs.Location{Index: 1},
					Text:     body,
				},
			},
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("write document body: %w", err)
	}

	return doc.DocumentId, nil
}

func (e *GoogleDocsExporter) ShareDocument(ctx context.Context, docID, email string) error {
	svc, err := drive.NewService(ctx, option.WithTokenSource(e.ts))
	if err != nil {
		return fmt.Errorf("init drive client: %w", err)
	}

	_, err = svc.Permissions.Create(docID, &drive.Permission{
		Type:         "user",
		Role:         "writer",
		EmailAddress: email,
	}).SendNotificationEmail(false).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("share document: %w", err)
	}
	return nil
}

// UserTokenSource rebuilds an auto-refreshing token source from the
// credential blob stored on the user row. Refreshed tokens are written back
// so the stored blob does not go stale.
func UserTokenSource(ctx context.Context, db *gorm.DB, user *userModel.UserModel) (oauth2.TokenSource, error) {
	if user.Credentials == nil || *user.Credentials == "" {
		return nil, ErrNoCredentials
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(*user.Credentials), &token); err != nil {
		return nil, fmt.Errorf("decode stored credentials: %w", err)
	}

	cfg := configs.GoogleOAuthConfig()
	base := cfg.TokenSource(ctx, &token)

	return &persistingTokenSource{
		base:   base,
		db:     db,
		user:   user,
		cached: token.AccessToken,
	}, nil
}

type persistingTokenSource struct {
	base   oauth2.TokenSource
	db     *gorm.DB
	user   *userModel.UserModel
	cached string
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	if token.AccessToken != s.cached {
		s.cached = token.AccessToken
		if blob, mErr := json.Marshal(token); mErr == nil {
			if dbErr := s.db.Model(&userModel.UserModel{}).
				Where("id = ?", s.user.ID).
				Update("credentials", string(blob)).Error; dbErr != nil {
				log.Printf("[WARN] Failed to persist refreshed Google token for user %s: %v", s.user.ID, dbErr)
			}
		}
	}
	return token, nil
}
