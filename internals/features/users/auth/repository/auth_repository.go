// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"crypto/hmac"
	"crypto/sha256"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "roadmapguide_backend/internals/features/users/auth/model"
	userModel "roadmapguide_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByGoogleID(db *gorm.DB, googleID string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("google_id = ?", googleID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, id uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

// UpdateUserCredentials stores the serialized OAuth token on the user row.
func UpdateUserCredentials(db *gorm.DB, userID uuid.UUID, credentials string) error {
	return db.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Update("credentials", credentials).Error
}

/* ====================== REFRESH TOKEN ====================== */

func HashRefreshToken(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

func CreateRefreshToken(db *gorm.DB, rt *authModel.RefreshToken) error {
	return db.Create(rt).Error
}

func FindRefreshTokenByHash(db *gorm.DB, hash []byte) (*authModel.RefreshToken, error) {
	var rt authModel.RefreshToken
	if err := db.Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", hash, time.Now()).
		First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func RevokeRefreshToken(db *gorm.DB, hash []byte) error {
	now := time.Now()
	return db.Model(&authModel.RefreshToken{}).
		Where("token_hash = ?", hash).
		Update("revoked_at", &now).Error
}

/* ====================== BLACKLIST ====================== */

func BlacklistToken(db *gorm.DB, token string, ttl time.Duration) error {
	entry := authModel.TokenBlacklist{
		Token:     token,
		ExpiredAt: time.Now().Add(ttl),
	}
	// unique(token): a second logout of the same token is a no-op
	return db.Where("token = ?", token).FirstOrCreate(&entry).Error
}

func IsTokenBlacklisted(db *gorm.DB, token string) (bool, error) {
	var count int64
	err := db.Model(&authModel.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", token, time.Now()).
		Count(&count).Error
	return count > 0, err
}

func DeleteExpiredBlacklist(db *gorm.DB) (int64, error) {
	res := db.Unscoped().
		Where("expired_at <= ?", time.Now()).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
