package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authModel "roadmapguide_backend/internals/features/users/auth/model"
	userModel "roadmapguide_backend/internals/features/users/user/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.RefreshToken{},
		&authModel.TokenBlacklist{},
	))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *userModel.UserModel {
	t.Helper()
	user := userModel.UserModel{UserName: "tester", Email: email, Password: "x"}
	require.NoError(t, CreateUser(db, &user))
	return &user
}

func TestHashRefreshTokenIsDeterministicPerSecret(t *testing.T) {
	a := HashRefreshToken("token-1", "secret")
	b := HashRefreshToken("token-1", "secret")
	c := HashRefreshToken("token-1", "other-secret")
	d := HashRefreshToken("token-2", "secret")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.Len(t, a, 32) // sha256
}

func TestRefreshTokenLifecycle(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "rt@example.com")

	hash := HashRefreshToken("raw-refresh-token", "secret")
	require.NoError(t, CreateRefreshToken(db, &authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	found, err := FindRefreshTokenByHash(db, hash)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)

	require.NoError(t, RevokeRefreshToken(db, hash))

	_, err = FindRefreshTokenByHash(db, hash)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindRefreshTokenByHashIgnoresExpired(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "expired@example.com")

	hash := HashRefreshToken("stale", "secret")
	require.NoError(t, CreateRefreshToken(db, &authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := FindRefreshTokenByHash(db, hash)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBlacklistRoundTrip(t *testing.T) {
	db := openTestDB(t)

	blacklisted, err := IsTokenBlacklisted(db, "some-token")
	require.NoError(t, err)
	assert.False(t, blacklisted)

	require.NoError(t, BlacklistToken(db, "some-token", time.Hour))
	// idempotent
	require.NoError(t, BlacklistToken(db, "some-token", time.Hour))

	blacklisted, err = IsTokenBlacklisted(db, "some-token")
	require.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestDeleteExpiredBlacklist(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, BlacklistToken(db, "stale-token", -time.Minute))
	require.NoError(t, BlacklistToken(db, "fresh-token", time.Hour))

	removed, err := DeleteExpiredBlacklist(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	fresh, err := IsTokenBlacklisted(db, "fresh-token")
	require.NoError(t, err)
	assert.True(t, fresh)
}

func TestUpdateUserCredentials(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "creds@example.com")

	require.NoError(t, UpdateUserCredentials(db, user.ID, `{"access_token":"abc"}`))

	reloaded, err := FindUserByID(db, user.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Credentials)
	assert.Contains(t, *reloaded.Credentials, "abc")
}
