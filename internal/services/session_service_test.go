package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerhub-backend/internal/models"
)

func TestSignIn(t *testing.T) {
	t.Run("active seller signs in", func(t *testing.T) {
		db := newTestDB(t)
		auth := NewAuthService("test-secret", 3600)
		service := NewSessionService(db, auth)

		userID := insertUser(t, db, "shop@example.com", "password123")
		insertSeller(t, db, userID, "Test Store", true)

		seller, token, err := service.SignIn(&models.SellerLogin{
			Email:    "shop@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		require.NotNil(t, seller)
		assert.Equal(t, "Test Store", seller.StoreName)
		assert.NotEmpty(t, token)

		current, err := service.CurrentSeller(token)
		require.NoError(t, err)
		require.NotNil(t, current)
		assert.Equal(t, seller.ID, current.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		db := newTestDB(t)
		service := NewSessionService(db, NewAuthService("test-secret", 3600))

		userID := insertUser(t, db, "shop@example.com", "password123")
		insertSeller(t, db, userID, "Test Store", true)

		_, _, err := service.SignIn(&models.SellerLogin{
			Email:    "shop@example.com",
			Password: "wrong-password",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		db := newTestDB(t)
		service := NewSessionService(db, NewAuthService("test-secret", 3600))

		_, _, err := service.SignIn(&models.SellerLogin{
			Email:    "nobody@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("user without seller row gets ErrNotASeller and no live session", func(t *testing.T) {
		db := newTestDB(t)
		auth := NewAuthService("test-secret", 3600)
		service := NewSessionService(db, auth)

		userID := insertUser(t, db, "buyer@example.com", "password123")

		seller, token, err := service.SignIn(&models.SellerLogin{
			Email:    "buyer@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, ErrNotASeller)
		assert.Nil(t, seller)
		assert.Empty(t, token)

		// No session may survive the failed sign-in: any token issued
		// during it must already be revoked.
		user := &models.User{ID: userID, Email: "buyer@example.com"}
		probe, genErr := auth.GenerateToken(user)
		require.NoError(t, genErr)
		current, resErr := service.CurrentSeller(probe)
		require.NoError(t, resErr)
		assert.Nil(t, current)
	})

	t.Run("inactive seller gets ErrAccountInactive and no live session", func(t *testing.T) {
		db := newTestDB(t)
		auth := NewAuthService("test-secret", 3600)
		service := NewSessionService(db, auth)

		userID := insertUser(t, db, "dormant@example.com", "password123")
		insertSeller(t, db, userID, "Dormant Store", false)

		seller, token, err := service.SignIn(&models.SellerLogin{
			Email:    "dormant@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, ErrAccountInactive)
		assert.Nil(t, seller)
		assert.Empty(t, token)
	})

	t.Run("issued token is revoked on seller resolution failure", func(t *testing.T) {
		db := newTestDB(t)
		auth := NewAuthService("test-secret", 3600)
		service := NewSessionService(db, auth)

		insertUser(t, db, "buyer@example.com", "password123")

		_, _, err := service.SignIn(&models.SellerLogin{
			Email:    "buyer@example.com",
			Password: "password123",
		})
		require.ErrorIs(t, err, ErrNotASeller)

		// The blacklist holds exactly the token issued and torn down
		// during the failed sign-in.
		auth.blacklistMutex.Lock()
		blacklisted := len(auth.blacklistedTokens)
		auth.blacklistMutex.Unlock()
		assert.Equal(t, 1, blacklisted)
	})
}

func TestCurrentSeller(t *testing.T) {
	t.Run("empty token is not an error", func(t *testing.T) {
		db := newTestDB(t)
		service := NewSessionService(db, NewAuthService("test-secret", 3600))

		seller, err := service.CurrentSeller("")
		require.NoError(t, err)
		assert.Nil(t, seller)
	})

	t.Run("garbage token is not an error", func(t *testing.T) {
		db := newTestDB(t)
		service := NewSessionService(db, NewAuthService("test-secret", 3600))

		seller, err := service.CurrentSeller("not-a-jwt")
		require.NoError(t, err)
		assert.Nil(t, seller)
	})

	t.Run("seller deactivated after sign-in resolves to nil", func(t *testing.T) {
		db := newTestDB(t)
		auth := NewAuthService("test-secret", 3600)
		service := NewSessionService(db, auth)

		userID := insertUser(t, db, "shop@example.com", "password123")
		insertSeller(t, db, userID, "Test Store", true)

		_, token, err := service.SignIn(&models.SellerLogin{
			Email:    "shop@example.com",
			Password: "password123",
		})
		require.NoError(t, err)

		_, err = db.Exec("UPDATE sellers SET is_active = 0 WHERE user_id = ?", userID)
		require.NoError(t, err)

		current, err := service.CurrentSeller(token)
		require.NoError(t, err)
		assert.Nil(t, current)
	})
}

func TestSignOut(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService("test-secret", 3600)
	service := NewSessionService(db, auth)

	userID := insertUser(t, db, "shop@example.com", "password123")
	insertSeller(t, db, userID, "Test Store", true)

	_, token, err := service.SignIn(&models.SellerLogin{
		Email:    "shop@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	service.SignOut(token)

	current, err := service.CurrentSeller(token)
	require.NoError(t, err)
	assert.Nil(t, current)

	// Signing out again is a no-op.
	service.SignOut(token)
	service.SignOut("")
}

func TestRegister(t *testing.T) {
	t.Run("creates user and seller", func(t *testing.T) {
		db := newTestDB(t)
		service := NewSessionService(db, NewAuthService("test-secret", 3600))

		seller, err := service.Register(&models.SellerRegistration{
			Email:     "New@Example.com",
			Password:  "password123",
			StoreName: "New Store",
			OwnerName: "New Owner",
		})
		require.NoError(t, err)
		assert.Equal(t, "New Store", seller.StoreName)
		assert.True(t, seller.IsActive)
		assert.False(t, seller.IsVerified)
		assert.Equal(t, "new@example.com", seller.Email)
	})

	t.Run("duplicate email fails", func(t *testing.T) {
		db := newTestDB(t)
		service := NewSessionService(db, NewAuthService("test-secret", 3600))

		reg := &models.SellerRegistration{
			Email:     "dup@example.com",
			Password:  "password123",
			StoreName: "Store One",
			OwnerName: "Owner One",
		}
		_, err := service.Register(reg)
		require.NoError(t, err)

		_, err = service.Register(reg)
		assert.Error(t, err)
	})

	t.Run("invalid payload fails validation", func(t *testing.T) {
		db := newTestDB(t)
		service := NewSessionService(db, NewAuthService("test-secret", 3600))

		_, err := service.Register(&models.SellerRegistration{
			Email:     "not-an-email",
			Password:  "short",
			StoreName: "S",
			OwnerName: "",
		})
		assert.Error(t, err)
	})
}
