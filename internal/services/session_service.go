package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sellerhub-backend/internal/models"
	"sellerhub-backend/internal/utils"
)

// Authorization failures during sign-in. Both force a sign-out of the
// partially established session before they surface.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotASeller         = errors.New("not registered as a seller")
	ErrAccountInactive    = errors.New("seller account is inactive")
)

// SessionService handles seller sign-in, sign-out and current-seller
// resolution on top of the identity layer.
type SessionService struct {
	db   *sql.DB
	auth *AuthService
}

// NewSessionService creates a new session service
func NewSessionService(db *sql.DB, auth *AuthService) *SessionService {
	return &SessionService{db: db, auth: auth}
}

// SignIn authenticates the credentials, establishes a session, then
// resolves the seller record for the authenticated user. If the user is
// not a registered seller, or the seller is inactive, the session is
// torn down again before the error is returned so no
// authenticated-but-unauthorized state persists.
func (s *SessionService) SignIn(login *models.SellerLogin) (*models.Seller, string, error) {
	if err := utils.ValidateStruct(login); err != nil {
		return nil, "", fmt.Errorf("validation error: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(login.Email))

	user := &models.User{}
	err := s.db.QueryRow(
		"SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = ?",
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(login.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.auth.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to establish session: %w", err)
	}

	seller, err := s.SellerByUserID(user.ID)
	if err != nil {
		s.auth.BlacklistToken(token)
		return nil, "", err
	}
	if seller == nil {
		s.auth.BlacklistToken(token)
		return nil, "", ErrNotASeller
	}
	if !seller.IsActive {
		s.auth.BlacklistToken(token)
		return nil, "", ErrAccountInactive
	}

	return seller, token, nil
}

// CurrentSeller resolves the seller for a session token. A missing or
// invalid token, a missing seller row, or an inactive seller all return
// (nil, nil): "not signed in" is a state, not an error. Only a backend
// fault is an error.
func (s *SessionService) CurrentSeller(token string) (*models.Seller, error) {
	if token == "" {
		return nil, nil
	}

	claims, err := s.auth.ValidateToken(token)
	if err != nil {
		return nil, nil
	}

	seller, err := s.SellerByUserID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if seller == nil || !seller.IsActive {
		return nil, nil
	}
	return seller, nil
}

// SignOut terminates the session. It is idempotent and succeeds even
// for absent or already-revoked tokens.
func (s *SessionService) SignOut(token string) {
	if token == "" {
		return
	}
	s.auth.BlacklistToken(token)
}

// Register creates a user plus seller row. New sellers start active but
// unverified.
func (s *SessionService) Register(reg *models.SellerRegistration) (*models.Seller, error) {
	if err := utils.ValidateStruct(reg); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(reg.Email))

	var exists bool
	if err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", email).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, errors.New("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	userID := uuid.New().String()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO users (id, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		userID, email, string(hash), now, now,
	); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	seller := &models.Seller{
		ID:         uuid.New().String(),
		UserID:     userID,
		StoreName:  strings.TrimSpace(reg.StoreName),
		OwnerName:  strings.TrimSpace(reg.OwnerName),
		Email:      email,
		Phone:      strings.TrimSpace(reg.Phone),
		IsActive:   true,
		IsVerified: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := tx.Exec(`
		INSERT INTO sellers (id, user_id, store_name, owner_name, email, phone, is_active, is_verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seller.ID, seller.UserID, seller.StoreName, seller.OwnerName, seller.Email,
		seller.Phone, seller.IsActive, seller.IsVerified, seller.CreatedAt, seller.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to create seller: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit registration: %w", err)
	}

	return seller, nil
}

// SellerByUserID retrieves the seller owned by a user, or nil when the
// user has no seller record.
func (s *SessionService) SellerByUserID(userID string) (*models.Seller, error) {
	seller := &models.Seller{}
	err := s.db.QueryRow(`
		SELECT id, user_id, store_name, owner_name, email, phone, is_active, is_verified, created_at, updated_at
		FROM sellers WHERE user_id = ?`, userID,
	).Scan(
		&seller.ID, &seller.UserID, &seller.StoreName, &seller.OwnerName, &seller.Email,
		&seller.Phone, &seller.IsActive, &seller.IsVerified, &seller.CreatedAt, &seller.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}
	return seller, nil
}
