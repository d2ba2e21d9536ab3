package models

import "time"

// User represents an authentication account in the identity store.
// Sellers reference a user one-to-one; a user without a seller row
// cannot use this application.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Seller represents a store account permitted to manage its own
// products and view orders containing them.
type Seller struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"userId" db:"user_id"`
	StoreName  string    `json:"storeName" db:"store_name"`
	OwnerName  string    `json:"ownerName" db:"owner_name"`
	Email      string    `json:"email" db:"email"`
	Phone      string    `json:"phone" db:"phone"`
	IsActive   bool      `json:"isActive" db:"is_active"`
	IsVerified bool      `json:"isVerified" db:"is_verified"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// SellerRegistration represents seller sign-up data
type SellerRegistration struct {
	Email     string `json:"email" validate:"required,email,max=100"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	StoreName string `json:"storeName" validate:"required,min=2,max=100"`
	OwnerName string `json:"ownerName" validate:"required,min=2,max=100"`
	Phone     string `json:"phone" validate:"max=20"`
}

// SellerLogin represents seller sign-in data
type SellerLogin struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,max=128"`
}
