package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserDB represents a user record in the database.
type UserDB struct {
	UserID       int64           `json:"id" db:"user_id"`                  // Primary key
	Email        string          `json:"email" db:"email"`                 // Unique email, identity key for lookup
	Name         string          `json:"name" db:"name"`                   // Display name
	PasswordHash string          `json:"-" db:"password_hash"`             // Hashed password, never the plaintext
	Balance      decimal.Decimal `json:"accountValueBrl" db:"balance"`     // Account balance in BRL
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`       // Creation timestamp
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`       // Last update timestamp
	DeletedAt    *time.Time      `json:"deleted_at,omitempty" db:"deleted_at"` // Soft-delete timestamp, nil while active
}

// UserWithStats is a user plus derived transaction counts, computed by
// count queries after the fetch rather than relation loading.
type UserWithStats struct {
	UserDB
	TotalSentTransactions     int64 `json:"totalSentTransactions"`
	TotalReceivedTransactions int64 `json:"totalReceivedTransactions"`
}
