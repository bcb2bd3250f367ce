package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDB represents a transfer record in the database. A reversal is
// a brand-new row with the parties swapped and Reversed set; the original
// row is never mutated.
type TransactionDB struct {
	TransactionID  int64           `json:"id" db:"transaction_id"`
	ValueBrl       decimal.Decimal `json:"valueBrl" db:"value_brl"`
	Description    string          `json:"description" db:"description"`
	Reversed       bool            `json:"reversed" db:"reversed"`
	SentFromUserID int64           `json:"sentFromUserId" db:"sent_from_user_id"`
	SentToUserID   int64           `json:"sentToUserId" db:"sent_to_user_id"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
}

// UserSummary is the party projection attached to listed transactions.
type UserSummary struct {
	UserID int64  `json:"id" db:"user_id"`
	Name   string `json:"name" db:"name"`
	Email  string `json:"email" db:"email"`
}

// TransactionWithParties is a transaction row joined with both party summaries.
type TransactionWithParties struct {
	TransactionDB
	SentFromUser UserSummary `json:"sentFromUser"`
	SentToUser   UserSummary `json:"sentToUser"`
}

// TransactionPage is one page of a user's transaction listing.
type TransactionPage struct {
	Data       []TransactionWithParties `json:"data"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
	TotalPages int64                    `json:"totalPages"`
}
