package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/brlpay/wallet-service/internal/logger"
	"github.com/brlpay/wallet-service/internal/models"
)

// UserReadRepository handles user read operations.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByEmail returns the user with the given email, or nil if absent.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, email, name, password_hash, balance, created_at, updated_at, deleted_at
		FROM users
		WHERE email = $1
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, email)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{email},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns the user with the given id, or nil if absent.
func (r *UserReadRepository) GetByID(ctx context.Context, userID int64) (*models.UserDB, error) {
	const query = `
		SELECT user_id, email, name, password_hash, balance, created_at, updated_at, deleted_at
		FROM users
		WHERE user_id = $1
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CountTransactions returns how many transactions the user has sent and received.
func (r *UserReadRepository) CountTransactions(ctx context.Context, userID int64) (sent, received int64, err error) {
	const query = `
		SELECT
			COUNT(*) FILTER (WHERE sent_from_user_id = $1) AS sent,
			COUNT(*) FILTER (WHERE sent_to_user_id = $1)   AS received
		FROM transactions
		WHERE sent_from_user_id = $1 OR sent_to_user_id = $1
	`

	var counts struct {
		Sent     int64 `db:"sent"`
		Received int64 `db:"received"`
	}
	err = r.db.GetContext(ctx, &counts, query, userID)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if err != nil {
		return 0, 0, err
	}
	return counts.Sent, counts.Received, nil
}

// UserWriteRepository handles user write operations. Writes join the
// per-request transaction when one is present in the context.
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

func (r *UserWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new user with zero balance and returns the created row.
func (r *UserWriteRepository) Save(ctx context.Context, email, name, passwordHash string) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (email, name, password_hash, balance, created_at, updated_at)
		VALUES ($1, $2, $3, 0, NOW(), NOW())
		RETURNING user_id, email, name, password_hash, balance, created_at, updated_at, deleted_at
	`
	args := []any{email, name, passwordHash}

	var user models.UserDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &user, query, args...)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{email, name},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update overwrites a user's profile fields and returns the updated row,
// or nil when no such user exists.
func (r *UserWriteRepository) Update(ctx context.Context, userID int64, email, name, passwordHash string) (*models.UserDB, error) {
	const query = `
		UPDATE users
		SET email = $2, name = $3, password_hash = $4, updated_at = NOW()
		WHERE user_id = $1
		RETURNING user_id, email, name, password_hash, balance, created_at, updated_at, deleted_at
	`

	var user models.UserDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &user, query, userID, email, name, passwordHash)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, email, name},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateBalance applies a signed delta to the stored balance in a single
// statement, so concurrent updates cannot lose writes. Returns the updated
// row, or nil when no such user exists. Balances may go negative.
func (r *UserWriteRepository) UpdateBalance(ctx context.Context, userID int64, delta decimal.Decimal) (*models.UserDB, error) {
	const query = `
		UPDATE users
		SET balance = balance + $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING user_id, email, name, password_hash, balance, created_at, updated_at, deleted_at
	`

	var user models.UserDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &user, query, userID, delta)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, delta},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user row. Returns the number of rows deleted.
func (r *UserWriteRepository) Delete(ctx context.Context, userID int64) (int64, error) {
	const query = `DELETE FROM users WHERE user_id = $1`

	res, err := r.executor(ctx).ExecContext(ctx, query, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("user query",
		"query", query,
		"args", []any{userID},
		"result", rowsAffected,
		"error", err,
	)

	return rowsAffected, err
}
