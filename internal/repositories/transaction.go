package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/brlpay/wallet-service/internal/logger"
	"github.com/brlpay/wallet-service/internal/models"
)

// Sortable listing columns, keyed by their API names. Anything else falls
// back to creation time.
var transactionOrderColumns = map[string]string{
	"createdAt":   "t.created_at",
	"valueBrl":    "t.value_brl",
	"description": "t.description",
	"id":          "t.transaction_id",
}

// transactionPartyRow is the flat scan target for the listing JOIN.
type transactionPartyRow struct {
	TransactionID  int64           `db:"transaction_id"`
	ValueBrl       decimal.Decimal `db:"value_brl"`
	Description    string          `db:"description"`
	Reversed       bool            `db:"reversed"`
	SentFromUserID int64           `db:"sent_from_user_id"`
	SentToUserID   int64           `db:"sent_to_user_id"`
	CreatedAt      time.Time       `db:"created_at"`
	FromUserID     int64           `db:"from_user_id"`
	FromName       string          `db:"from_name"`
	FromEmail      string          `db:"from_email"`
	ToUserID       int64           `db:"to_user_id"`
	ToName         string          `db:"to_name"`
	ToEmail        string          `db:"to_email"`
}

func (row transactionPartyRow) toModel() models.TransactionWithParties {
	return models.TransactionWithParties{
		TransactionDB: models.TransactionDB{
			TransactionID:  row.TransactionID,
			ValueBrl:       row.ValueBrl,
			Description:    row.Description,
			Reversed:       row.Reversed,
			SentFromUserID: row.SentFromUserID,
			SentToUserID:   row.SentToUserID,
			CreatedAt:      row.CreatedAt,
		},
		SentFromUser: models.UserSummary{UserID: row.FromUserID, Name: row.FromName, Email: row.FromEmail},
		SentToUser:   models.UserSummary{UserID: row.ToUserID, Name: row.ToName, Email: row.ToEmail},
	}
}

// TransactionReadRepository handles transaction read operations.
type TransactionReadRepository struct {
	db *sqlx.DB
}

func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// GetByID returns the transaction with the given id, or nil if absent.
func (r *TransactionReadRepository) GetByID(ctx context.Context, id int64) (*models.TransactionDB, error) {
	const query = `
		SELECT transaction_id, value_brl, description, reversed,
		       sent_from_user_id, sent_to_user_id, created_at
		FROM transactions
		WHERE transaction_id = $1
		LIMIT 1
	`

	var txn models.TransactionDB
	err := r.db.GetContext(ctx, &txn, query, id)

	logger.Log.Infow("transaction query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// GetByIDWithParties returns the transaction joined with both party
// summaries, or nil if absent.
func (r *TransactionReadRepository) GetByIDWithParties(ctx context.Context, id int64) (*models.TransactionWithParties, error) {
	const query = `
		SELECT t.transaction_id, t.value_brl, t.description, t.reversed,
		       t.sent_from_user_id, t.sent_to_user_id, t.created_at,
		       f.user_id AS from_user_id, f.name AS from_name, f.email AS from_email,
		       u.user_id AS to_user_id, u.name AS to_name, u.email AS to_email
		FROM transactions t
		JOIN users f ON f.user_id = t.sent_from_user_id
		JOIN users u ON u.user_id = t.sent_to_user_id
		WHERE t.transaction_id = $1
		LIMIT 1
	`

	var row transactionPartyRow
	err := r.db.GetContext(ctx, &row, query, id)

	logger.Log.Infow("transaction query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	txn := row.toModel()
	return &txn, nil
}

// List returns one page of the user's transactions. The caller must be the
// sender or the recipient of every returned row; the description filter is a
// case-insensitive substring match. The order column comes from a fixed
// whitelist, never from the caller's raw input.
func (r *TransactionReadRepository) List(
	ctx context.Context,
	userID int64,
	orderBy, order, search string,
	limit, offset int,
) ([]models.TransactionWithParties, error) {
	orderCol, ok := transactionOrderColumns[orderBy]
	if !ok {
		orderCol = "t.created_at"
	}
	dir := "ASC"
	if strings.EqualFold(order, "desc") {
		dir = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT t.transaction_id, t.value_brl, t.description, t.reversed,
		       t.sent_from_user_id, t.sent_to_user_id, t.created_at,
		       f.user_id AS from_user_id, f.name AS from_name, f.email AS from_email,
		       u.user_id AS to_user_id, u.name AS to_name, u.email AS to_email
		FROM transactions t
		JOIN users f ON f.user_id = t.sent_from_user_id
		JOIN users u ON u.user_id = t.sent_to_user_id
		WHERE (t.sent_from_user_id = $1 OR t.sent_to_user_id = $1)
		  AND t.description ILIKE '%%' || $2 || '%%'
		ORDER BY %s %s
		LIMIT $3 OFFSET $4
	`, orderCol, dir)

	var rows []transactionPartyRow
	err := r.db.SelectContext(ctx, &rows, query, userID, search, limit, offset)

	logger.Log.Infow("transaction query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, search, limit, offset},
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	txns := make([]models.TransactionWithParties, 0, len(rows))
	for _, row := range rows {
		txns = append(txns, row.toModel())
	}
	return txns, nil
}

// Count returns the size of the filtered set List paginates over.
func (r *TransactionReadRepository) Count(ctx context.Context, userID int64, search string) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM transactions t
		WHERE (t.sent_from_user_id = $1 OR t.sent_to_user_id = $1)
		  AND t.description ILIKE '%' || $2 || '%'
	`

	var total int64
	err := r.db.GetContext(ctx, &total, query, userID, search)

	logger.Log.Infow("transaction query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, search},
		"result", total,
		"error", err,
	)

	if err != nil {
		return 0, err
	}
	return total, nil
}

// TransactionWriteRepository handles transaction write operations. Writes
// join the per-request transaction when one is present in the context.
type TransactionWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTransactionWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db, txGetter: txGetter}
}

func (r *TransactionWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new transaction row and returns it.
func (r *TransactionWriteRepository) Save(
	ctx context.Context,
	fromUserID, toUserID int64,
	value decimal.Decimal,
	description string,
	reversed bool,
) (*models.TransactionDB, error) {
	const query = `
		INSERT INTO transactions (value_brl, description, reversed, sent_from_user_id, sent_to_user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING transaction_id, value_brl, description, reversed, sent_from_user_id, sent_to_user_id, created_at
	`

	var txn models.TransactionDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &txn, query, value, description, reversed, fromUserID, toUserID)

	logger.Log.Infow("transaction query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{value, description, reversed, fromUserID, toUserID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// Update overwrites a transaction row and returns it, or nil when no such
// row exists.
func (r *TransactionWriteRepository) Update(
	ctx context.Context,
	id int64,
	value decimal.Decimal,
	description string,
	reversed bool,
) (*models.TransactionDB, error) {
	const query = `
		UPDATE transactions
		SET value_brl = $2, description = $3, reversed = $4
		WHERE transaction_id = $1
		RETURNING transaction_id, value_brl, description, reversed, sent_from_user_id, sent_to_user_id, created_at
	`

	var txn models.TransactionDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &txn, query, id, value, description, reversed)

	logger.Log.Infow("transaction query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, value, description, reversed},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// Delete removes a transaction row. Returns the number of rows deleted.
func (r *TransactionWriteRepository) Delete(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM transactions WHERE transaction_id = $1`

	res, err := r.executor(ctx).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("transaction query",
		"query", query,
		"args", []any{id},
		"result", rowsAffected,
		"error", err,
	)

	return rowsAffected, err
}
