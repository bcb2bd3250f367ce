package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/brlpay/wallet-service/internal/logger"
	"github.com/brlpay/wallet-service/internal/models"
)

var (
	// ErrTransactionNotFound is returned when the referenced transaction
	// does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// TransactionReader defines read operations for transactions.
type TransactionReader interface {
	GetByID(ctx context.Context, id int64) (*models.TransactionDB, error)
	GetByIDWithParties(ctx context.Context, id int64) (*models.TransactionWithParties, error)
	List(ctx context.Context, userID int64, orderBy, order, search string, limit, offset int) ([]models.TransactionWithParties, error)
	Count(ctx context.Context, userID int64, search string) (int64, error)
}

// TransactionWriter defines write operations for transactions.
type TransactionWriter interface {
	Save(ctx context.Context, fromUserID, toUserID int64, value decimal.Decimal, description string, reversed bool) (*models.TransactionDB, error)
	Update(ctx context.Context, id int64, value decimal.Decimal, description string, reversed bool) (*models.TransactionDB, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// RecipientReader resolves transfer recipients by email.
type RecipientReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// MoneyAdder adjusts a user's stored balance by a signed amount.
type MoneyAdder interface {
	AddMoney(ctx context.Context, userID int64, amount decimal.Decimal) (*models.UserDB, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// TransactionService handles transfers, reversals, listing, and event
// publishing.
type TransactionService struct {
	reader      TransactionReader
	writer      TransactionWriter
	users       RecipientReader
	balance     MoneyAdder
	kafkaWriter KafkaWriter
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	reader TransactionReader,
	writer TransactionWriter,
	users RecipientReader,
	balance MoneyAdder,
	kafkaWriter KafkaWriter,
) *TransactionService {
	return &TransactionService{
		reader:      reader,
		writer:      writer,
		users:       users,
		balance:     balance,
		kafkaWriter: kafkaWriter,
	}
}

// publishTransferEvent publishes a transfer event to Kafka. A nil writer
// disables publishing; failures are logged, never surfaced.
func (s *TransactionService) publishTransferEvent(ctx context.Context, txn *models.TransactionDB, operation string) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "transaction_id", txn.TransactionID)
		return
	}

	event := models.TransferEvent{
		EventID:        uuid.NewString(),
		TransactionID:  txn.TransactionID,
		Amount:         txn.ValueBrl.StringFixed(2),
		SentFromUserID: txn.SentFromUserID,
		SentToUserID:   txn.SentToUserID,
		Reversed:       txn.Reversed,
		Operation:      operation,
		Timestamp:      time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal transfer event", "transaction_id", txn.TransactionID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish transfer event", "transaction_id", txn.TransactionID, "error", err)
	} else {
		logger.Log.Infow("transfer event published", "transaction_id", txn.TransactionID, "operation", operation)
	}
}

// Create resolves the recipient by email, persists the transaction row, and
// adjusts the sender's stored balance by +value. The sender is credited, not
// debited: that is the behavior the system has always had, and flipping it is
// a product decision, not a refactor. Both writes join the per-request DB
// transaction, so they commit or roll back together.
func (s *TransactionService) Create(
	ctx context.Context,
	senderID int64,
	value decimal.Decimal,
	description, sentToUserEmail string,
	reversed bool,
) (*models.TransactionDB, error) {
	recipient, err := s.users.GetByEmail(ctx, sentToUserEmail)
	if err != nil {
		logger.Log.Errorw("failed to resolve recipient", "email", sentToUserEmail, "error", err)
		return nil, err
	}
	if recipient == nil {
		return nil, ErrUserNotFound
	}

	txn, err := s.writer.Save(ctx, senderID, recipient.UserID, value, description, reversed)
	if err != nil {
		logger.Log.Errorw("failed to save transaction", "senderID", senderID, "error", err)
		return nil, err
	}

	if _, err := s.balance.AddMoney(ctx, senderID, value); err != nil {
		logger.Log.Errorw("failed to adjust sender balance", "senderID", senderID, "value", value, "error", err)
		return nil, err
	}

	s.publishTransferEvent(ctx, txn, "transfer")

	return txn, nil
}

// CreateReverse creates a counter-entry for an existing transaction: parties
// swapped, same value and description, reversed flag set. The original row is
// never touched. The new sender's (original recipient's) balance is adjusted
// by +value, mirroring Create.
func (s *TransactionService) CreateReverse(ctx context.Context, transactionID int64) (*models.TransactionDB, error) {
	original, err := s.reader.GetByIDWithParties(ctx, transactionID)
	if err != nil {
		logger.Log.Errorw("failed to load transaction to reverse", "id", transactionID, "error", err)
		return nil, err
	}
	if original == nil {
		return nil, ErrTransactionNotFound
	}

	txn, err := s.writer.Save(ctx,
		original.SentToUserID,
		original.SentFromUserID,
		original.ValueBrl,
		original.Description,
		true,
	)
	if err != nil {
		logger.Log.Errorw("failed to save reverse transaction", "id", transactionID, "error", err)
		return nil, err
	}

	if _, err := s.balance.AddMoney(ctx, original.SentToUserID, original.ValueBrl); err != nil {
		logger.Log.Errorw("failed to adjust balance for reversal", "userID", original.SentToUserID, "error", err)
		return nil, err
	}

	s.publishTransferEvent(ctx, txn, "reversal")

	return txn, nil
}

// List returns one page of the caller's transactions. Page and limit clamp
// to a minimum of 1; totalPages is ceil(total/limit).
func (s *TransactionService) List(
	ctx context.Context,
	userID int64,
	page, limit int,
	orderBy, order, search string,
) (*models.TransactionPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	data, err := s.reader.List(ctx, userID, orderBy, order, search, limit, (page-1)*limit)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "userID", userID, "error", err)
		return nil, err
	}

	total, err := s.reader.Count(ctx, userID, search)
	if err != nil {
		logger.Log.Errorw("failed to count transactions", "userID", userID, "error", err)
		return nil, err
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return &models.TransactionPage{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Get returns a transaction by id, or ErrTransactionNotFound.
func (s *TransactionService) Get(ctx context.Context, id int64) (*models.TransactionDB, error) {
	txn, err := s.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get transaction", "id", id, "error", err)
		return nil, err
	}
	if txn == nil {
		return nil, ErrTransactionNotFound
	}
	return txn, nil
}

// Update overwrites a transaction's mutable fields.
func (s *TransactionService) Update(ctx context.Context, id int64, value decimal.Decimal, description string, reversed bool) (*models.TransactionDB, error) {
	txn, err := s.writer.Update(ctx, id, value, description, reversed)
	if err != nil {
		logger.Log.Errorw("failed to update transaction", "id", id, "error", err)
		return nil, err
	}
	if txn == nil {
		return nil, ErrTransactionNotFound
	}
	return txn, nil
}

// Remove deletes a transaction by id.
func (s *TransactionService) Remove(ctx context.Context, id int64) error {
	rows, err := s.writer.Delete(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to delete transaction", "id", id, "error", err)
		return err
	}
	if rows == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
