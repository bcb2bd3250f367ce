package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/brlpay/wallet-service/internal/logger"
	"github.com/brlpay/wallet-service/internal/models"
)

// UserReader defines read-only user operations for UserService.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	CountTransactions(ctx context.Context, userID int64) (sent, received int64, err error)
}

// BalanceWriter applies a signed delta to a stored balance atomically.
type BalanceWriter interface {
	UpdateBalance(ctx context.Context, userID int64, delta decimal.Decimal) (*models.UserDB, error)
}

// UserCache is the Redis read-through cache for user lookups. Nil disables
// caching.
type UserCache interface {
	GetByEmail(ctx context.Context, email string) (*models.UserWithStats, error)
	Set(ctx context.Context, user *models.UserWithStats) error
	Delete(ctx context.Context, email string) error
}

// UserService owns balance mutation and user lookups.
type UserService struct {
	reader UserReader
	writer BalanceWriter
	cache  UserCache
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer BalanceWriter, cache UserCache) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
		cache:  cache,
	}
}

// AddMoney adds a signed amount to the user's stored balance and returns the
// updated record. A negative amount is a debit. There is no bound check;
// balances may go negative.
func (svc *UserService) AddMoney(ctx context.Context, userID int64, amount decimal.Decimal) (*models.UserDB, error) {
	change := models.NewBalanceChange(amount)

	user, err := svc.writer.UpdateBalance(ctx, userID, change.Delta())
	if err != nil {
		logger.Log.Errorw("failed to update balance",
			"userID", userID, "direction", change.Direction, "amount", change.Amount, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if svc.cache != nil {
		if err := svc.cache.Delete(ctx, user.Email); err != nil {
			logger.Log.Warnw("failed to invalidate user cache", "email", user.Email, "error", err)
		}
	}

	return user, nil
}

// GetUserByEmail returns the user with derived transaction counts, reading
// through the cache.
func (svc *UserService) GetUserByEmail(ctx context.Context, email string) (*models.UserWithStats, error) {
	if svc.cache != nil {
		cached, err := svc.cache.GetByEmail(ctx, email)
		if err != nil {
			logger.Log.Warnw("user cache read failed", "email", email, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "email", email, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	sent, received, err := svc.reader.CountTransactions(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to count transactions", "userID", user.UserID, "error", err)
		return nil, err
	}

	stats := &models.UserWithStats{
		UserDB:                    *user,
		TotalSentTransactions:     sent,
		TotalReceivedTransactions: received,
	}

	if svc.cache != nil {
		if err := svc.cache.Set(ctx, stats); err != nil {
			logger.Log.Warnw("failed to cache user", "email", email, "error", err)
		}
	}

	return stats, nil
}
