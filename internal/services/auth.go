package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/brlpay/wallet-service/internal/logger"
	"github.com/brlpay/wallet-service/internal/models"
)

// Error variables
var (
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailAlreadyInUse       = errors.New("email already in use")
	ErrPasswordsDoNotMatch     = errors.New("passwords do not match")
	ErrPasswordRequired        = errors.New("password is required")
	ErrConfirmPasswordRequired = errors.New("confirm password is required")
	ErrInvalidPassword         = errors.New("invalid password")
)

// AuthUserReader defines read-only user operations needed by AuthService.
type AuthUserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID int64) (*models.UserDB, error)
}

// AuthUserWriter defines write operations needed by AuthService.
type AuthUserWriter interface {
	Save(ctx context.Context, email, name, passwordHash string) (*models.UserDB, error)
	Update(ctx context.Context, userID int64, email, name, passwordHash string) (*models.UserDB, error)
	Delete(ctx context.Context, userID int64) (int64, error)
}

// TokenGenerator issues bearer tokens for authenticated users.
type TokenGenerator interface {
	Generate(ctx context.Context, userID int64, email string) (string, error)
}

// UserCacheInvalidator drops cached user lookups after a write. Nil disables
// invalidation.
type UserCacheInvalidator interface {
	Delete(ctx context.Context, email string) error
}

// AuthService handles registration, login, profile updates, and account
// deletion.
type AuthService struct {
	reader AuthUserReader
	writer AuthUserWriter
	jwt    TokenGenerator
	cache  UserCacheInvalidator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader AuthUserReader, writer AuthUserWriter, jwt TokenGenerator, cache UserCacheInvalidator) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		jwt:    jwt,
		cache:  cache,
	}
}

func (svc *AuthService) invalidate(ctx context.Context, email string) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Delete(ctx, email); err != nil {
		logger.Log.Warnw("failed to invalidate user cache", "email", email, "error", err)
	}
}

// Register creates a new user with zero balance and returns a token plus the
// stored user. Mismatched passwords create no row.
func (svc *AuthService) Register(ctx context.Context, email, password, confirmPassword, name string) (string, *models.UserDB, error) {
	if password != confirmPassword {
		return "", nil, ErrPasswordsDoNotMatch
	}

	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return "", nil, err
	}
	if existing != nil {
		logger.Log.Errorw("email already in use", "email", email)
		return "", nil, ErrEmailAlreadyInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return "", nil, err
	}

	user, err := svc.writer.Save(ctx, email, name, string(hashedPassword))
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return "", nil, err
	}

	token, err := svc.jwt.Generate(ctx, user.UserID, user.Email)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return "", nil, err
	}

	return token, user, nil
}

// Login authenticates a user and returns a token plus the stored user.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, *models.UserDB, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", nil, err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "email", email)
		return "", nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "email", email)
		return "", nil, ErrInvalidPassword
	}

	token, err := svc.jwt.Generate(ctx, user.UserID, user.Email)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return "", nil, err
	}

	return token, user, nil
}

// UpdateUser re-hashes the password and overwrites all profile fields.
// Password presence checks resolve strictly before hashing.
func (svc *AuthService) UpdateUser(ctx context.Context, userID int64, email, password, confirmPassword, name string) (*models.UserDB, error) {
	existing, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	if password == "" {
		return nil, ErrPasswordRequired
	}
	if confirmPassword == "" {
		return nil, ErrConfirmPasswordRequired
	}
	if password != confirmPassword {
		return nil, ErrPasswordsDoNotMatch
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err := svc.writer.Update(ctx, userID, email, name, string(hashedPassword))
	if err != nil {
		logger.Log.Errorw("failed to update user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	svc.invalidate(ctx, existing.Email)
	if user.Email != existing.Email {
		svc.invalidate(ctx, user.Email)
	}

	return user, nil
}

// DeleteUser removes the authenticated user's row.
func (svc *AuthService) DeleteUser(ctx context.Context, userID int64, email string) error {
	rows, err := svc.writer.Delete(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to delete user", "err", err)
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	svc.invalidate(ctx, email)
	return nil
}
