package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brlpay/wallet-service/internal/logger"
	"github.com/brlpay/wallet-service/internal/middlewares"
	"github.com/brlpay/wallet-service/internal/models"
	"github.com/brlpay/wallet-service/internal/services"
)

// UserGetter defines the interface that the user lookup service must implement.
type UserGetter interface {
	GetUserByEmail(ctx context.Context, email string) (*models.UserWithStats, error)
}

// UserUpdater defines the interface that the profile update service must implement.
type UserUpdater interface {
	UpdateUser(ctx context.Context, userID int64, email, password, confirmPassword, name string) (*models.UserDB, error)
}

// UserDeleter defines the interface that the account removal service must implement.
type UserDeleter interface {
	DeleteUser(ctx context.Context, userID int64, email string) error
}

// UserErrorResponse represents an error response for user endpoints
// swagger:model UserErrorResponse
type UserErrorResponse struct {
	// Error message
	// default: user not found
	Error string `json:"error"`
}

// UpdateUserRequest represents the JSON body for a profile update
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Name            string `json:"name"`
}

// NewGetUserHandler returns an HTTP handler that looks a user up by email.
// An unknown email yields an empty object, not an error.
// @Summary Get user by email
// @Description Returns the user with derived transaction counts, or {} when absent
// @Tags users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} models.UserWithStats "User with transaction counts"
// @Router /users/{email} [get]
// @Security BearerAuth
func NewGetUserHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		email := chi.URLParam(r, "email")

		user, err := svc.GetUserByEmail(r.Context(), email)
		if err != nil {
			if !errors.Is(err, services.ErrUserNotFound) {
				logger.Log.Errorw("failed to get user", "email", email, "error", err)
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("{}"))
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(user)
	}
}

// NewUpdateUserHandler returns an HTTP handler that overwrites the
// authenticated user's profile.
// @Summary Update the caller's profile
// @Description Re-hashes the password and persists all fields. Both password fields are required and must match.
// @Tags users
// @Accept json
// @Produce json
// @Param request body handlers.UpdateUserRequest true "Profile update"
// @Success 200 {object} models.UserDB "Updated user"
// @Failure 400 {object} handlers.UserErrorResponse "Validation failure"
// @Failure 401 {object} handlers.UserErrorResponse "Unauthorized"
// @Router /users [put]
// @Security BearerAuth
func NewUpdateUserHandler(svc UserUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims := middlewares.ClaimsFromContext(ctx)
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(UserErrorResponse{Error: "unauthorized"})
			return
		}

		var req UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UserErrorResponse{Error: "invalid request body"})
			return
		}

		user, err := svc.UpdateUser(ctx, claims.UserID, req.Email, req.Password, req.ConfirmPassword, req.Name)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound),
				errors.Is(err, services.ErrPasswordRequired),
				errors.Is(err, services.ErrConfirmPasswordRequired),
				errors.Is(err, services.ErrPasswordsDoNotMatch):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(UserErrorResponse{Error: err.Error()})
			default:
				logger.Log.Errorw("failed to update user", "userID", claims.UserID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(UserErrorResponse{Error: "internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(user)
	}
}

// NewDeleteUserHandler returns an HTTP handler that removes the
// authenticated user's account.
// @Summary Delete the caller's account
// @Tags users
// @Produce json
// @Success 200 {object} nil "Account removed"
// @Failure 400 {object} handlers.UserErrorResponse "Unknown user"
// @Failure 401 {object} handlers.UserErrorResponse "Unauthorized"
// @Router /users [delete]
// @Security BearerAuth
func NewDeleteUserHandler(svc UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims := middlewares.ClaimsFromContext(ctx)
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(UserErrorResponse{Error: "unauthorized"})
			return
		}

		if err := svc.DeleteUser(ctx, claims.UserID, claims.Email); err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(UserErrorResponse{Error: err.Error()})
			default:
				logger.Log.Errorw("failed to delete user", "userID", claims.UserID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(UserErrorResponse{Error: "internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{}"))
	}
}
