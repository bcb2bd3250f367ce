package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brlpay/wallet-service/internal/logger"
	"github.com/brlpay/wallet-service/internal/models"
	"github.com/brlpay/wallet-service/internal/services"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, email, password, confirmPassword, name string) (string, *models.UserDB, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`

	// Password confirmation, must match Password
	// required: true
	// default: secret123
	ConfirmPassword string `json:"confirmPassword"`

	// Display name
	// required: true
	// default: John Doe
	Name string `json:"name"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	Data struct {
		Token string         `json:"token"`
		User  *models.UserDB `json:"user"`
	} `json:"data"`
}

// RegisterErrorResponse represents an error response for registration
// swagger:model RegisterErrorResponse
type RegisterErrorResponse struct {
	// Error message
	// default: email already in use
	Error string `json:"error"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account with zero balance. Ensures unique email. Password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 200 {object} handlers.RegisterResponse "Token and created user"
// @Failure 400 {object} handlers.RegisterErrorResponse "Validation failure or email already in use"
// @Router /auth/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(RegisterErrorResponse{Error: "invalid request body"})
			return
		}

		token, user, err := svc.Register(r.Context(), req.Email, req.Password, req.ConfirmPassword, req.Name)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrPasswordsDoNotMatch),
				errors.Is(err, services.ErrEmailAlreadyInUse):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(RegisterErrorResponse{Error: err.Error()})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(RegisterErrorResponse{Error: "internal server error"})
			}
			return
		}

		var resp RegisterResponse
		resp.Data.Token = token
		resp.Data.User = user

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}
