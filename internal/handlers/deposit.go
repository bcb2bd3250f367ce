package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/brlpay/wallet-service/internal/logger"
	"github.com/brlpay/wallet-service/internal/middlewares"
	"github.com/brlpay/wallet-service/internal/models"
	"github.com/brlpay/wallet-service/internal/services"
)

// MoneyAdder defines the interface that the service must implement.
type MoneyAdder interface {
	AddMoney(ctx context.Context, userID int64, amount decimal.Decimal) (*models.UserDB, error)
}

// DepositRequest represents the JSON body for adding money to the caller's
// balance. A negative amount is a debit; balances may go negative.
// swagger:model DepositRequest
type DepositRequest struct {
	// Signed amount, decimal-formatted number or string
	// required: true
	// default: 100.00
	Amount decimal.Decimal `json:"amount"`
}

// DepositErrorResponse represents an error response for deposit
// swagger:model DepositErrorResponse
type DepositErrorResponse struct {
	// Error message
	// default: user not found
	Error string `json:"error"`
}

// NewDepositHandler returns an HTTP handler that adds a signed amount to the
// authenticated user's balance.
// @Summary Add money to the caller's balance
// @Description Applies a signed amount to the stored balance and returns the updated user. No bound checks.
// @Tags users
// @Accept json
// @Produce json
// @Param request body handlers.DepositRequest true "Deposit Request"
// @Success 200 {object} models.UserDB "Updated user"
// @Failure 400 {object} handlers.DepositErrorResponse "Invalid body or unknown user"
// @Failure 401 {object} handlers.DepositErrorResponse "Unauthorized"
// @Router /users/deposit [put]
// @Security BearerAuth
func NewDepositHandler(svc MoneyAdder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims := middlewares.ClaimsFromContext(ctx)
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(DepositErrorResponse{Error: "unauthorized"})
			return
		}

		var req DepositRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("failed to decode deposit request", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(DepositErrorResponse{Error: "invalid request body"})
			return
		}

		user, err := svc.AddMoney(ctx, claims.UserID, req.Amount)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(DepositErrorResponse{Error: err.Error()})
			default:
				logger.Log.Errorw("failed to add money", "userID", claims.UserID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(DepositErrorResponse{Error: "internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(user)
	}
}
