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

// TransactionCreator defines the interface that the service must implement.
type TransactionCreator interface {
	Create(ctx context.Context, senderID int64, value decimal.Decimal, description, sentToUserEmail string, reversed bool) (*models.TransactionDB, error)
}

// CreateTransactionRequest represents the JSON body for creating a transfer
// swagger:model CreateTransactionRequest
type CreateTransactionRequest struct {
	// Transfer value, decimal-formatted number or string
	// required: true
	// default: 50.00
	ValueBrl decimal.Decimal `json:"valueBrl"`

	// Free-text description
	// default: rent
	Description string `json:"description"`

	// Recipient email
	// required: true
	// default: jane@example.com
	SentToUserEmail string `json:"sentToUserEmail"`

	// Reversed flag override, defaults to false
	Reversed bool `json:"reversed"`
}

// TransactionErrorResponse represents an error response for transaction endpoints
// swagger:model TransactionErrorResponse
type TransactionErrorResponse struct {
	// Error message
	// default: user not found
	Error string `json:"error"`
}

// NewCreateTransactionHandler returns an HTTP handler that creates a
// transfer from the authenticated caller to the recipient email.
// @Summary Create a transaction
// @Description Resolves the recipient by email, persists the transaction row, and adjusts the sender's stored balance. Both writes share one DB transaction.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body handlers.CreateTransactionRequest true "Transfer request"
// @Success 200 {object} models.TransactionDB "Created transaction"
// @Failure 400 {object} handlers.TransactionErrorResponse "Invalid body or unknown recipient"
// @Failure 401 {object} handlers.TransactionErrorResponse "Unauthorized"
// @Router /transactions [post]
// @Security BearerAuth
func NewCreateTransactionHandler(svc TransactionCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims := middlewares.ClaimsFromContext(ctx)
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "unauthorized"})
			return
		}

		var req CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("failed to decode create transaction request", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "invalid request body"})
			return
		}

		txn, err := svc.Create(ctx, claims.UserID, req.ValueBrl, req.Description, req.SentToUserEmail, req.Reversed)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(TransactionErrorResponse{Error: err.Error()})
			default:
				logger.Log.Errorw("failed to create transaction", "senderID", claims.UserID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(txn)
	}
}
