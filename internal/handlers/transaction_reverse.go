package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/brlpay/wallet-service/internal/logger"
	"github.com/brlpay/wallet-service/internal/models"
	"github.com/brlpay/wallet-service/internal/services"
)

// TransactionReverser defines the interface that the service must implement.
type TransactionReverser interface {
	CreateReverse(ctx context.Context, transactionID int64) (*models.TransactionDB, error)
}

// NewReverseTransactionHandler returns an HTTP handler that creates the
// counter-entry for an existing transaction.
// @Summary Reverse a transaction
// @Description Creates a new transaction with sender and recipient swapped and the reversed flag set. The original row is not modified.
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction id"
// @Success 200 {object} models.TransactionDB "Counter-entry"
// @Failure 400 {object} handlers.TransactionErrorResponse "Unknown transaction"
// @Failure 401 {object} handlers.TransactionErrorResponse "Unauthorized"
// @Router /transactions/{id} [post]
// @Security BearerAuth
func NewReverseTransactionHandler(svc TransactionReverser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "invalid transaction id"})
			return
		}

		txn, err := svc.CreateReverse(ctx, id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTransactionNotFound):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(TransactionErrorResponse{Error: err.Error()})
			default:
				logger.Log.Errorw("failed to reverse transaction", "id", id, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(txn)
	}
}
