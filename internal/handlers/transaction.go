package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/brlpay/wallet-service/internal/logger"
	"github.com/brlpay/wallet-service/internal/models"
	"github.com/brlpay/wallet-service/internal/services"
)

// TransactionGetter defines the interface that the service must implement.
type TransactionGetter interface {
	Get(ctx context.Context, id int64) (*models.TransactionDB, error)
}

// TransactionUpdater defines the interface that the service must implement.
type TransactionUpdater interface {
	Update(ctx context.Context, id int64, value decimal.Decimal, description string, reversed bool) (*models.TransactionDB, error)
}

// TransactionRemover defines the interface that the service must implement.
type TransactionRemover interface {
	Remove(ctx context.Context, id int64) error
}

// UpdateTransactionRequest represents the JSON body for overwriting a
// transaction row.
// swagger:model UpdateTransactionRequest
type UpdateTransactionRequest struct {
	ValueBrl    decimal.Decimal `json:"valueBrl"`
	Description string          `json:"description"`
	Reversed    bool            `json:"reversed"`
}

func transactionIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// NewGetTransactionHandler returns an HTTP handler for fetching a single
// transaction. An unknown id yields an empty object, not an error.
// @Summary Get transaction by id
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction id"
// @Success 200 {object} models.TransactionDB "Transaction, or {} when absent"
// @Router /transactions/{id} [get]
// @Security BearerAuth
func NewGetTransactionHandler(svc TransactionGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		id, err := transactionIDFromRequest(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "invalid transaction id"})
			return
		}

		txn, err := svc.Get(r.Context(), id)
		if err != nil {
			if !errors.Is(err, services.ErrTransactionNotFound) {
				logger.Log.Errorw("failed to get transaction", "id", id, "error", err)
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("{}"))
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(txn)
	}
}

// NewUpdateTransactionHandler returns an HTTP handler that overwrites a
// transaction's mutable fields.
// @Summary Update transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction id"
// @Param request body handlers.UpdateTransactionRequest true "Fields to overwrite"
// @Success 200 {object} models.TransactionDB "Updated transaction"
// @Failure 400 {object} handlers.TransactionErrorResponse "Unknown transaction"
// @Router /transactions/{id} [put]
// @Security BearerAuth
func NewUpdateTransactionHandler(svc TransactionUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		id, err := transactionIDFromRequest(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "invalid transaction id"})
			return
		}

		var req UpdateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "invalid request body"})
			return
		}

		txn, err := svc.Update(r.Context(), id, req.ValueBrl, req.Description, req.Reversed)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTransactionNotFound):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(TransactionErrorResponse{Error: err.Error()})
			default:
				logger.Log.Errorw("failed to update transaction", "id", id, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(txn)
	}
}

// NewDeleteTransactionHandler returns an HTTP handler that deletes a
// transaction by id.
// @Summary Delete transaction
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction id"
// @Success 200 {object} nil "Transaction removed"
// @Failure 400 {object} handlers.TransactionErrorResponse "Unknown transaction"
// @Router /transactions/{id} [delete]
// @Security BearerAuth
func NewDeleteTransactionHandler(svc TransactionRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		id, err := transactionIDFromRequest(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "invalid transaction id"})
			return
		}

		if err := svc.Remove(r.Context(), id); err != nil {
			switch {
			case errors.Is(err, services.ErrTransactionNotFound):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(TransactionErrorResponse{Error: err.Error()})
			default:
				logger.Log.Errorw("failed to delete transaction", "id", id, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{}"))
	}
}
