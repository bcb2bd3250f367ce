package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/brlpay/wallet-service/internal/logger"
	"github.com/brlpay/wallet-service/internal/middlewares"
	"github.com/brlpay/wallet-service/internal/models"
)

// TransactionLister defines the interface that the service must implement.
type TransactionLister interface {
	List(ctx context.Context, userID int64, page, limit int, orderBy, order, search string) (*models.TransactionPage, error)
}

// NewListTransactionsHandler returns an HTTP handler that lists the
// authenticated caller's transactions with pagination, filtering, and
// sorting. Only rows where the caller is sender or recipient are visible.
// @Summary List the caller's transactions
// @Tags transactions
// @Produce json
// @Param page query int false "Page, clamps to 1"
// @Param itemsPerPage query int false "Page size, clamps to 1"
// @Param orderBy query string false "Sort field: createdAt, valueBrl, description, id"
// @Param order query string false "asc or desc"
// @Param search query string false "Case-insensitive description substring"
// @Success 200 {object} models.TransactionPage "One page of transactions"
// @Failure 401 {object} handlers.TransactionErrorResponse "Unauthorized"
// @Router /transactions [get]
// @Security BearerAuth
func NewListTransactionsHandler(svc TransactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims := middlewares.ClaimsFromContext(ctx)
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "unauthorized"})
			return
		}

		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		limit, _ := strconv.Atoi(q.Get("itemsPerPage"))
		orderBy := q.Get("orderBy")
		order := q.Get("order")
		search := q.Get("search")

		result, err := svc.List(ctx, claims.UserID, page, limit, orderBy, order, search)
		if err != nil {
			logger.Log.Errorw("failed to list transactions", "userID", claims.UserID, "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TransactionErrorResponse{Error: err.Error()})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(result)
	}
}
