package httptransport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ishop-labs/backend/internal/service/models/notification"
	"github.com/ishop-labs/backend/internal/service/models/order"
	"github.com/ishop-labs/backend/internal/service/models/user"
)

// parsePage reads page/limit query parameters, substituting 1/10 for
// anything missing or non-numeric. Out-of-range values are clamped again by
// the repository.
func parsePage(r *http.Request) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = 10
	}
	return page, limit
}

func parseIDParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePage(r)

	result, err := h.orderSvc.List(r.Context(), page, limit)
	if err != nil {
		slog.Error("Error retrieving orders", "error", err)
		respondError(w, http.StatusInternalServerError, "Error retrieving orders", err.Error())

		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid order id")

		return
	}

	ord, err := h.orderSvc.GetByID(r.Context(), id)
	if err != nil {
		slog.Error("Error retrieving order", "order_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Error retrieving order", err.Error())

		return
	}
	if ord == nil {
		respondError(w, http.StatusNotFound, "Order not found")

		return
	}

	respondJSON(w, http.StatusOK, ord)
}

type checkoutRequest struct {
	UserID           int64        `json:"userId"`
	Items            []order.Item `json:"items"`
	EstimatedArrival *time.Time   `json:"estimatedArrival,omitempty"`
}

type checkoutResponse struct {
	Success bool  `json:"success"`
	OrderID int64 `json:"orderId"`
}

func (h *HTTPTransport) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid or missing userId")

		return
	}
	if req.UserID <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid or missing userId")

		return
	}

	ids, err := h.orderSvc.Create(r.Context(), req.UserID, req.Items, req.EstimatedArrival)
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "User not found")

		return
	case errors.Is(err, order.ErrInvalidOrderData), errors.Is(err, order.ErrInvalidItemData):
		respondError(w, http.StatusBadRequest, err.Error())

		return
	case err != nil:
		slog.Error("Error creating order", "error", err)
		respondError(w, http.StatusInternalServerError, "Order creation failed", err.Error())

		return
	}

	// The response carries the first generated id; clients treat the
	// checkout as one logical order even though each item is its own row.
	respondJSON(w, http.StatusOK, checkoutResponse{Success: true, OrderID: ids[0]})
}

type updateOrderRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (h *HTTPTransport) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid order id")

		return
	}

	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == 0 || req.Quantity == 0 {
		respondError(w, http.StatusBadRequest, "product ID and quantity are required")

		return
	}

	updated, err := h.orderSvc.Update(r.Context(), id, req.ProductID, req.Quantity)
	if err != nil {
		slog.Error("Error updating order", "order_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Error updating order", err.Error())

		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Order not found")

		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid order id")

		return
	}

	if _, err := h.orderSvc.Delete(r.Context(), id); err != nil {
		slog.Error("Error deleting order", "order_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Error deleting order", err.Error())

		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPTransport) completeOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "orderId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid order id")

		return
	}

	h.complete(w, r, id)
}

// complete runs the completion transaction and, once it has committed,
// hands the event to the notifier. A notification failure is logged but
// never rolls the completion back.
func (h *HTTPTransport) complete(w http.ResponseWriter, r *http.Request, orderID int64) {
	ord, err := h.orderSvc.Complete(r.Context(), orderID)
	if err != nil {
		slog.Error("Order completion error", "order_id", orderID, "error", err)
		respondError(w, http.StatusInternalServerError, "Order completion failed", err.Error())

		return
	}

	completedAt := time.Now()
	if ord.CompletedAt != nil {
		completedAt = *ord.CompletedAt
	}

	event := notification.OrderCompletedEvent{
		OrderID:          ord.ID,
		Email:            ord.User.Email,
		EstimatedArrival: ord.EstimatedArrival,
		CompletedAt:      completedAt,
	}
	if err := h.notifier.OrderCompleted(r.Context(), event); err != nil {
		slog.Error("Failed to send order completed notification", "order_id", orderID, "error", err)
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
