package httptransport

import (
	"log/slog"
	"net/http"
)

func (h *HTTPTransport) workerOrders(w http.ResponseWriter, r *http.Request) {
	workerID, ok := parseIDParam(r, "workerId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid worker id")

		return
	}

	page, limit := parsePage(r)

	orders, err := h.workerSvc.Orders(r.Context(), workerID, page, limit)
	if err != nil {
		slog.Error("Fetch worker orders error", "worker_id", workerID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch worker orders", err.Error())

		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *HTTPTransport) completeWorkerOrder(w http.ResponseWriter, r *http.Request) {
	if _, ok := parseIDParam(r, "workerId"); !ok {
		respondError(w, http.StatusBadRequest, "Invalid worker id")

		return
	}

	orderID, ok := parseIDParam(r, "orderId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid order id")

		return
	}

	h.complete(w, r, orderID)
}
