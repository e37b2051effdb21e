package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type assignOrderRequest struct {
	OrderID  int64 `json:"orderId"`
	WorkerID int64 `json:"workerId"`
}

type assignOrderResponse struct {
	Success  bool  `json:"success"`
	OrderID  int64 `json:"orderId"`
	WorkerID int64 `json:"workerId"`
}

func (h *HTTPTransport) assignOrder(w http.ResponseWriter, r *http.Request) {
	var req assignOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == 0 || req.WorkerID == 0 {
		respondError(w, http.StatusBadRequest, "orderId and workerId are required")

		return
	}

	if err := h.orderSvc.AssignWorker(r.Context(), req.OrderID, req.WorkerID); err != nil {
		slog.Error("Assign order error", "order_id", req.OrderID, "worker_id", req.WorkerID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to assign order", err.Error())

		return
	}

	respondJSON(w, http.StatusOK, assignOrderResponse{
		Success:  true,
		OrderID:  req.OrderID,
		WorkerID: req.WorkerID,
	})
}

func (h *HTTPTransport) adminOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderSvc.ListWithWorker(r.Context())
	if err != nil {
		slog.Error("Error retrieving orders with workers", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch orders", err.Error())

		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *HTTPTransport) adminWorkers(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePage(r)

	workers, err := h.workerSvc.List(r.Context(), page, limit)
	if err != nil {
		slog.Error("Error retrieving workers", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch workers", err.Error())

		return
	}

	respondJSON(w, http.StatusOK, workers)
}

func (h *HTTPTransport) adminWorkerOrders(w http.ResponseWriter, r *http.Request) {
	workerID, ok := parseIDParam(r, "workerId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid worker id")

		return
	}

	orders, err := h.orderSvc.ListByWorker(r.Context(), workerID)
	if err != nil {
		slog.Error("Error retrieving worker orders", "worker_id", workerID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch worker orders", err.Error())

		return
	}

	respondJSON(w, http.StatusOK, orders)
}
