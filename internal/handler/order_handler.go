package handler

import (
	"errors"
	"net/http"
	"strings"

	"shopdesk/internal/model"
	"shopdesk/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Search handles GET /api/orders requests.
func (h *OrderHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := model.OrderCriteria{
		Status:    model.OrderStatus(strings.ToLower(strings.TrimSpace(q.Get("status")))),
		SortBy:    model.OrderSortField(q.Get("sortBy")),
		SortOrder: model.SortOrder(strings.ToLower(q.Get("sortOrder"))),
		Page:      queryInt(r, "page", 1),
		Limit:     queryInt(r, "limit", model.DefaultPageSize),
	}

	var err error
	if criteria.CustomerID, err = queryInt64(r, "customerId"); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if criteria.MinAmount, err = queryFloat(r, "minAmount"); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if criteria.MaxAmount, err = queryFloat(r, "maxAmount"); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if criteria.StartDate, err = queryDate(r, "startDate", false); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if criteria.EndDate, err = queryDate(r, "endDate", true); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	page, err := h.service.Search(r.Context(), criteria)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), &req)
	if err != nil {
		// An unknown customer or product is a bad reference in the
		// request body, not a missing resource.
		if errors.Is(err, model.ErrCustomerNotFound) || errors.Is(err, model.ErrProductNotFound) {
			de, _ := model.AsDomainError(err)
			writeError(w, r, http.StatusBadRequest, de.Code, de.Message)
			return
		}
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// UpdateStatus handles PATCH /api/orders/{id}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	var update model.OrderStatusUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), id, update.Status)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Delete handles DELETE /api/orders/{id} requests.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
