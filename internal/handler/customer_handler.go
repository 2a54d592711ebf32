package handler

import (
	"net/http"
	"strings"

	"shopdesk/internal/model"
	"shopdesk/internal/service"

	"github.com/rs/zerolog"
)

// CustomerHandler handles customer-related HTTP requests.
type CustomerHandler struct {
	service service.CustomerService
	logger  zerolog.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(service service.CustomerService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		logger:  logger.With().Str("handler", "customer").Logger(),
	}
}

// Search handles GET /api/customers requests.
func (h *CustomerHandler) Search(w http.ResponseWriter, r *http.Request) {
	criteria := model.CustomerCriteria{
		SearchTerm: strings.TrimSpace(r.URL.Query().Get("q")),
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", model.DefaultPageSize),
	}

	page, err := h.service.Search(r.Context(), criteria)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	customer, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.CustomerInput
	if err := decodeJSON(r, &input); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	customer, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	var input model.CustomerInput
	if err := decodeJSON(r, &input); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	customer, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// History handles GET /api/customers/{id}/history requests.
func (h *CustomerHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	history, err := h.service.GetWithHistory(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, history)
}
