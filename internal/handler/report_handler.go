package handler

import (
	"net/http"
	"strings"

	"shopdesk/internal/model"
	"shopdesk/internal/service"

	"github.com/rs/zerolog"
)

// ReportHandler serves the aggregate reports.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("handler", "report").Logger(),
	}
}

// Sales handles GET /api/reports/sales. type=summary (the default) takes
// an optional startDate/endDate range; type=daily takes days.
func (h *ReportHandler) Sales(w http.ResponseWriter, r *http.Request) {
	reportType := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type")))
	if reportType == "" {
		reportType = model.SalesReportSummary
	}

	switch reportType {
	case model.SalesReportSummary:
		start, err := queryDate(r, "startDate", false)
		if err != nil {
			writeServiceError(w, r, err, h.logger)
			return
		}
		end, err := queryDate(r, "endDate", true)
		if err != nil {
			writeServiceError(w, r, err, h.logger)
			return
		}

		summary, err := h.service.GetSalesSummary(r.Context(), start, end)
		if err != nil {
			writeServiceError(w, r, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, model.SalesReport{Report: summary, Type: reportType})

	case model.SalesReportDaily:
		daily, err := h.service.GetDailySalesReport(r.Context(), queryInt(r, "days", 0))
		if err != nil {
			writeServiceError(w, r, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, model.SalesReport{Report: daily, Type: reportType})

	default:
		writeServiceError(w, r, invalidParameter("type", reportType), h.logger)
	}
}

// Inventory handles GET /api/reports/inventory.
func (h *ReportHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	value, err := h.service.GetInventoryValue(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, value)
}

// TopProducts handles GET /api/reports/top-products.
func (h *ReportHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetTopSellingProducts(r.Context(), queryInt(r, "limit", 0))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}
