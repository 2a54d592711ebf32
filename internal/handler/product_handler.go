package handler

import (
	"context"
	"net/http"
	"strings"

	"shopdesk/internal/catalog"
	"shopdesk/internal/model"
	"shopdesk/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// maxCatalogUpload bounds the body of a catalog import request.
const maxCatalogUpload = 10 << 20

// CatalogImporter imports a parsed catalog into the product store.
type CatalogImporter interface {
	Import(ctx context.Context, cat *catalog.Catalog, mode catalog.Mode) (*model.ImportResult, error)
}

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service  service.ProductService
	importer CatalogImporter
	logger   zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, importer CatalogImporter, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		importer: importer,
		logger:   logger.With().Str("handler", "product").Logger(),
	}
}

// Search handles GET /api/products and /api/products/search.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := model.ProductCriteria{
		SearchTerm: strings.TrimSpace(q.Get("q")),
		Category:   strings.TrimSpace(q.Get("category")),
		SortBy:     model.ProductSortField(q.Get("sortBy")),
		SortOrder:  model.SortOrder(strings.ToLower(q.Get("sortOrder"))),
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", model.DefaultPageSize),
	}

	var err error
	if criteria.MinPrice, err = queryFloat(r, "minPrice"); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if criteria.MaxPrice, err = queryFloat(r, "maxPrice"); err != nil {
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

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.ProductInput
	if err := decodeJSON(r, &input); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	var input model.ProductInput
	if err := decodeJSON(r, &input); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	product, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// LowInventory handles GET /api/products/inventory/low. An absent or
// unparseable threshold lets the service pick its default.
func (h *ProductHandler) LowInventory(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GetLowInventory(r.Context(), queryInt(r, "threshold", -1))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// ByCategory handles GET /api/products/categories/{category}.
func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Import handles POST /api/products/import. The body is a CSV catalog,
// gzipped when sent with Content-Encoding or Content-Type gzip.
func (h *ProductHandler) Import(w http.ResponseWriter, r *http.Request) {
	mode, err := catalog.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxCatalogUpload)
	cat, err := catalog.Decode(body, isGzipBody(r))
	if err != nil {
		h.logger.Warn().Err(err).Msg("rejected catalog upload")
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidCatalog, err.Error())
		return
	}
	cat.Source = "upload"

	result, err := h.importer.Import(r.Context(), cat, mode)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func isGzipBody(r *http.Request) bool {
	if strings.EqualFold(r.Header.Get("Content-Encoding"), "gzip") {
		return true
	}
	contentType := strings.ToLower(r.Header.Get("Content-Type"))
	return strings.HasPrefix(contentType, "application/gzip") || strings.HasPrefix(contentType, "application/x-gzip")
}
