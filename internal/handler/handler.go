package handler

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shopdesk/internal/middleware"
	"shopdesk/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

const internalErrorMessage = "An unexpected error occurred"

const dateLayout = "2006-01-02"

// writeJSON writes a JSON response with the given status code. The body is
// encoded before the header goes out, so a value that cannot be encoded
// turns into a 500 instead of a truncated success.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(model.ErrorResponse{
			Error:   model.ErrCodeInternalError,
			Message: internalErrorMessage,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// writeError writes an error response carrying the request's correlation ID.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: middleware.RequestIDFromContext(r.Context()),
	})
}

// writeServiceError maps err to a status code. Domain errors keep their
// code and message; anything else is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	de, ok := model.AsDomainError(err)
	if !ok {
		event := logger.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.RequestIDFromContext(r.Context()))
		if sc := trace.SpanContextFromContext(r.Context()); sc.IsValid() {
			event = event.Str("trace_id", sc.TraceID().String())
		}
		event.Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, internalErrorMessage)
		return
	}

	writeError(w, r, domainStatus(de.Code), de.Code, de.Message)
}

func domainStatus(code string) int {
	switch code {
	case model.ErrCodeProductNotFound, model.ErrCodeCustomerNotFound, model.ErrCodeOrderNotFound, model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeEmailTaken, model.ErrCodeProductInUse, model.ErrCodeCustomerHasOrders:
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

func invalidParameter(name, value string) error {
	return model.NewDomainError(model.ErrCodeInvalidParameter, fmt.Sprintf("invalid %s: %q", name, value))
}

// decodeJSON decodes the request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "request body is not valid JSON")
	}
	return nil
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidParameter(name, raw)
	}
	return id, nil
}

// queryInt returns the named integer parameter, or def when it is absent
// or unparseable.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return v
}

// queryFloat returns nil when the parameter is absent.
func queryFloat(r *http.Request, name string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, invalidParameter(name, raw)
	}
	return &v, nil
}

func queryInt64(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, invalidParameter(name, raw)
	}
	return &v, nil
}

// queryDate accepts YYYY-MM-DD or RFC 3339. With endOfDay set, a date-only
// value covers the whole day.
func queryDate(r *http.Request, name string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(dateLayout, raw); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t, nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, invalidParameter(name, raw)
	}
	return &t, nil
}
