package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	apperrors "github.com/OishiSharmeen04/Pet-Shop/pkg/errors"
	"github.com/OishiSharmeen04/Pet-Shop/pkg/logger"
	"github.com/OishiSharmeen04/Pet-Shop/pkg/pagination"
	"github.com/OishiSharmeen04/Pet-Shop/pkg/validator"
)

// Response is the JSON envelope used on every endpoint. Successful responses
// carry data (and pagination on list endpoints); failures carry a message in
// error with success=false.
type Response struct {
	Success    bool             `json:"success"`
	Data       any              `json:"data,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes a success envelope around data.
func WriteData(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, Response{Success: true, Data: data})
}

// WritePaginated writes a success envelope with list data and page metadata.
func WritePaginated(w http.ResponseWriter, data any, meta pagination.Meta) {
	WriteJSON(w, http.StatusOK, Response{Success: true, Data: data, Pagination: &meta})
}

// WriteError writes a failure envelope based on the error kind. Not-found maps
// to 404; already-exists, invalid-input, and foreign-key failures map to 400;
// everything else becomes a generic 500 whose cause is only logged server-side.
// It prefers the request-scoped logger from context (set by the RequestLogger
// middleware) over the fallback logger.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status == http.StatusInternalServerError {
			logInternal(r, l, err)
			WriteJSON(w, appErr.Status, Response{Error: "an internal error occurred"})
			return
		}
		WriteJSON(w, appErr.Status, Response{Error: appErr.Message})
		return
	}

	status := apperrors.HTTPStatus(err)
	message := "an internal error occurred"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		message = "resource not found"
	case errors.Is(err, apperrors.ErrAlreadyExists):
		message = "resource already exists"
	case errors.Is(err, apperrors.ErrForeignKey):
		message = "related resource does not exist"
	case errors.Is(err, apperrors.ErrInvalidInput):
		message = err.Error()
	default:
		logInternal(r, l, err)
	}

	WriteJSON(w, status, Response{Error: message})
}

func logInternal(r *http.Request, l *slog.Logger, err error) {
	l.ErrorContext(r.Context(), "internal error",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)
}

// WriteValidationError writes a 400 failure envelope for a request that did
// not decode or validate. Field-level validator messages are flattened into
// the error string.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, Response{Error: valErr.Error()})
		return
	}
	WriteJSON(w, http.StatusBadRequest, Response{Error: err.Error()})
}

// QueryInt parses an optional integer query parameter. A missing or empty
// parameter yields def. A malformed value writes a 400 response and returns
// false, signaling the caller to return early.
func QueryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, Response{Error: "invalid " + name + ": " + raw})
		return 0, false
	}
	return v, true
}

// QueryFloat parses an optional decimal query parameter. A missing parameter
// yields nil. A malformed value writes a 400 response and returns false.
func QueryFloat(w http.ResponseWriter, r *http.Request, name string) (*float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, Response{Error: "invalid " + name + ": " + raw})
		return nil, false
	}
	return &v, true
}
