package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/lexdesk/internal/api/service"
	"github.com/aussiebroadwan/lexdesk/internal/api/store"
	"github.com/aussiebroadwan/lexdesk/pkg/httpx"
	"github.com/aussiebroadwan/lexdesk/pkg/slogx"
)

// writeServiceError maps a service error to a response. Anything
// unrecognised is logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, service.ErrInvalidCost):
		httpx.WriteError(w, http.StatusBadRequest, "invalid cost")
	case errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, service.ErrProductUnavailable),
		errors.Is(err, service.ErrEmptyCart):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not found")
	default:
		slogx.FromContext(r.Context()).Error(op+" failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

// queryInt reads an integer query parameter. A missing parameter yields def;
// a malformed or out-of-range one yields ok=false.
func queryInt(r *http.Request, name string, def, min, max int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min || n > max {
		return 0, false
	}
	return n, true
}

func writeInvalidParams(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest, "invalid parameters")
}
