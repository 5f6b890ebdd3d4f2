package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"classroom/internal/domain"
	"classroom/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var (
		conflictErr *domain.ConflictError
		upstreamErr *domain.UpstreamError
	)

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), map[string]interface{}{
			"resource_type": conflictErr.ResourceType,
			"resource_id":   conflictErr.ResourceID,
		})
	case errors.As(err, &upstreamErr):
		httputil.RespondErrorWithExtras(w, upstreamErr.StatusCode(), upstreamErr.Error(), map[string]interface{}{
			"service": upstreamErr.Service,
		})
	case errors.Is(err, context.DeadlineExceeded):
		httputil.RespondError(w, http.StatusGatewayTimeout, "request timed out")
	default:
		slog.Error("unhandled error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID reads a UUID path parameter, answering 400 when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id, err := httputil.PathUUID(r, name)
	if err != nil {
		handleError(w, err)
		return "", false
	}
	return id.String(), true
}
