package coursework

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"classroom/internal/domain"
	courseworkSvc "classroom/internal/domain/services/coursework"
	"classroom/internal/resilience"
)

// Caller performs a resilient GET against a named destination.
// *resilience.Client satisfies it.
type Caller interface {
	Call(ctx context.Context, destination, path, credential string) (*resilience.Response, error)
}

// remoteChecker confirms existence by fetching the resource from the
// service that owns it.
type remoteChecker struct {
	client      Caller
	destination string
	pathPrefix  string // resource path without the trailing ID
	resource    string // "course", "assignment"
}

// NewCourseChecker checks courses against admin-service.
func NewCourseChecker(client Caller, destination string) courseworkSvc.ExistenceChecker {
	return &remoteChecker{
		client:      client,
		destination: destination,
		pathPrefix:  "/api/admin/courses/",
		resource:    "course",
	}
}

// NewAssignmentChecker checks assignments against teacher-service.
func NewAssignmentChecker(client Caller, destination string) courseworkSvc.ExistenceChecker {
	return &remoteChecker{
		client:      client,
		destination: destination,
		pathPrefix:  "/api/teacher/assignments/",
		resource:    "assignment",
	}
}

// Exists returns nil when the owning service answers 2xx.
//
// A 404 means the resource does not exist. A 401/403 means the owning
// service refused the forwarded credential, which the caller sees as
// forbidden. Anything else is an upstream failure: 503 when the circuit was
// open, 502 otherwise.
func (c *remoteChecker) Exists(ctx context.Context, id, credential string) error {
	_, err := c.client.Call(ctx, c.destination, c.pathPrefix+url.PathEscape(id), credential)
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s lookup: %w", c.resource, err)
	}

	if status, ok := resilience.UpstreamStatus(err); ok {
		switch status {
		case http.StatusNotFound:
			return &domain.NotFoundError{Message: c.resource + " not found"}
		case http.StatusUnauthorized, http.StatusForbidden:
			return &domain.ForbiddenError{Message: c.resource + " service rejected the credential"}
		}
	}

	switch {
	case errors.Is(err, resilience.ErrCircuitOpen):
		return &domain.UpstreamError{Service: c.resource + " service", CircuitOpen: true, Err: err}
	case errors.Is(err, resilience.ErrUpstreamFailure):
		return &domain.UpstreamError{Service: c.resource + " service", Err: err}
	default:
		return fmt.Errorf("%s lookup: %w", c.resource, err)
	}
}
