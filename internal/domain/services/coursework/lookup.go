package coursework

import (
	"context"
)

// ExistenceChecker confirms that a resource owned by another service exists.
// Implementations call the owning service with the caller's credential and
// return domain.ErrNotFound, domain.ErrForbidden, domain.ErrUpstreamUnavailable
// or domain.ErrUpstreamFailed.
type ExistenceChecker interface {
	Exists(ctx context.Context, id, credential string) error
}
