package geo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sagarsuraksha/hz/internal/report"
)

// ErrLocationUnavailable is the class every acquisition failure unwraps to.
// Callers that do not care about the cause match on this; the report simply
// proceeds without a location.
var ErrLocationUnavailable = errors.New("location unavailable")

var (
	// ErrPermissionDenied means the user refused to share a position.
	ErrPermissionDenied = fmt.Errorf("%w: permission denied", ErrLocationUnavailable)

	// ErrPositionUnavailable means no position source could produce a fix.
	ErrPositionUnavailable = fmt.Errorf("%w: position unavailable", ErrLocationUnavailable)

	// ErrTimeout means the bounded wait expired before a fix arrived.
	ErrTimeout = fmt.Errorf("%w: request timed out", ErrLocationUnavailable)
)

// DefaultLocateTimeout bounds how long Acquire waits for a position.
const DefaultLocateTimeout = 10 * time.Second

// Locator is a one-shot position source. Locate either resolves with a
// position or fails; there is no cancel beyond the context, and a caller
// that stops caring simply discards the result.
type Locator interface {
	Locate(ctx context.Context) (report.Location, error)
}

// Acquire asks the locator for a position within the given timeout
// (DefaultLocateTimeout when zero). Deadline expiry is reported as
// ErrTimeout so the user-facing message can name the cause.
func Acquire(ctx context.Context, loc Locator, timeout time.Duration) (report.Location, error) {
	if loc == nil {
		return report.Location{}, ErrPositionUnavailable
	}
	if timeout <= 0 {
		timeout = DefaultLocateTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pos, err := loc.Locate(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return report.Location{}, ErrTimeout
		}
		if errors.Is(err, ErrLocationUnavailable) {
			return report.Location{}, err
		}
		return report.Location{}, fmt.Errorf("%w: %v", ErrPositionUnavailable, err)
	}
	if !pos.Valid() {
		return report.Location{}, fmt.Errorf("%w: coordinates out of range", ErrPositionUnavailable)
	}
	return pos, nil
}

// CauseMessage differentiates the three acquisition failures for the user's
// benefit. The data model treats them identically (absent location).
func CauseMessage(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "Location access denied by user."
	case errors.Is(err, ErrTimeout):
		return "Location request timed out."
	case errors.Is(err, ErrLocationUnavailable):
		return "Location information is unavailable."
	default:
		return "An unknown error occurred while retrieving location."
	}
}

// FixedLocator serves a position supplied up front (flags or config). It is
// also the test seam for the failure paths.
type FixedLocator struct {
	Position report.Location
	Err      error
}

// Locate returns the fixed position or the configured error.
func (f FixedLocator) Locate(ctx context.Context) (report.Location, error) {
	if f.Err != nil {
		return report.Location{}, f.Err
	}
	if err := ctx.Err(); err != nil {
		return report.Location{}, err
	}
	return f.Position, nil
}
