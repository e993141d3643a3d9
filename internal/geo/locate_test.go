package geo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sagarsuraksha/hz/internal/report"
)

// stallingLocator never produces a fix; it waits out whatever deadline the
// caller set.
type stallingLocator struct{}

func (stallingLocator) Locate(ctx context.Context) (report.Location, error) {
	<-ctx.Done()
	return report.Location{}, ctx.Err()
}

func TestAcquireSuccess(t *testing.T) {
	loc := FixedLocator{Position: report.Location{Latitude: 19.076, Longitude: 72.8777}}

	got, err := Acquire(context.Background(), loc, time.Second)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if got != loc.Position {
		t.Errorf("position = %+v, want %+v", got, loc.Position)
	}
}

func TestAcquireTimeout(t *testing.T) {
	_, err := Acquire(context.Background(), stallingLocator{}, 10*time.Millisecond)

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if !errors.Is(err, ErrLocationUnavailable) {
		t.Error("ErrTimeout must unwrap to ErrLocationUnavailable")
	}
}

func TestAcquirePermissionDenied(t *testing.T) {
	loc := FixedLocator{Err: ErrPermissionDenied}

	_, err := Acquire(context.Background(), loc, time.Second)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if !errors.Is(err, ErrLocationUnavailable) {
		t.Error("ErrPermissionDenied must unwrap to ErrLocationUnavailable")
	}
}

func TestAcquireWrapsUnknownErrors(t *testing.T) {
	loc := FixedLocator{Err: errors.New("gps hardware fault")}

	_, err := Acquire(context.Background(), loc, time.Second)
	if !errors.Is(err, ErrPositionUnavailable) {
		t.Fatalf("expected ErrPositionUnavailable, got %v", err)
	}
}

func TestAcquireRejectsOutOfRangeFix(t *testing.T) {
	loc := FixedLocator{Position: report.Location{Latitude: 120, Longitude: 0}}

	_, err := Acquire(context.Background(), loc, time.Second)
	if !errors.Is(err, ErrPositionUnavailable) {
		t.Fatalf("expected ErrPositionUnavailable, got %v", err)
	}
}

func TestAcquireNilLocator(t *testing.T) {
	_, err := Acquire(context.Background(), nil, time.Second)
	if !errors.Is(err, ErrPositionUnavailable) {
		t.Fatalf("expected ErrPositionUnavailable, got %v", err)
	}
}

func TestCauseMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrPermissionDenied, "Location access denied by user."},
		{ErrTimeout, "Location request timed out."},
		{ErrPositionUnavailable, "Location information is unavailable."},
		{ErrLocationUnavailable, "Location information is unavailable."},
		{errors.New("anything else"), "An unknown error occurred while retrieving location."},
	}
	for _, tt := range tests {
		if got := CauseMessage(tt.err); got != tt.want {
			t.Errorf("CauseMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
