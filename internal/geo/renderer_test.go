package geo

import (
	"testing"

	"github.com/sagarsuraksha/hz/internal/report"
)

func TestColorFor(t *testing.T) {
	tests := []struct {
		priority report.Priority
		want     string
	}{
		{report.PriorityHigh, ColorDanger},
		{report.PriorityMedium, ColorCaution},
		{report.PriorityLow, ColorSafe},
		{report.Priority("weird"), ColorNeutral},
		{report.Priority(""), ColorNeutral},
	}
	for _, tt := range tests {
		if got := ColorFor(tt.priority); got != tt.want {
			t.Errorf("ColorFor(%q) = %q, want %q", tt.priority, got, tt.want)
		}
	}
}

func TestRadiusStrictlyDecreasing(t *testing.T) {
	high := RadiusFor(report.PriorityHigh)
	medium := RadiusFor(report.PriorityMedium)
	low := RadiusFor(report.PriorityLow)
	unknown := RadiusFor(report.Priority("weird"))

	if !(high > medium && medium > low && low > unknown) {
		t.Errorf("radii not strictly decreasing: %d %d %d %d", high, medium, low, unknown)
	}
	if high != 12 || medium != 8 || low != 6 {
		t.Errorf("radii = %d/%d/%d, want 12/8/6", high, medium, low)
	}
}

func TestOpacityFadesWithSettlement(t *testing.T) {
	resolved := OpacityFor(report.StatusResolved)
	investigating := OpacityFor(report.StatusInvestigating)
	pending := OpacityFor(report.StatusPending)
	unknown := OpacityFor(report.Status("weird"))

	if !(resolved < investigating && investigating < pending) {
		t.Errorf("opacities not increasing toward pending: %f %f %f", resolved, investigating, pending)
	}
	if unknown != pending {
		t.Errorf("unknown status opacity = %f, want the pending value %f", unknown, pending)
	}
}

func TestMarkersSkipUnlocatedReports(t *testing.T) {
	reports := []report.Report{
		{ID: "located", Title: "oil spill", Location: &report.Location{Latitude: 10, Longitude: 20},
			Status: report.StatusPending, Priority: report.PriorityHigh},
		{ID: "absent", Title: "no location"},
		{ID: "invalid", Title: "bad coords", Location: &report.Location{Latitude: 120, Longitude: 0}},
	}

	got := Markers(reports)
	if len(got) != 1 {
		t.Fatalf("expected 1 marker, got %d", len(got))
	}
	m := got[0]
	if m.ReportID != "located" {
		t.Errorf("wrong report plotted: %s", m.ReportID)
	}
	if m.Color != ColorDanger || m.Radius != 12 || m.FillOpacity != 0.9 || m.Weight != 2 {
		t.Errorf("unexpected marker encoding: %+v", m)
	}
}

func TestViewerMarker(t *testing.T) {
	m := ViewerMarker(report.Location{Latitude: 1, Longitude: 2})

	if m.Color != ColorViewer {
		t.Errorf("color = %q, want %q", m.Color, ColorViewer)
	}
	if m.Radius != 8 || m.FillOpacity != 0.8 || m.Weight != 3 {
		t.Errorf("unexpected viewer encoding: %+v", m)
	}
	if m.ReportID != "" {
		t.Errorf("viewer marker carries a report id: %q", m.ReportID)
	}
}

func TestViewportCenterViewerWins(t *testing.T) {
	reports := []report.Report{
		{Location: &report.Location{Latitude: 50, Longitude: 50}},
	}
	viewer := &report.Location{Latitude: 1, Longitude: 2}

	got := ViewportCenter(reports, viewer)
	if got != *viewer {
		t.Errorf("center = %+v, want viewer position", got)
	}
}

func TestViewportCenterIsMeanOfLocations(t *testing.T) {
	reports := []report.Report{
		{Location: &report.Location{Latitude: 10, Longitude: 10}},
		{Location: &report.Location{Latitude: 20, Longitude: 20}},
	}

	got := ViewportCenter(reports, nil)
	want := report.Location{Latitude: 15, Longitude: 15}
	if got != want {
		t.Errorf("center = %+v, want %+v", got, want)
	}
}

func TestViewportCenterExcludesMalformedLocations(t *testing.T) {
	reports := []report.Report{
		{Location: &report.Location{Latitude: 10, Longitude: 10}},
		{Location: &report.Location{Latitude: 20, Longitude: 20}},
		{Location: &report.Location{Latitude: 400, Longitude: 400}},
		{},
	}

	got := ViewportCenter(reports, nil)
	want := report.Location{Latitude: 15, Longitude: 15}
	if got != want {
		t.Errorf("malformed location skewed the mean: %+v, want %+v", got, want)
	}
}

func TestViewportCenterFallback(t *testing.T) {
	got := ViewportCenter(nil, nil)
	if got != DefaultCenter {
		t.Errorf("center = %+v, want the fallback %+v", got, DefaultCenter)
	}

	// Reports exist but none is plottable
	unlocated := []report.Report{{}, {Location: &report.Location{Latitude: 100, Longitude: 0}}}
	if got := ViewportCenter(unlocated, nil); got != DefaultCenter {
		t.Errorf("center = %+v, want the fallback %+v", got, DefaultCenter)
	}
}

func TestViewportCenterZeroMeanIsData(t *testing.T) {
	// Symmetric locations whose mean lands exactly on (0,0) must be honored,
	// not mistaken for "no data"
	reports := []report.Report{
		{Location: &report.Location{Latitude: 10, Longitude: 30}},
		{Location: &report.Location{Latitude: -10, Longitude: -30}},
	}

	got := ViewportCenter(reports, nil)
	want := report.Location{Latitude: 0, Longitude: 0}
	if got != want {
		t.Errorf("center = %+v, want %+v", got, want)
	}
}

func TestViewportCenterFromOverride(t *testing.T) {
	fallback := report.Location{Latitude: 48.8566, Longitude: 2.3522}

	if got := ViewportCenterFrom(fallback, nil, nil); got != fallback {
		t.Errorf("center = %+v, want the configured fallback %+v", got, fallback)
	}
}
