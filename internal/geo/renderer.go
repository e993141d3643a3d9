// Package geo translates report attributes into renderer-agnostic marker
// descriptors and computes the viewport center. It never touches a map
// surface; the CLI and MCP tools hand its output to whatever draws.
package geo

import "github.com/sagarsuraksha/hz/internal/report"

// Marker colors. High priority reads as danger, medium as caution, low as
// safe; anything outside the enumerated set falls through to neutral.
const (
	ColorDanger  = "#ef4444"
	ColorCaution = "#f59e0b"
	ColorSafe    = "#10b981"
	ColorNeutral = "#6b7280"
	ColorViewer  = "#3b82f6"
)

// DefaultCenter is the viewport fallback when neither a viewer location nor
// any located report exists (Mumbai).
var DefaultCenter = report.Location{Latitude: 19.076, Longitude: 72.8777}

// Marker describes one plotted point: position plus the visual encoding of
// the report's priority (color, radius) and status (opacity).
type Marker struct {
	ReportID    string          `json:"report_id,omitempty" yaml:"report_id,omitempty"`
	Title       string          `json:"title,omitempty" yaml:"title,omitempty"`
	Position    report.Location `json:"position" yaml:"position"`
	Radius      int             `json:"radius" yaml:"radius"`
	Color       string          `json:"color" yaml:"color"`
	FillOpacity float64         `json:"fill_opacity" yaml:"fill_opacity"`
	Weight      int             `json:"weight" yaml:"weight"`
}

// ColorFor maps a priority to its marker hue. The mapping is total; unknown
// values render neutral rather than failing.
func ColorFor(p report.Priority) string {
	switch p {
	case report.PriorityHigh:
		return ColorDanger
	case report.PriorityMedium:
		return ColorCaution
	case report.PriorityLow:
		return ColorSafe
	default:
		return ColorNeutral
	}
}

// RadiusFor maps a priority to its marker radius: a fixed ordinal scale,
// strictly decreasing from high to the unknown fallback.
func RadiusFor(p report.Priority) int {
	switch p {
	case report.PriorityHigh:
		return 12
	case report.PriorityMedium:
		return 8
	case report.PriorityLow:
		return 6
	default:
		return 5
	}
}

// OpacityFor maps a status to its marker fill opacity. Settled incidents
// fade: resolved is most transparent, pending (or unknown) most opaque.
func OpacityFor(s report.Status) float64 {
	switch s {
	case report.StatusResolved:
		return 0.4
	case report.StatusInvestigating:
		return 0.7
	default:
		return 0.9
	}
}

// Markers builds one descriptor per located report. Reports without a
// location, or with an out-of-range one, are excluded entirely rather than
// plotted at a fallback position.
func Markers(reports []report.Report) []Marker {
	out := make([]Marker, 0, len(reports))
	for _, r := range reports {
		if r.Location == nil || !r.Location.Valid() {
			continue
		}
		out = append(out, Marker{
			ReportID:    r.ID,
			Title:       r.Title,
			Position:    *r.Location,
			Radius:      RadiusFor(r.Priority),
			Color:       ColorFor(r.Priority),
			FillOpacity: OpacityFor(r.Status),
			Weight:      2,
		})
	}
	return out
}

// ViewerMarker builds the highlighted descriptor for the viewer's own
// position.
func ViewerMarker(loc report.Location) Marker {
	return Marker{
		Position:    loc,
		Radius:      8,
		Color:       ColorViewer,
		FillOpacity: 0.8,
		Weight:      3,
	}
}

// ViewportCenter picks the map center. The viewer's location wins when
// present. Otherwise the center is the arithmetic mean of all valid report
// locations, recomputed from scratch on every call; reports without a valid
// location are excluded from the mean, not treated as zero. Only an empty
// set of located reports triggers the fixed fallback, so a mean that happens
// to land on (0,0) is still honored as data.
func ViewportCenter(reports []report.Report, viewer *report.Location) report.Location {
	return ViewportCenterFrom(DefaultCenter, reports, viewer)
}

// ViewportCenterFrom is ViewportCenter with a caller-chosen fallback, for
// deployments that configure their own default center.
func ViewportCenterFrom(fallback report.Location, reports []report.Report, viewer *report.Location) report.Location {
	if viewer != nil {
		return *viewer
	}

	var sumLat, sumLng float64
	located := 0
	for _, r := range reports {
		if r.Location == nil || !r.Location.Valid() {
			continue
		}
		sumLat += r.Location.Latitude
		sumLng += r.Location.Longitude
		located++
	}
	if located == 0 {
		return fallback
	}
	return report.Location{
		Latitude:  sumLat / float64(located),
		Longitude: sumLng / float64(located),
	}
}
