package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarsuraksha/hz/internal/geo"
	"github.com/sagarsuraksha/hz/internal/output"
	"github.com/sagarsuraksha/hz/internal/report"
)

// mapCmd emits marker descriptors and the viewport center
var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Emit map marker descriptors for all located reports",
	Long: `Emit one styled marker descriptor per located report plus the viewport
center, ready for whatever draws the map. Marker color and radius encode
priority; fill opacity encodes status (dimmer means more settled). Reports
without a location are never plotted.

The viewport centers on your position when one is available (--lat/--lng or
--locate), otherwise on the mean position of the located reports, otherwise
on the configured fallback.

Examples:
  hz map
  hz map --lat 19.07 --lng 72.87
  hz map --locate --format json`,
	RunE: runMap,
}

// mapView is the structured payload for yaml/json output.
type mapView struct {
	Center  report.Location `json:"center" yaml:"center"`
	Viewer  *geo.Marker     `json:"viewer,omitempty" yaml:"viewer,omitempty"`
	Markers []geo.Marker    `json:"markers" yaml:"markers"`
}

var (
	mapLocate bool
	mapLat    float64
	mapLng    float64
)

func init() {
	rootCmd.AddCommand(mapCmd)

	mapCmd.Flags().BoolVar(&mapLocate, "locate", false, "Acquire your position from the position source")
	mapCmd.Flags().Float64Var(&mapLat, "lat", 0, "Your latitude")
	mapCmd.Flags().Float64Var(&mapLng, "lng", 0, "Your longitude")
}

func runMap(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	reports, err := env.Reports.List()
	if err != nil {
		return err
	}

	viewer, err := resolveViewer(cmd, env)
	if err != nil {
		return err
	}

	view := mapView{
		Center:  geo.ViewportCenterFrom(fallbackCenter(env.Cfg), reports, viewer),
		Markers: geo.Markers(reports),
	}
	if viewer != nil {
		m := geo.ViewerMarker(*viewer)
		view.Viewer = &m
	}

	format, err := resolveFormat(env.Cfg)
	if err != nil {
		return err
	}
	if format == output.FormatTable {
		printMapTable(view)
		return nil
	}
	return output.Render(os.Stdout, format, view)
}

// resolveViewer mirrors resolveLocation for the viewer's own position;
// acquisition failure degrades to no viewer marker.
func resolveViewer(cmd *cobra.Command, env *Env) (*report.Location, error) {
	if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
		if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lng") {
			return nil, fmt.Errorf("--lat and --lng must be given together")
		}
		loc := report.Location{Latitude: mapLat, Longitude: mapLng}
		if !loc.Valid() {
			return nil, fmt.Errorf("coordinates out of range: %f, %f", mapLat, mapLng)
		}
		return &loc, nil
	}

	if !mapLocate {
		return nil, nil
	}

	pos, err := geo.Acquire(cmd.Context(), envLocator{}, locateTimeout(env.Cfg))
	if err != nil {
		fmt.Fprintln(os.Stderr, geo.CauseMessage(err))
		return nil, nil
	}
	return &pos, nil
}

func printMapTable(view mapView) {
	fmt.Printf("Center: %.4f, %.4f\n", view.Center.Latitude, view.Center.Longitude)
	if view.Viewer != nil {
		fmt.Printf("You:    %.4f, %.4f\n", view.Viewer.Position.Latitude, view.Viewer.Position.Longitude)
	}
	for _, m := range view.Markers {
		fmt.Printf("  %s r=%d %s opacity=%.1f  %.4f, %.4f  %s\n",
			m.Color, m.Radius, m.ReportID, m.FillOpacity,
			m.Position.Latitude, m.Position.Longitude, m.Title)
	}
	fmt.Printf("%d marker(s)\n", len(view.Markers))
}
