package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sagarsuraksha/hz/internal/geo"
	"github.com/sagarsuraksha/hz/internal/report"
)

// reportCmd represents the report submission command
var reportCmd = &cobra.Command{
	Use:   "report <title>",
	Short: "Submit a new hazard report (citizen only)",
	Long: `Submit a new hazard report. The title is required; everything else is
optional. The store assigns the id, the timestamp, status "pending", and
priority "medium" (priority is set by reviewers, not submitters).

Coordinates come from --lat/--lng, or from the position source via --locate
(HZ_LAT and HZ_LNG in the environment, bounded by the configured timeout).
A failed position acquisition is not fatal: the report is submitted without
a location.

Media files are read and stored inside the report as self-contained encoded
attachments, so the originals can move or disappear afterwards.

Examples:
  hz report "Oil spill near coast"
  hz report "Capsized trawler" --description "Two crew unaccounted for" --locate
  hz report "Debris field" --lat 19.0 --lng 72.8 --photo debris1.jpg --photo debris2.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

var (
	reportDescription string
	reportPhotos      []string
	reportVideos      []string
	reportLocate      bool
	reportLat         float64
	reportLng         float64
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportDescription, "description", "d", "", "Detailed description of the hazard")
	reportCmd.Flags().StringArrayVar(&reportPhotos, "photo", nil, "Photo file to attach (repeatable)")
	reportCmd.Flags().StringArrayVar(&reportVideos, "video", nil, "Video file to attach (repeatable)")
	reportCmd.Flags().BoolVar(&reportLocate, "locate", false, "Acquire coordinates from the position source")
	reportCmd.Flags().Float64Var(&reportLat, "lat", 0, "Report latitude")
	reportCmd.Flags().Float64Var(&reportLng, "lng", 0, "Report longitude")
}

func runReport(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if _, err := requireSubmitter(env); err != nil {
		return err
	}

	draft := report.Draft{
		Title:       args[0],
		Description: reportDescription,
	}

	draft.Location, err = resolveLocation(cmd, env)
	if err != nil {
		return err
	}

	draft.Photos, err = readAttachments(reportPhotos)
	if err != nil {
		return err
	}
	draft.Videos, err = readAttachments(reportVideos)
	if err != nil {
		return err
	}

	r, err := env.Reports.Create(cmd.Context(), draft)
	if err != nil {
		return err
	}

	fmt.Printf("Report submitted: %s\n", r.ID)
	if r.Location == nil {
		fmt.Println("(no location attached)")
	}
	return nil
}

// resolveLocation picks coordinates by precedence: explicit flags, then the
// position source when --locate is set, otherwise none. Acquisition failure
// degrades to no location with a cause-specific message.
func resolveLocation(cmd *cobra.Command, env *Env) (*report.Location, error) {
	if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
		if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lng") {
			return nil, fmt.Errorf("--lat and --lng must be given together")
		}
		loc := report.Location{Latitude: reportLat, Longitude: reportLng}
		if !loc.Valid() {
			return nil, fmt.Errorf("coordinates out of range: %f, %f", reportLat, reportLng)
		}
		return &loc, nil
	}

	if !reportLocate {
		return nil, nil
	}

	pos, err := geo.Acquire(cmd.Context(), envLocator{}, locateTimeout(env.Cfg))
	if err != nil {
		fmt.Fprintln(os.Stderr, geo.CauseMessage(err))
		return nil, nil
	}
	return &pos, nil
}

// envLocator reads the position from HZ_LAT/HZ_LNG, with HZ_ACCURACY in
// meters as an optional third variable. It stands in for a real position
// source on machines that have one.
type envLocator struct{}

func (envLocator) Locate(ctx context.Context) (report.Location, error) {
	latStr, lngStr := os.Getenv("HZ_LAT"), os.Getenv("HZ_LNG")
	if latStr == "" || lngStr == "" {
		return report.Location{}, geo.ErrPositionUnavailable
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return report.Location{}, fmt.Errorf("%w: bad HZ_LAT", geo.ErrPositionUnavailable)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return report.Location{}, fmt.Errorf("%w: bad HZ_LNG", geo.ErrPositionUnavailable)
	}

	loc := report.Location{Latitude: lat, Longitude: lng}
	if accStr := os.Getenv("HZ_ACCURACY"); accStr != "" {
		if acc, err := strconv.ParseFloat(strings.TrimSpace(accStr), 64); err == nil {
			loc.Accuracy = &acc
		}
	}
	return loc, nil
}

// readAttachments loads each file as a transient attachment; the store
// converts them to their durable form at create time.
func readAttachments(paths []string) ([]report.Media, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	media := make([]report.Media, 0, len(paths))
	for _, p := range paths {
		blob, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read attachment: %w", err)
		}
		media = append(media, report.NewTransient(filepath.Base(p), blob))
	}
	return media, nil
}
