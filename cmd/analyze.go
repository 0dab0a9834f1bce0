/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rotblauer/cathills/api"
	"github.com/rotblauer/cathills/catz"
	"github.com/rotblauer/cathills/common"
	"github.com/rotblauer/cathills/conceptual"
	"github.com/rotblauer/cathills/elevation"
	"github.com/rotblauer/cathills/elevation/srtm"
	"github.com/rotblauer/cathills/params"
	"github.com/rotblauer/cathills/state"
	"github.com/rotblauer/cathills/types"
	"github.com/rotblauer/cathills/types/hill"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [FILE...]",
	Short: "Find the hills in GPS track files",
	Long: `Analyze reads each track file (GPX, GeoJSON, or newline-delimited GeoJSON features,
optionally gzipped) and prints its hills. With no files, or "-", it reads stdin.

Each file is one track; its id is the file name without extensions.

Sections close once they reach --section-duration. The partial section at the end of a track
is discarded unless --flush-trailing is set, and so is the last hill when the track
went on past its last section.

Examples:

  cathills analyze --srtm-dir ~/srtm ride.gpx
  zcat rides.json.gz | cathills analyze --id rides --skip-stationary --store
`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			select {
			case sig := <-common.Interrupted():
				slog.Warn("Interrupted", "signal", sig)
				cancel()
			case <-ctx.Done():
			}
		}()

		if _, err := analyzeConfig(); err != nil {
			log.Fatalln(err)
		}

		srtmConfig := params.DefaultSRTMConfig()
		if dir := viper.GetString("srtm-dir"); dir != "" {
			srtmConfig.DataDir = dir
		}
		reader, err := srtm.NewReader(srtmConfig, nil)
		if err != nil {
			log.Fatalln(err)
		}

		var st *state.State
		if viper.GetBool("store") {
			st, err = state.Open(datadir(), false)
			if err != nil {
				log.Fatalln(err)
			}
			defer st.Close()
		}

		if len(args) == 0 {
			args = []string{"-"}
		}
		for _, arg := range args {
			if err := ctx.Err(); err != nil {
				break
			}
			svc := elevation.NewCached(reader, params.DefaultElevationCacheTTL, srtmConfig.IntermediateSpacingM)
			if err := analyzeFile(ctx, arg, svc, st); err != nil {
				slog.Error("Failed to analyze track", "file", arg, "error", err)
				continue
			}
		}
		slog.Info("Analyze done",
			"files", len(args),
			"srtm.distance.km", humanize.FtoaWithDigits(reader.TotalDistance(), 3))
	},
}

func analyzeConfig() (*params.AnalyzeConfig, error) {
	config := params.DefaultAnalyzeConfig()
	config.Clean.Enabled = viper.GetBool("clean")
	config.Kinematics.Interpolate = viper.GetBool("interpolate")
	config.Kinematics.PythagoreanDistance = viper.GetBool("pythagorean")
	config.Kinematics.SkipStationary = viper.GetBool("skip-stationary")
	config.Kinematics.StationarySpeedKmh = viper.GetFloat64("stationary-kmh")
	config.Sections.TargetDuration = viper.GetDuration("section-duration")
	config.Sections.FlushTrailing = viper.GetBool("flush-trailing")
	config.Hills.FlushTrailing = viper.GetBool("flush-trailing")
	config.Profile.Enabled = viper.GetBool("profile")
	config.Profile.SteepestMinDistKm = viper.GetFloat64("steep-min-km")
	config.Locate = viper.GetBool("locate")
	return config, config.Sections.Validate()
}

func openTrackInput(arg string) (io.ReadCloser, conceptual.TrackID, error) {
	if arg == "-" {
		id := conceptual.TrackID(viper.GetString("id"))
		return io.NopCloser(os.Stdin), id, nil
	}
	id := conceptual.TrackIDFromPath(arg)
	if strings.HasSuffix(arg, ".gz") {
		r, err := catz.NewGZFileReader(arg)
		return r, id, err
	}
	f, err := os.Open(arg)
	return f, id, err
}

func analyzeFile(ctx context.Context, arg string, svc *elevation.Cached, st *state.State) error {
	in, id, err := openTrackInput(arg)
	if err != nil {
		return err
	}
	defer in.Close()

	config, err := analyzeConfig()
	if err != nil {
		return err
	}
	track := api.NewTrack(id, config, svc)
	raw, err := track.Decode(ctx, in, types.Format(viper.GetString("format")), viper.GetInt("dedupe"))
	if err != nil {
		return err
	}
	started := time.Now()
	a, err := track.Analyze(ctx, raw)
	if err != nil {
		return err
	}
	slog.Info("Analyzed track", "track", id,
		"points", humanize.Comma(int64(len(a.Points))),
		"hills", len(a.Hills),
		"cached.elevations", svc.Len(),
		"elapsed", time.Since(started).Round(time.Millisecond))

	printHills(os.Stdout, id, a)

	if st == nil {
		return nil
	}
	if !viper.GetBool("force") {
		current, err := track.Current(st, a.Fingerprint)
		if err != nil {
			return err
		}
		if current {
			slog.Info("Stored analysis is current", "track", id)
			return nil
		}
	}
	return track.Store(ctx, st, a)
}

func printHills(out io.Writer, id conceptual.TrackID, a *api.Analysis) {
	ascent, descent := "-", "-"
	if a.Profile != nil {
		ascent = humanize.FtoaWithDigits(a.Profile.TotalAscentM, 0)
		descent = humanize.FtoaWithDigits(a.Profile.TotalDescentM, 0)
	}
	fmt.Fprintf(out, "%s: %s km, %d sections, %d hills, +%sm -%sm\n",
		id, humanize.FtoaWithDigits(a.DistanceKm, 2), len(a.Sections), len(a.Hills), ascent, descent)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ANCHOR\tSTART\tROWS\tDIST\tTREND\tGRADE\tPLACE")
	for _, h := range a.Hills {
		if h.IsSkipSingleton {
			continue
		}
		grade := "-"
		if h.GradePercent != nil {
			grade = fmt.Sprintf("%.0f%%", *h.GradePercent)
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%dm\t%s\t%s\t%s\n",
			h.AnchorIndex(), h.Anchor.Time.Format(time.TimeOnly), h.RowCount, h.DistM,
			hill.Arrow(h.ElevationDeltaM), grade, h.Locality)
	}
	w.Flush()

	for i, h := range a.Steepest {
		fmt.Fprintf(out, "steep #%d: anchor %d, %.0f%% over %dm %s\n",
			i+1, h.AnchorIndex(), *h.GradePercent, h.DistM, h.Locality)
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	flags := analyzeCmd.Flags()
	kin := params.DefaultKinematicsConfig()
	sec := params.DefaultSectionConfig()
	cln := params.DefaultCleanConfig()
	prof := params.DefaultProfileConfig()

	flags.String("id", "stdin", "Track id for input read from stdin")
	flags.String("format", "", "Input format: gpx, geojson, or empty to sniff")
	flags.Int("dedupe", params.DefaultDedupeCacheSize, "Drop points equal to one of the last N points (0 disables)")
	flags.Bool("clean", cln.Enabled, "Drop points off the globe, teleportations, and wild device elevations")
	flags.String("srtm-dir", "", "Directory of SRTM .hgt tiles (default $SRTM_DATA_DIR or <datadir>/srtm)")

	flags.Bool("interpolate", kin.Interpolate, "Interpolate elevations between SRTM samples")
	flags.Bool("pythagorean", kin.PythagoreanDistance, "Correct distances for the terrain slope")
	flags.Bool("skip-stationary", kin.SkipStationary, "Leave slow points out of sections")
	flags.Float64("stationary-kmh", kin.StationarySpeedKmh, "Speed below which a point is stationary")

	flags.Duration("section-duration", sec.TargetDuration, "Duration a section must reach before it closes")
	flags.Bool("flush-trailing", sec.FlushTrailing, "Keep the partial section and hill at the end of a track")

	flags.Bool("profile", prof.Enabled, "Profile section elevations along densified paths")
	flags.Float64("steep-min-km", prof.SteepestMinDistKm, "Minimum length of a hill ranked as steep")
	flags.Bool("locate", false, "Reverse geocode hill starts (loads large datasets)")

	flags.Bool("store", false, "Store the analysis under --datadir")
	flags.Bool("force", false, "Store even if the stored analysis is current")

	bindViperFlags("", flags)
}
