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
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/paulmach/orb"
	"github.com/rotblauer/cathills/conceptual"
	"github.com/rotblauer/cathills/metrics/influxdb"
	"github.com/rotblauer/cathills/params"
	"github.com/rotblauer/cathills/state"
	"github.com/rotblauer/cathills/types/hill"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored track analyses",
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		st, err := state.Open(datadir(), true)
		if err != nil {
			log.Fatalln(err)
		}
		defer st.Close()

		sums, err := st.Summaries()
		if err != nil {
			log.Fatalln(err)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TRACK\tSTART\tPOINTS\tKM\tHILLS\tASCENT\tSTORED")
		for _, s := range sums {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d\t%.0fm\t%s\n",
				s.TrackID, s.Start.Format(time.DateTime), humanize.Comma(int64(s.Points)),
				s.DistanceKm, s.Hills, s.AscentM, humanize.Time(s.StoredAt))
		}
		w.Flush()
	},
}

// nearbyCmd represents the nearby command
var nearbyCmd = &cobra.Command{
	Use:   "nearby LAT LON",
	Short: "List stored hills starting near a location",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		lat, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			log.Fatalln(err)
		}
		lon, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			log.Fatalln(err)
		}

		st, err := state.Open(datadir(), true)
		if err != nil {
			log.Fatalln(err)
		}
		defer st.Close()

		records, err := st.HillsNear(orb.Point{lon, lat})
		if err != nil {
			log.Fatalln(err)
		}
		printRecords(records)
	},
}

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export TRACK...",
	Short: "Export stored hills to InfluxDB",
	Long: `Export writes the stored hills of each track to InfluxDB as "hill" points.

The connection is configured by INFLUXDB_URL, INFLUXDB_TOKEN, INFLUXDB_ORG and INFLUXDB_BUCKET,
which may also be set in a .env file.
`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		config := params.DefaultInfluxConfig()
		if !config.Valid() {
			log.Fatalln(influxdb.ErrNotConfigured)
		}

		st, err := state.Open(datadir(), true)
		if err != nil {
			log.Fatalln(err)
		}
		defer st.Close()

		var records []hill.Record
		for _, arg := range args {
			rs, err := st.GetHills(conceptual.TrackID(arg))
			if errors.Is(err, state.ErrNotFound) {
				log.Printf("No hills stored for %s", arg)
				continue
			}
			if err != nil {
				log.Fatalln(err)
			}
			records = append(records, rs...)
		}
		if err := influxdb.ExportHills(config, records); err != nil {
			log.Fatalln(err)
		}
		fmt.Printf("Exported %d hills\n", len(records))
	},
}

func printRecords(records []hill.Record) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TRACK\tANCHOR\tSTART\tLAT\tLON\tDIST\tTREND\tGRADE\tPLACE")
	for _, r := range records {
		grade := "-"
		if r.GradePercent != nil {
			grade = fmt.Sprintf("%.0f%%", *r.GradePercent)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%.5f\t%.5f\t%dm\t%s\t%s\t%s\n",
			r.TrackID, r.AnchorIndex, r.Start.Format(time.DateTime), r.Lat, r.Lon,
			r.DistM, hill.Arrow(r.ElevationDeltaM), grade, r.Locality)
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(nearbyCmd)
	rootCmd.AddCommand(exportCmd)
}
