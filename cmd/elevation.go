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
	"strconv"

	"github.com/paulmach/orb"
	"github.com/rotblauer/cathills/elevation"
	"github.com/rotblauer/cathills/elevation/srtm"
	"github.com/rotblauer/cathills/params"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// elevationCmd represents the elevation command
var elevationCmd = &cobra.Command{
	Use:   "elevation LAT LON [LAT LON...]",
	Short: "Look up terrain elevations",
	Long: `Elevation prints the SRTM terrain elevation of each LAT LON pair.
Given more than one pair, it also profiles the path through them.

Examples:

  cathills elevation 49.1951 16.6068
  cathills elevation --intermediate 50.0 14.0 50.01 14.0
`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 || len(args)%2 != 0 {
			return errors.New("want LAT LON pairs")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)

		path := orb.LineString{}
		for i := 0; i < len(args); i += 2 {
			lat, err := strconv.ParseFloat(args[i], 64)
			if err != nil {
				log.Fatalln(err)
			}
			lon, err := strconv.ParseFloat(args[i+1], 64)
			if err != nil {
				log.Fatalln(err)
			}
			path = append(path, orb.Point{lon, lat})
		}

		config := params.DefaultSRTMConfig()
		if dir := viper.GetString("elevation.srtm-dir"); dir != "" {
			config.DataDir = dir
		}
		r, err := srtm.NewReader(config, nil)
		if err != nil {
			log.Fatalln(err)
		}
		interpolate := viper.GetBool("elevation.interpolate")

		for _, pt := range path {
			ele, err := r.Elevation(pt.Lat(), pt.Lon(), interpolate)
			if errors.Is(err, elevation.ErrUnavailable) {
				fmt.Printf("%.6f %.6f -\n", pt.Lat(), pt.Lon())
				continue
			}
			if err != nil {
				log.Fatalln(err)
			}
			fmt.Printf("%.6f %.6f %.1f\n", pt.Lat(), pt.Lon(), ele)
		}
		if len(path) < 2 {
			return
		}

		p, err := r.MultiElevations(path, viper.GetBool("elevation.intermediate"), interpolate)
		if errors.Is(err, elevation.ErrUnavailable) {
			fmt.Printf("samples=%d distance=%.3fkm ascent=- descent=- (%v)\n", len(p.Elevations), p.DistanceKm, err)
			return
		}
		if err != nil {
			log.Fatalln(err)
		}
		fmt.Printf("samples=%d distance=%.3fkm ascent=%.1fm descent=%.1fm\n",
			len(p.Elevations), p.DistanceKm, p.Ascent, p.Descent)
	},
}

func init() {
	rootCmd.AddCommand(elevationCmd)

	elevationCmd.Flags().String("srtm-dir", "", "Directory of SRTM .hgt tiles (default $SRTM_DATA_DIR or <datadir>/srtm)")
	elevationCmd.Flags().Bool("interpolate", false, "Interpolate between SRTM samples")
	elevationCmd.Flags().Bool("intermediate", false, "Add intermediate samples along the path")

	// Prefixed so they do not collide with the analyze flags of the same name.
	bindViperFlags("elevation.", elevationCmd.Flags())
}
