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
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/rotblauer/cathills/common"
	"github.com/rotblauer/cathills/params"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cathills",
	Short: "Find the hills in GPS tracks",
	Long: `Cathills derives speeds, distances and terrain elevations for GPS tracks,
folds them into fixed-duration sections, and groups the sections into hills:
runs of consecutive sections going the same way, up or down.

Terrain elevations come from SRTM .hgt tiles (N50E014.hgt or N50E014.hgt.gz)
found in --srtm-dir, or SRTM_DATA_DIR.

Every flag can also be set in ~/.cathills.yaml, or in the environment
as CATHILLS_<FLAG>, eg. CATHILLS_SECTION_DURATION=2m.
A .env file in the working directory is loaded first.
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cathills.yaml)")
	rootCmd.PersistentFlags().String("datadir", params.DefaultDatadirRoot, "Root directory for the state DB and track files")
	rootCmd.PersistentFlags().String("verbosity", "info", "Log level: debug, info, warn, error")
	bindViperFlags("", rootCmd.PersistentFlags())
}

// bindViperFlags binds each flag to the viper key prefix+name,
// so it can also be set in the config file or the environment.
func bindViperFlags(prefix string, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if err := viper.BindPFlag(prefix+f.Name, f); err != nil {
			panic(err)
		}
	})
}

// initConfig reads in a .env file, the config file, and ENV variables if set.
func initConfig() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env", "error", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".cathills")
	}

	viper.SetEnvPrefix("CATHILLS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaultSlog installs a text logger on stderr at the configured verbosity.
func setDefaultSlog(cmd *cobra.Command, args []string) {
	level := common.SlogLevel(viper.GetString("verbosity"))
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	slog.Debug("Command", "name", cmd.Name(), "args", args, "datadir", datadir())
}

// datadir returns the --datadir root, with a leading ~ expanded.
func datadir() string {
	dir, err := homedir.Expand(viper.GetString("datadir"))
	if err != nil {
		return viper.GetString("datadir")
	}
	return filepath.Clean(dir)
}
