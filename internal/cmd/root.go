// Package cmd implements the CLI of the application.
//
// parse - Parse a play-by-play XML file and emit the normalized tables
// show  - Display a previously generated enhanced play-by-play table
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/courtdata/pbparse/internal/config"
	"github.com/courtdata/pbparse/internal/log"
)

// BuildVersion is embedded at link time.
var BuildVersion = "master"

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pbparse",
	Short: "Normalize basketball play-by-play XML into box scores and lineups",
	Long:  ``,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	setupCLI()
	if errExecute := rootCmd.Execute(); errExecute != nil {
		os.Exit(1)
	}
}

func setupCLI() {
	rootCmd.Version = BuildVersion
	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches for pbparse.yml)")
}

// loadConfig reads config and installs the logger, returning the logger
// closer for the caller to defer.
func loadConfig() (config.Config, func(), error) {
	conf, errConfig := config.Read(cfgFile)
	if errConfig != nil {
		return config.Config{}, nil, errConfig
	}

	closer := log.MustCreateLogger(conf.Log.File, log.Level(conf.Log.Level))

	return conf, closer, nil
}
