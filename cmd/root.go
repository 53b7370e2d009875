package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/autobrr/regexmatcher/pkg/config"
	"github.com/autobrr/regexmatcher/pkg/logger"
	"github.com/autobrr/regexmatcher/pkg/runtime"
	"github.com/autobrr/regexmatcher/pkg/stringutils"
)

var (
	// Global flags
	flagLogLevel   = 0
	flagConfigFile = ""
	flagLogFile    = ""

	// Global vars
	log         *logrus.Entry
	initialized bool
)

var rootCmd = &cobra.Command{
	Use:   "regexmatcher",
	Short: "Match text against a set of regular expressions",
	Long: `A CLI that compiles a set of PCRE-style regular expressions from its config and pattern
lists, and reports which of them match each line of its input.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Parse persistent flags
	rootCmd.PersistentFlags().StringVarP(&flagConfigFile, "config", "c", flagConfigFile, "Config file")
	rootCmd.PersistentFlags().StringVarP(&flagLogFile, "log", "l", flagLogFile, "Log file")
	rootCmd.PersistentFlags().CountVarP(&flagLogLevel, "verbose", "v", "Verbose level")
}

func initCore(showAppInfo bool) {
	if initialized {
		return
	}

	// Init Logging
	if err := logger.Init(flagLogFile, flagLogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	log = logger.GetLogger("app")

	// Init Config
	if err := config.Init(flagConfigFile); err != nil {
		log.WithError(err).Fatal("Failed to initialize config")
	}

	// Show Using
	if showAppInfo {
		log.Infof("Using %s = %s", stringutils.LeftJust("VERSION", " ", 10), runtime.Version)
		config.ShowUsing()
		if flagLogFile != "" {
			log.Infof("Using %s = %q", stringutils.LeftJust("LOG", " ", 10), flagLogFile)
		}
		log.Info("------------------")
	}

	initialized = true
}
