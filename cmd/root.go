package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// CLI flags shared by the design-driven commands
	designPath  string // Path to the YAML design/scenario file
	logLevel    string // Log verbosity level
	profileName string // Simulator profile override
	requestor   string // Requestor override passed with every drain
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "svabridge",
	Short: "Assertion and coverage bridge between a simulator and a test framework",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	for _, c := range []*cobra.Command{runCmd, discoverCmd, statsCmd} {
		c.Flags().StringVar(&designPath, "design", "", "Path to the YAML design file")
		c.Flags().StringVar(&profileName, "profile", "", "Simulator profile, overrides the design's (see the profiles command)")
		_ = c.MarkFlagRequired("design")
	}
	runCmd.Flags().StringVar(&requestor, "requestor", "", "Requestor name passed with every drain, overrides the design's")
	runCmd.Flags().StringVar(&journalPath, "journal", "", "SQLite file to record the run into")
	statsCmd.Flags().StringVar(&coverName, "cover", "", "Cover construct name")
	_ = statsCmd.MarkFlagRequired("cover")

	rootCmd.AddCommand(runCmd, discoverCmd, statsCmd, profilesCmd)
}
