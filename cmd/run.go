package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/svaunit/svabridge/bridge"
	"github.com/svaunit/svabridge/bridge/design"
	"github.com/svaunit/svabridge/bridge/journal"
	"github.com/svaunit/svabridge/bridge/trace"
)

var (
	journalPath string // SQLite journal output
	coverName   string // Cover construct queried by `stats`
)

// loadDesign reads the design file and applies command-line overrides.
func loadDesign() (*design.Design, error) {
	d, err := design.Load(designPath)
	if err != nil {
		return nil, err
	}
	if profileName != "" {
		d.Simulator.Profile = profileName
	}
	if requestor != "" {
		d.Requestor = requestor
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid design %s: %w", designPath, err)
	}
	return d, nil
}

// runCmd executes the design's scenario and prints what the consumer received
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a design scenario through the bridge",
	Run: func(cmd *cobra.Command, args []string) {
		d, err := loadDesign()
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		collector := trace.NewCollector()
		consumers := []bridge.Consumer{collector}

		var j *journal.Journal
		if journalPath != "" {
			j, err = journal.Open(journalPath)
			if err != nil {
				logrus.Fatalf("Opening journal: %v", err)
			}
			defer j.Close()
			runID, err := j.BeginRun(context.Background(), designPath)
			if err != nil {
				logrus.Fatalf("Starting journal run: %v", err)
			}
			logrus.Infof("Journal run %s in %s", runID, journalPath)
			consumers = append(consumers, j)
		}

		res, err := design.Execute(d, bridge.MultiConsumer(consumers...))
		if err != nil {
			logrus.Fatalf("Scenario failed: %v", err)
		}
		if j != nil && j.Err() != nil {
			logrus.Errorf("Journal incomplete: %v", j.Err())
		}

		out := cmd.OutOrStdout()
		printSteps(out, res.Steps)
		printTrace(out, collector)
		printSummary(out, trace.Summarize(collector))
		logrus.Info("Scenario complete.")
	},
}

// discoverCmd lists the constructs a discovery pass finds
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List the assertion constructs found in a design",
	Run: func(cmd *cobra.Command, args []string) {
		d, err := loadDesign()
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		sim, err := d.Build()
		if err != nil {
			logrus.Fatalf("Building design: %v", err)
		}
		caps, err := d.Capabilities()
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		b := bridge.New(sim, trace.NewCollector(), bridge.WithCapabilities(caps))
		b.SetActiveScope(bridge.NamedScope(d.Scope))
		printConstructs(cmd.OutOrStdout(), b.Discover())
	},
}

// statsCmd runs the scenario and reports one cover's counters
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Run a design scenario and print a cover construct's statistics",
	Run: func(cmd *cobra.Command, args []string) {
		d, err := loadDesign()
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		res, err := design.Execute(d, trace.NewCollector())
		if err != nil {
			logrus.Fatalf("Scenario failed: %v", err)
		}
		// -1 marks "no such cover"; the accessor leaves it untouched
		failed, succeeded := int64(-1), int64(-1)
		res.Bridge.ReadCoverStatistics(coverName, &failed, &succeeded)
		printCoverStats(cmd.OutOrStdout(), coverName, failed, succeeded)
	},
}

// profilesCmd lists the known simulator profiles
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List simulator capability profiles",
	Run: func(cmd *cobra.Command, args []string) {
		printProfiles(cmd.OutOrStdout())
	},
}
