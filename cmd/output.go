package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/svaunit/svabridge/bridge"
	"github.com/svaunit/svabridge/bridge/design"
	"github.com/svaunit/svabridge/bridge/trace"
)

// reasonOrder fixes the column order of reason counts.
var reasonOrder = []bridge.Reason{
	bridge.ReasonStart, bridge.ReasonSuccess, bridge.ReasonFailure,
	bridge.ReasonDisable, bridge.ReasonEnable, bridge.ReasonReset, bridge.ReasonKill,
	bridge.ReasonStepSuccess, bridge.ReasonStepFailure, bridge.ReasonUnknown,
}

func printSteps(w io.Writer, steps []design.StepResult) {
	if len(steps) == 0 {
		return
	}
	fmt.Fprintln(w, "=== Script ===")
	for _, s := range steps {
		fmt.Fprintln(w, s.String())
	}
}

func printTrace(w io.Writer, c *trace.Collector) {
	fmt.Fprintln(w, "=== Trace ===")
	_, _ = c.WriteTo(w)
}

func printSummary(w io.Writer, s *trace.Summary) {
	fmt.Fprintln(w, "=== Summary ===")
	fmt.Fprintf(w, "constructs: %d, events: %d\n", s.Assertions, s.TotalEvents)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "NAME\tKIND\tEVENTS")
	for _, r := range reasonOrder {
		fmt.Fprintf(tw, "\t%s", r)
	}
	fmt.Fprintln(tw)
	for _, cs := range s.Constructs {
		fmt.Fprintf(tw, "%s\t%s\t%d", cs.Name, cs.Kind, cs.Events)
		for _, r := range reasonOrder {
			fmt.Fprintf(tw, "\t%d", cs.ByReason[r])
		}
		fmt.Fprintln(tw)
	}
	_ = tw.Flush()
}

func printConstructs(w io.Writer, cs []bridge.Construct) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tFULL NAME")
	for _, c := range cs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.Kind.Label(), c.FullName)
	}
	_ = tw.Flush()
}

func printCoverStats(w io.Writer, name string, failed, succeeded int64) {
	if failed < 0 && succeeded < 0 {
		fmt.Fprintf(w, "%s: no cover construct\n", name)
		return
	}
	fmt.Fprintf(w, "%s: failed=%d succeeded=%d\n", name, failed, succeeded)
}

func printProfiles(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROFILE\tSTEP CALLBACKS\tPROPERTY DECL CALLBACKS\tSTEP CONTROL")
	for _, name := range bridge.ProfileNames() {
		caps, _ := bridge.LookupProfile(name)
		fmt.Fprintf(tw, "%s\t%t\t%t\t%t\n", name, caps.StepCallbacks, caps.PropertyDeclCallbacks, caps.StepControl)
	}
	_ = tw.Flush()
}
