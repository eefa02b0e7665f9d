package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/labdc/abpower/abtest"
)

var (
	// binary arm counts
	successesA int // Successes in control (A)
	failuresA  int // Failures in control (A)
	successesB int // Successes in treatment (B)
	failuresB  int // Failures in treatment (B)

	// count arm totals
	eventsControl     float64 // Events observed in control
	exposureControl   float64 // Exposure of control
	eventsTreatment   float64 // Events observed in treatment
	exposureTreatment float64 // Exposure of treatment
)

// certaintyCmd computes Pr(p_B > p_A) for observed binary outcomes
var certaintyCmd = &cobra.Command{
	Use:   "certainty",
	Short: "Degree of certainty that treatment beats control for a binary outcome",
	Run: func(cmd *cobra.Command, args []string) {
		p, err := abtest.DegreeOfCertainty(successesA, failuresA, successesB, failuresB)
		if err != nil {
			logrus.Fatalf("computing certainty: %v", err)
		}
		logrus.Infof("A: %d/%d successes, B: %d/%d successes",
			successesA, successesA+failuresA, successesB, successesB+failuresB)
		if err := writeCertainty(os.Stdout, outputFormat, "Pr(p_B > p_A)", p); err != nil {
			logrus.Fatalf("writing result: %v", err)
		}
	},
}

// countsCmd computes Pr(rate_treatment > rate_control) for observed count totals
var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Degree of certainty that treatment's event rate exceeds control's",
	Run: func(cmd *cobra.Command, args []string) {
		p, err := abtest.DegreeOfCertaintyCounts(eventsControl, exposureControl, eventsTreatment, exposureTreatment)
		if err != nil {
			logrus.Fatalf("computing certainty: %v", err)
		}
		if err := writeCertainty(os.Stdout, outputFormat, "Pr(rate_treatment > rate_control)", p); err != nil {
			logrus.Fatalf("writing result: %v", err)
		}
	},
}

func init() {
	certaintyCmd.Flags().IntVar(&successesA, "successes-a", 0, "Successes in control (A)")
	certaintyCmd.Flags().IntVar(&failuresA, "failures-a", 0, "Failures in control (A)")
	certaintyCmd.Flags().IntVar(&successesB, "successes-b", 0, "Successes in treatment (B)")
	certaintyCmd.Flags().IntVar(&failuresB, "failures-b", 0, "Failures in treatment (B)")

	countsCmd.Flags().Float64Var(&eventsControl, "events-control", 0, "Total events in control")
	countsCmd.Flags().Float64Var(&exposureControl, "exposure-control", 1, "Total exposure of control")
	countsCmd.Flags().Float64Var(&eventsTreatment, "events-treatment", 0, "Total events in treatment")
	countsCmd.Flags().Float64Var(&exposureTreatment, "exposure-treatment", 1, "Total exposure of treatment")
}
