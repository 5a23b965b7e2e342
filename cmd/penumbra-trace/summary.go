package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the time spent in each phase.",
	Run: func(cmd *cobra.Command, _ []string) {
		reader := openTraceReader(cmd)
		defer reader.Close()

		totals, err := reader.PhaseTotals()
		if err != nil {
			log.Fatal().Err(err).Msg("cannot read phase totals")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PHASE\tCOUNT\tTOTAL\tAVG")

		for _, t := range totals {
			total := time.Duration(t.TotalSeconds * float64(time.Second))

			fmt.Fprintf(w, "%s\t%d\t%v\t%v\n",
				t.Name,
				t.Count,
				total,
				total/time.Duration(t.Count),
			)
		}

		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
