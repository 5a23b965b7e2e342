package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"
)

var cyclesCmd = &cobra.Command{
	Use:   "cycles",
	Short: "List the recorded collection cycles.",
	Run: func(cmd *cobra.Command, _ []string) {
		reader := openTraceReader(cmd)
		defer reader.Close()

		cycles, err := reader.ListCycles()
		if err != nil {
			log.Fatal().Err(err).Msg("cannot read cycles")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w,
			"GC\tCAUSE\tDURATION\tSTOPPED\tCONCURRENT\tFREED")

		for _, c := range cycles {
			duration := time.Duration(
				(c.EndTime - c.StartTime) * float64(time.Second))

			freed := int64(c.PreUsed) - int64(c.PostUsed)

			fmt.Fprintf(w, "%d\t%s\t%v\t%v\t%v\t%d\n",
				c.GCID,
				c.Cause,
				duration,
				time.Duration(c.StoppedNs),
				time.Duration(c.ConcurrentNs),
				freed,
			)
		}

		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(cyclesCmd)
}
