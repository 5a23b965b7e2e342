package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"
)

var pausesCmd = &cobra.Command{
	Use:   "pauses",
	Short: "List the recorded stop-the-world pauses.",
	Long: "`pauses` lists every recorded pause and prints aggregate pause " +
		"statistics. `pauses --gc-id [N]` restricts the listing to one cycle.",
	Run: func(cmd *cobra.Command, _ []string) {
		reader := openTraceReader(cmd)
		defer reader.Close()

		gcID, _ := cmd.Flags().GetUint64("gc-id")

		pauses, err := reader.ListPauses(gcID)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot read pauses")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "GC\tNAME\tDURATION")

		var total, longest time.Duration
		for _, p := range pauses {
			duration := time.Duration(
				(p.EndTime - p.StartTime) * float64(time.Second))

			total += duration
			if duration > longest {
				longest = duration
			}

			fmt.Fprintf(w, "%d\t%s\t%v\n", p.GCID, p.Name, duration)
		}

		w.Flush()

		if len(pauses) > 0 {
			fmt.Printf("\n%d pauses, total %v, max %v, avg %v\n",
				len(pauses),
				total,
				longest,
				total/time.Duration(len(pauses)),
			)
		}
	},
}

func init() {
	rootCmd.AddCommand(pausesCmd)
	pausesCmd.Flags().Uint64("gc-id", 0,
		"Only list pauses of the given collection cycle")
}
