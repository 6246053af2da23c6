package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajmok/streamstats/internal/analytics"
	"github.com/ajmok/streamstats/internal/history"
)

var clockCmd = &cobra.Command{
	Use:   "clock [from] [to (optional)]",
	Short: "Shows when you listen: by hour, weekday, day of month, and month",
	Long: `Buckets plays into four histograms: hour of day, day of week, day of
month, and month of year. Date strings look like 'yyyy', 'yyyy-mm', or
'yyyy-mm-dd'; with no dates the whole history is used.`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printClock(os.Stdout, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(clockCmd)
}

func printClock(out io.Writer, args []string) error {
	events, err := loadEvents(args)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(out, "No plays in the selected range.")
		return nil
	}

	printDistributions(out, events)
	return nil
}

// printDistributions writes the four temporal histogram tables for an
// event set, whole history or a single entity's subset.
func printDistributions(out io.Writer, events []history.Event) {
	dist := analytics.Distributions(events)
	fmt.Fprintf(out, "## By Hour of Day\n%s\n", bucketTable("Hour", dist.Hourly))
	fmt.Fprintf(out, "## By Day of Week\n%s\n", bucketTable("Day", dist.Weekday))
	fmt.Fprintf(out, "## By Day of Month\n%s\n", bucketTable("Day", dist.MonthDay))
	fmt.Fprintf(out, "## By Month\n%s\n", bucketTable("Month", dist.Monthly))
}
