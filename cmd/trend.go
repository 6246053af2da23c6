package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ajmok/streamstats/internal/analytics"
)

var trendBy string

var trendCmd = &cobra.Command{
	Use:   "trend [from] [to (optional)]",
	Short: "Shows listening volume over time",
	Long: `Buckets plays and listening minutes into calendar periods (--by day,
month, or year) and reports the busiest period plus how closely minutes
track play counts. Date strings look like 'yyyy', 'yyyy-mm', or
'yyyy-mm-dd'; with no dates the whole history is used.`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printTrend(os.Stdout, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(trendCmd)

	trendCmd.Flags().StringVar(&trendBy, "by", "month", "Period grain: day, month, or year")
}

func parseGrain(by string) (analytics.Grain, error) {
	switch by {
	case "day":
		return analytics.GrainDay, nil
	case "month":
		return analytics.GrainMonth, nil
	case "year":
		return analytics.GrainYear, nil
	default:
		return 0, fmt.Errorf("invalid grain %q (want day, month, or year)", by)
	}
}

func printTrend(out io.Writer, args []string) error {
	grain, err := parseGrain(trendBy)
	if err != nil {
		return err
	}

	events, err := loadEvents(args)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(out, "No plays in the selected range.")
		return nil
	}

	trend, err := analytics.TrendOver(events, grain)
	if err != nil {
		return err
	}

	a := Analysis{results: [][]string{{"Period", "Plays", "Minutes"}}}
	for _, pt := range trend.Points {
		a.results = append(a.results, []string{
			pt.Label, strconv.Itoa(pt.Plays), formatMinutes(pt.Minutes),
		})
	}
	fmt.Fprintf(out, "%s\n", a)

	fmt.Fprintf(out, "Most plays: %s with %d\n", trend.PeakPlays.Label, trend.PeakPlays.Plays)
	fmt.Fprintf(out, "Most minutes: %s with %.0f\n", trend.PeakMinutes.Label, trend.PeakMinutes.Minutes)
	fmt.Fprintf(out, "Minutes/plays correlation: %.2f\n", trend.Correlation)
	return nil
}
