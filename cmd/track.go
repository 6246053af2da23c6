package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ajmok/streamstats/internal/analytics"
)

var (
	trackExact  bool
	trackArtist string
	trackAlbum  string
	trackYaml   bool
	trackClock  bool
)

var trackCmd = &cobra.Command{
	Use:   "track <name> [from] [to (optional)]",
	Short: "Shows the listening profile for one track",
	Long: `Searches the history for a track by name (case-insensitive substring by
default) and prints its listening profile. If the name matches several
distinct tracks, the candidates are listed so you can refine the search
with --artist or --album. Trailing date arguments restrict the profile to
that range.`,
	Args: cobra.RangeArgs(1, 3),
	Run: func(cmd *cobra.Command, args []string) {
		err := printTrack(os.Stdout, args[0], args[1:])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)

	trackCmd.Flags().BoolVar(&trackExact, "exact", false, "Match the name exactly (case-sensitive)")
	trackCmd.Flags().StringVar(&trackArtist, "artist", "", "Narrow the search to this artist")
	trackCmd.Flags().StringVar(&trackAlbum, "album", "", "Narrow the search to this album")
	trackCmd.Flags().BoolVar(&trackYaml, "yaml", false, "Emit the profile as YAML")
	trackCmd.Flags().BoolVar(&trackClock, "clock", false, "Also show the track's temporal histograms")
}

func printTrack(out io.Writer, name string, dateArgs []string) error {
	events, err := loadEvents(nil)
	if err != nil {
		return err
	}

	res := analytics.Resolve(events, analytics.KindTrack, analytics.Query{
		Text:   name,
		Exact:  trackExact,
		Artist: trackArtist,
		Album:  trackAlbum,
	})
	switch res.State {
	case analytics.NotFound:
		fmt.Fprintf(out, "No matches found for track %q\n", name)
		return nil
	case analytics.Ambiguous:
		fmt.Fprintf(out, "Found multiple (%d) tracks - please refine your search:\n%s",
			res.Distinct, candidateTable(res.Candidates, analytics.KindTrack))
		return nil
	}

	subset, err := filterResolved(res.Events, dateArgs)
	if err != nil {
		return err
	}
	if len(subset) == 0 {
		fmt.Fprintln(out, "No plays in the selected range.")
		return nil
	}

	profile, err := analytics.TrackStats(subset)
	if err != nil {
		return err
	}

	if trackYaml {
		return writeYaml(out, profile)
	}

	fmt.Fprintf(out, "%s by %s (from %s)\n\n", profile.Track, profile.Artist, profile.Album)
	fmt.Fprintf(out, "Plays: %d (%d full, %d skipped, %.1f%% listen rate)\n",
		profile.TotalPlays, profile.FullPlays, profile.TotalSkips, profile.ListenRate)
	fmt.Fprintf(out, "Total listening time: %.1f hours\n", profile.TotalHours)
	printSummary(out, profile.ProfileSummary)

	if trackClock {
		fmt.Fprintln(out)
		printDistributions(out, subset)
	}
	return nil
}

// printSummary writes the shared profile fields.
func printSummary(out io.Writer, s analytics.ProfileSummary) {
	fmt.Fprintf(out, "First listen: %s, last listen: %s (%d days apart, %d year(s) active)\n",
		s.FirstEvent.Time.Format("2006-01-02"), s.LastEvent.Time.Format("2006-01-02"),
		s.TimespanDays, s.YearsActive)
	fmt.Fprintf(out, "Peak month: %s with %d plays\n",
		s.PeakMonth.Format("January 2006"), s.PeakMonthPlays)
	fmt.Fprintf(out, "Most active day: %s with %d plays\n",
		s.MostActiveDay.Format("2006-01-02"), s.MostActiveDayPlays)
	fmt.Fprintf(out, "Average plays per month: %.1f\n", s.AvgPlaysPerMonth)
}

func writeYaml(out io.Writer, v interface{}) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	return encoder.Close()
}
