package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajmok/streamstats/internal/analytics"
)

var (
	artistExact bool
	artistYaml  bool
	artistClock bool
)

var artistCmd = &cobra.Command{
	Use:   "artist <name> [from] [to (optional)]",
	Short: "Shows the listening profile for one artist",
	Long: `Searches the history for an artist by name (case-insensitive substring by
default) and prints their listening profile with per-song and per-album
breakdowns. If the name matches several distinct artists, the candidates
are listed. Trailing date arguments restrict the profile to that range.`,
	Args: cobra.RangeArgs(1, 3),
	Run: func(cmd *cobra.Command, args []string) {
		err := printArtist(os.Stdout, args[0], args[1:])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(artistCmd)

	artistCmd.Flags().BoolVar(&artistExact, "exact", false, "Match the name exactly (case-sensitive)")
	artistCmd.Flags().BoolVar(&artistYaml, "yaml", false, "Emit the profile as YAML")
	artistCmd.Flags().BoolVar(&artistClock, "clock", false, "Also show the artist's temporal histograms")
}

func printArtist(out io.Writer, name string, dateArgs []string) error {
	events, err := loadEvents(nil)
	if err != nil {
		return err
	}

	res := analytics.Resolve(events, analytics.KindArtist, analytics.Query{Text: name, Exact: artistExact})
	switch res.State {
	case analytics.NotFound:
		fmt.Fprintf(out, "Could not find an artist containing %q\n", name)
		return nil
	case analytics.Ambiguous:
		fmt.Fprintf(out, "Found multiple (%d) artists - please refine your search:\n%s",
			res.Distinct, candidateTable(res.Candidates, analytics.KindArtist))
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

	cfg := analysisConfig()
	profile, err := analytics.ArtistStats(subset, cfg)
	if err != nil {
		return err
	}

	if artistYaml {
		return writeYaml(out, profile)
	}

	fmt.Fprintf(out, "%s\n\n", profile.Artist)
	fmt.Fprintf(out, "Plays: %d across %d track(s) and %d album(s)\n",
		profile.TotalPlays, profile.UniqueTracks, profile.UniqueAlbums)
	fmt.Fprintf(out, "Total listening time: %.1f hours\n", profile.TotalHours)
	printSummary(out, profile.ProfileSummary)

	fmt.Fprintf(out, "\n## Top %d Songs\n%s", len(profile.TopTracks),
		breakdownTable(profile.TopTracks, false, ""))
	fmt.Fprintf(out, "\n## Albums\n%s",
		summaryTable(profile.Albums, analytics.GroupByAlbum, ""))

	if artistClock {
		fmt.Fprintln(out)
		printDistributions(out, subset)
	}
	return nil
}
