package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajmok/streamstats/internal/analytics"
)

var (
	albumExact  bool
	albumArtist string
	albumYaml   bool
	albumAll    bool
	albumClock  bool
)

var albumCmd = &cobra.Command{
	Use:   "album <name> [from] [to (optional)]",
	Short: "Shows the listening profile for one album",
	Long: `Searches the history for an album by name (case-insensitive substring by
default) and prints its listening profile with a per-song breakdown. If the
name matches several distinct albums, the candidates are listed so you can
refine the search with --artist. Trailing date arguments restrict the
profile to that range.`,
	Args: cobra.RangeArgs(1, 3),
	Run: func(cmd *cobra.Command, args []string) {
		err := printAlbum(os.Stdout, args[0], args[1:])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(albumCmd)

	albumCmd.Flags().BoolVar(&albumExact, "exact", false, "Match the name exactly (case-sensitive)")
	albumCmd.Flags().StringVar(&albumArtist, "artist", "", "Narrow the search to this artist")
	albumCmd.Flags().BoolVar(&albumYaml, "yaml", false, "Emit the profile as YAML")
	albumCmd.Flags().BoolVar(&albumAll, "all", false, "Show every song on the album, not just the Top-N")
	albumCmd.Flags().BoolVar(&albumClock, "clock", false, "Also show the album's temporal histograms")
}

func printAlbum(out io.Writer, name string, dateArgs []string) error {
	events, err := loadEvents(nil)
	if err != nil {
		return err
	}

	res := analytics.Resolve(events, analytics.KindAlbum, analytics.Query{
		Text:   name,
		Exact:  albumExact,
		Artist: albumArtist,
	})
	switch res.State {
	case analytics.NotFound:
		fmt.Fprintf(out, "Could not find an album containing %q\n", name)
		return nil
	case analytics.Ambiguous:
		fmt.Fprintf(out, "Found multiple (%d) albums - please refine your search:\n%s",
			res.Distinct, candidateTable(res.Candidates, analytics.KindAlbum))
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
	profile, err := analytics.AlbumStats(subset, cfg)
	if err != nil {
		return err
	}

	if albumYaml {
		return writeYaml(out, profile)
	}

	fmt.Fprintf(out, "%s by %s\n\n", profile.Album, profile.Artist)
	fmt.Fprintf(out, "Plays: %d across %d track(s)\n", profile.TotalPlays, profile.UniqueTracks)
	fmt.Fprintf(out, "Total listening time: %.1f hours\n", profile.TotalHours)
	printSummary(out, profile.ProfileSummary)

	rows := profile.TopTracks
	title := fmt.Sprintf("Top %d Songs", len(rows))
	if albumAll {
		rows = profile.Tracks
		title = "All Songs"
	}
	fmt.Fprintf(out, "\n## %s\n%s", title, breakdownTable(rows, true, ""))

	if albumClock {
		fmt.Fprintln(out)
		printDistributions(out, subset)
	}
	return nil
}
