package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajmok/streamstats/internal/analytics"
)

var overviewCmd = &cobra.Command{
	Use:   "overview [from] [to (optional)]",
	Short: "Summarizes the whole listening history",
	Long: `Prints headline statistics plus Top-N tracks, artists, and albums.
Date strings look like 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'; with no dates the
whole history is summarized.`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printOverview(os.Stdout, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

func printOverview(out io.Writer, args []string) error {
	events, err := loadEvents(args)
	if err != nil {
		return err
	}
	cfg := analysisConfig()

	stats, err := analytics.Overview(events)
	if errors.Is(err, analytics.ErrNoData) {
		fmt.Fprintln(out, "No plays in the selected range.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Total plays: %d (%d without skips, %.1f%% skipped)\n",
		stats.TotalPlays, stats.PlaysNoSkips, stats.SkipPercentage)
	fmt.Fprintf(out, "Total listening time: %.0f minutes\n", stats.TotalMinutes)
	fmt.Fprintf(out, "Unique tracks: %d, artists: %d, albums: %d\n",
		stats.UniqueTracks, stats.UniqueArtists, stats.UniqueAlbums)

	firstLast, err := analytics.FirstLast(events)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "First listen: %s - %s by %s\n",
		firstLast.First.Time.Format("2006-01-02"), firstLast.First.Track, firstLast.First.Artist)
	fmt.Fprintf(out, "Last listen:  %s - %s by %s\n",
		firstLast.Last.Time.Format("2006-01-02"), firstLast.Last.Track, firstLast.Last.Artist)
	fmt.Fprintf(out, "That's %d days apart.\n\n", firstLast.TimespanDays)

	trackSums, err := analytics.Aggregate(events, analytics.GroupByTrack)
	if err != nil {
		return err
	}
	tracks := analytics.RankTracks(trackSums, cfg)
	fmt.Fprintf(out, "## Top %d Tracks by Plays\n%s\n", cfg.TopN,
		summaryTable(tracks.ByPlays, analytics.GroupByTrack, ""))
	fmt.Fprintf(out, "## Top %d Tracks by Minutes\n%s\n", cfg.TopN,
		summaryTable(tracks.ByMinutes, analytics.GroupByTrack, ""))
	fmt.Fprintf(out, "## Least Skipped Tracks (min %d plays)\n%s\n", cfg.MinPlaysTrackSkip,
		summaryTable(tracks.LowestSkip, analytics.GroupByTrack, ""))
	fmt.Fprintf(out, "## Most Skipped Tracks (min %d plays)\n%s\n", cfg.MinPlaysTrackSkip,
		summaryTable(tracks.HighestSkip, analytics.GroupByTrack, ""))

	artistSums, err := analytics.Aggregate(events, analytics.GroupByArtist)
	if err != nil {
		return err
	}
	artists := analytics.RankArtists(artistSums, cfg)
	fmt.Fprintf(out, "## Top %d Artists by Plays\n%s\n", cfg.TopN,
		summaryTable(artists.ByPlays, analytics.GroupByArtist, ""))
	fmt.Fprintf(out, "## Top %d Artists by Diversity\n%s\n", cfg.TopN,
		summaryTable(artists.ByDiversity, analytics.GroupByArtist, ""))

	albumSums, err := analytics.Aggregate(events, analytics.GroupByAlbum)
	if err != nil {
		return err
	}
	albums := analytics.RankAlbums(albumSums, cfg)
	fmt.Fprintf(out, "## Top %d Albums by Plays\n%s\n", cfg.TopN,
		summaryTable(albums.ByPlays, analytics.GroupByAlbum, ""))
	fmt.Fprintf(out, "## Top %d Albums by Time\n%s\n", cfg.TopN,
		summaryTable(albums.ByTime, analytics.GroupByAlbum, ""))

	return nil
}
