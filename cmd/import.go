package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ajmok/streamstats/internal/history"
	"github.com/ajmok/streamstats/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <files...>",
	Short: "Imports streaming history export files into the snapshot database",
	Long: `Parses one or more Spotify extended streaming history files (.json or
.json.gz), canonicalizes track identities, and stores the events in the
SQLite snapshot so later commands load instantly. Importing the same files
again is harmless.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := runImport(viper.GetString("database"), args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(dbPath string, paths []string) error {
	events, err := history.LoadFiles(paths)
	if err != nil {
		return fmt.Errorf("loading export: %w", err)
	}

	s, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer s.Close()

	inserted, err := s.SaveEvents(events)
	if err != nil {
		return fmt.Errorf("saving events: %w", err)
	}

	total, err := s.Count()
	if err != nil {
		return fmt.Errorf("counting events: %w", err)
	}

	fmt.Printf("Imported %d new events (%d parsed, %d total in snapshot)\n",
		inserted, len(events), total)
	return nil
}

// loadEvents opens the snapshot and returns the events in the range named
// by the command's date args (all events when args is empty).
func loadEvents(args []string) ([]history.Event, error) {
	start, end, err := parseDateRangeFromArgs(args)
	if err != nil {
		return nil, err
	}

	s, err := store.New(viper.GetString("database"))
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer s.Close()

	exists, err := s.Exists()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("snapshot is empty - run 'import' on your export files first")
	}

	if start.IsZero() && end.IsZero() {
		return s.LoadEvents()
	}
	return s.LoadEventsInRange(start, end)
}

// filterResolved narrows a resolved entity's events to the range named by
// trailing date args. Resolution always runs over the full history, so a
// narrow range cannot turn one entity into several.
func filterResolved(events []history.Event, dateArgs []string) ([]history.Event, error) {
	start, end, err := parseDateRangeFromArgs(dateArgs)
	if err != nil {
		return nil, err
	}
	if start.IsZero() && end.IsZero() {
		return events, nil
	}
	return history.FilterRange(events, start, end), nil
}
