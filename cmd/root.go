package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ajmok/streamstats/internal/analytics"
)

var cfgFile string
var databasePath string
var topN int
var minPlaysTrackSkip int
var minPlaysArtistAlbumSkip int

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "streamstats",
	Short: "Analyzes a Spotify extended streaming history export",
	Long: `Computes listening statistics from a Spotify extended streaming history:
top tracks, artists, and albums, per-entity profiles, and time-of-day
listening patterns. Run 'import' on your export files first.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.streamstats.yaml)")

	rootCmd.PersistentFlags().StringVarP(
		&databasePath, "database", "d", "./streamstats.db", "Path to the SQLite snapshot database")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))

	rootCmd.PersistentFlags().IntVarP(
		&topN, "top", "n", 5, "Number of rows in each Top-N view")
	viper.BindPFlag("top_n", rootCmd.PersistentFlags().Lookup("top"))

	rootCmd.PersistentFlags().IntVar(
		&minPlaysTrackSkip, "min-plays-track-skip", 20,
		"Minimum plays for a track to appear in skip-percentage rankings")
	viper.BindPFlag("min_plays_track_skip", rootCmd.PersistentFlags().Lookup("min-plays-track-skip"))

	rootCmd.PersistentFlags().IntVar(
		&minPlaysArtistAlbumSkip, "min-plays-artist-skip", 100,
		"Minimum plays for an artist or album to appear in skip-percentage rankings")
	viper.BindPFlag("min_plays_artist_album_skip", rootCmd.PersistentFlags().Lookup("min-plays-artist-skip"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".streamstats" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".streamstats")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

// analysisConfig builds the core's tuning config from flags and config file.
func analysisConfig() analytics.Config {
	cfg := analytics.DefaultConfig()
	if n := viper.GetInt("top_n"); n > 0 {
		cfg.TopN = n
	}
	if n := viper.GetInt("min_plays_track_skip"); n > 0 {
		cfg.MinPlaysTrackSkip = n
	}
	if n := viper.GetInt("min_plays_artist_album_skip"); n > 0 {
		cfg.MinPlaysArtistAlbumSkip = n
	}
	return cfg
}
