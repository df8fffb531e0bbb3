package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/bcbpscan/internal/airports"
	"github.com/gyeh/bcbpscan/internal/config"
	"github.com/gyeh/bcbpscan/internal/exitcode"
	"github.com/gyeh/bcbpscan/internal/logging"
	"github.com/gyeh/bcbpscan/internal/normalize"
)

var (
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "bcbpscan",
	Short: "IATA bar-coded boarding pass decoder and Postgres bulk loader",
	Long: "Decodes BCBP payload strings, exports them to Parquet, and bulk-loads " +
		"them into Postgres via the COPY protocol.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			if err := cfg.LoadFromFile(configPath); err != nil {
				log := logging.Setup(cfg.LogFormat)
				log.Error().Err(err).Msg("config file invalid")
				os.Exit(exitcode.UsageError)
			}
		}
		if err := cfg.ApplyDefaults(); err != nil {
			log := logging.Setup(cfg.LogFormat)
			log.Error().Err(err).Msg("config invalid")
			os.Exit(exitcode.UsageError)
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("BCBP_DB_URL"), "Postgres connection string (or set BCBP_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&configPath, "config", "", "Optional YAML config file")
	pf.StringSliceVar(&cfg.FormatCodes, "format-codes", nil, "Accepted format codes (default: every known code)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}

// addCityFlags registers the airport and city lookup files on a command.
func addCityFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cfg.AirportsFile, "airports", "", "JSON file of airport → city code mappings")
	cmd.Flags().StringVar(&cfg.CitiesFile, "cities", "", "JSON file of city names")
}

// loadCities returns the configured airport directory, or nil when no
// lookup files are set.
func loadCities(log zerolog.Logger) normalize.Cities {
	if cfg.AirportsFile == "" && cfg.CitiesFile == "" {
		return nil
	}
	dir, err := airports.Load(cfg.AirportsFile, cfg.CitiesFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to load airport directory")
		os.Exit(exitcode.ValidationError)
	}
	log.Info().Int("airports", dir.Len()).Msg("airport directory loaded")
	return dir
}
