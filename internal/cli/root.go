package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"lattice-pricer/internal/config"
	"lattice-pricer/internal/lattice"
	"lattice-pricer/internal/logging"
	"lattice-pricer/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.RunStore
	Pricer *lattice.Pricer
}

// Shutdown releases the application's resources.
func (a *App) Shutdown() {
	if a.Pricer != nil {
		a.Pricer.Close()
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close store")
		}
	}
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
		Pricer: lattice.NewPricer(cfg.Pricing.Workers),
	}

	if cfg.Database.Enabled {
		runStore, err := store.NewSQLiteStore(cfg.Database.Path)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize run store, history will be unavailable")
		} else {
			app.Store = runStore
			logger.Debug().Str("path", cfg.Database.Path).Msg("Run store initialized")
		}
	}

	rootCmd := &cobra.Command{
		Use:   "pricer",
		Short: "Trinomial lattice option pricer",
		Long: `Lattice Pricer values American and European vanilla options on a
recombining trinomial tree of the underlying price.

The lattice is calibrated per node by moment matching against the
continuous diffusion; European prices are compared against the
closed-form Black-Scholes value. Every run can be recorded in a local
SQLite database for later inspection.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Shutdown()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newGreeksCmd(app))
	rootCmd.AddCommand(newTreeCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))
	rootCmd.AddCommand(newVersionCmd(app))

	return rootCmd
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
				return
			}
			output.Printf("pricer %s\n", Version)
		},
	}
}
