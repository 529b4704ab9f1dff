// Package cmd provides CLI commands for kassenbuch.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vereinskasse/kassenbuch/internal/config"
	"github.com/vereinskasse/kassenbuch/internal/ledger"
	"github.com/vereinskasse/kassenbuch/internal/store"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "kassenbuch",
	Short: "Multi-register cash ledger for events",
	Long: `kassenbuch tracks deposits and withdrawals across named cash
registers and a bank account, per event.

It supports:
- An HTTP API over the ledger (serve)
- Full balance recalculation from the transaction log (recalc)
- Resetting an event's log and balances (reset)
- XLSX export and import of the transaction log (export, import)
- Per-event totals (stats)

Example:
  kassenbuch serve
  kassenbuch recalc --event 4f1c...
  kassenbuch export --event 4f1c... --out transaktionen.xlsx`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recalcCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
}

// setup loads the configuration, opens the store and builds the engine.
// The returned close func releases the database.
func setup() (*config.Config, *store.Store, *ledger.Engine, func(), error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	st, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("open store: %w", err)
	}
	closeStore := func() {
		if err := st.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}

	// A configured registers file overrides the stored directory.
	registers, err := cfg.LoadRegisters()
	if err != nil {
		closeStore()
		return nil, nil, nil, nil, err
	}
	if registers != nil {
		if err := st.SaveRegisters(registers); err != nil {
			closeStore()
			return nil, nil, nil, nil, fmt.Errorf("seed register directory: %w", err)
		}
		slog.Info("register directory loaded", "file", cfg.RegistersFile, "registers", len(registers))
	}

	return cfg, st, ledger.New(st), closeStore, nil
}

// exitOnError logs the error and exits.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
