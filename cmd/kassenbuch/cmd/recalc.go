package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	recalcEventID string
	resetEventID  string
)

var recalcCmd = &cobra.Command{
	Use:   "recalc",
	Short: "Re-derive an event's balances from its transaction log",
	Run: func(cmd *cobra.Command, args []string) {
		if recalcEventID == "" {
			exitOnError(errors.New("--event is required"), "missing flag")
		}

		_, _, engine, closeStore, err := setup()
		exitOnError(err, "setup failed")
		defer closeStore()

		result, err := engine.Recompute(recalcEventID)
		exitOnError(err, "recompute failed")
		if !result.Success {
			exitOnError(errors.New(result.Message), "recompute failed")
		}

		slog.Info("balances recalculated", "event", recalcEventID)
		fmt.Println(result.Message)
		for _, register := range result.Balances.Registers {
			fmt.Printf("  %-16s %10s€\n", register.Name, register.Balance.StringFixed(2))
		}
		fmt.Printf("  %-16s %10s€\n", "Bank", result.Balances.BankBalance.StringFixed(2))
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear an event's transactions and zero its balances",
	Run: func(cmd *cobra.Command, args []string) {
		if resetEventID == "" {
			exitOnError(errors.New("--event is required"), "missing flag")
		}

		_, _, engine, closeStore, err := setup()
		exitOnError(err, "setup failed")
		defer closeStore()

		result, err := engine.ResetEvent(resetEventID)
		exitOnError(err, "reset failed")

		slog.Info("event reset", "event", resetEventID)
		fmt.Println(result.Message)
	},
}

func init() {
	recalcCmd.Flags().StringVar(&recalcEventID, "event", "", "event id")
	resetCmd.Flags().StringVar(&resetEventID, "event", "", "event id")
}
