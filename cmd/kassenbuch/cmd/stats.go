package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/vereinskasse/kassenbuch/internal/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-event transaction counts and totals",
	Run: func(cmd *cobra.Command, args []string) {
		_, _, engine, closeStore, err := setup()
		exitOnError(err, "setup failed")
		defer closeStore()

		events, err := engine.ListEvents()
		exitOnError(err, "failed to list events")

		if len(events) == 0 {
			fmt.Println("Keine Events vorhanden.")
			return
		}

		for _, event := range events {
			txns, err := engine.Transactions(event.ID)
			exitOnError(err, "failed to list transactions")

			deposits, withdrawals := 0, 0
			volume := decimal.Zero
			for _, txn := range txns {
				if txn.Type == models.TypeDeposit {
					deposits++
				} else {
					withdrawals++
				}
				volume = volume.Add(txn.Amount)
			}

			balance, err := engine.Balance(event.ID)
			exitOnError(err, "failed to load balance")

			fmt.Printf("%s (%s)\n", event.Name, event.ID)
			fmt.Printf("  Transaktionen: %d (%d Einzahlungen, %d Abhebungen)\n",
				len(txns), deposits, withdrawals)
			fmt.Printf("  Umsatz:        %s€\n", volume.StringFixed(2))
			fmt.Printf("  Gesamtsaldo:   %s€ (Bank: %s€)\n",
				balance.Total().StringFixed(2), balance.BankBalance.StringFixed(2))
		}
	},
}
