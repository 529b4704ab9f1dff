package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vereinskasse/kassenbuch/internal/xlsx"
)

var (
	exportEventID string
	exportOut     string
	importEventID string
	importFile    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an event's transaction log as an XLSX workbook",
	Run: func(cmd *cobra.Command, args []string) {
		if exportEventID == "" {
			exitOnError(errors.New("--event is required"), "missing flag")
		}

		_, _, engine, closeStore, err := setup()
		exitOnError(err, "setup failed")
		defer closeStore()

		txns, err := engine.Transactions(exportEventID)
		exitOnError(err, "failed to list transactions")

		data, err := xlsx.Export(txns)
		exitOnError(err, "failed to render workbook")

		exitOnError(os.WriteFile(exportOut, data, 0o644), "failed to write workbook")
		slog.Info("transactions exported", "event", exportEventID, "file", exportOut, "count", len(txns))
		fmt.Printf("%d Transaktionen nach %s exportiert.\n", len(txns), exportOut)
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import transactions from an XLSX workbook into an event",
	Run: func(cmd *cobra.Command, args []string) {
		if importEventID == "" || importFile == "" {
			exitOnError(errors.New("--event and --file are required"), "missing flag")
		}

		_, _, engine, closeStore, err := setup()
		exitOnError(err, "setup failed")
		defer closeStore()

		f, err := os.Open(importFile)
		exitOnError(err, "failed to open workbook")
		defer f.Close()

		txns, err := xlsx.Import(f)
		exitOnError(err, "failed to parse workbook")

		result, err := engine.Import(importEventID, txns)
		exitOnError(err, "import failed")
		if !result.Success {
			exitOnError(errors.New(result.Message), "import failed")
		}

		slog.Info("transactions imported", "event", importEventID, "count", len(txns))
		fmt.Println(result.Message)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportEventID, "event", "", "event id")
	exportCmd.Flags().StringVar(&exportOut, "out", "transaktionen.xlsx", "output file")
	importCmd.Flags().StringVar(&importEventID, "event", "", "event id")
	importCmd.Flags().StringVar(&importFile, "file", "", "input workbook")
}
