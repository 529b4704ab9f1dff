// Package xlsx converts the transaction log to and from Excel
// workbooks. The sheet carries one transaction per row: Datum, Typ,
// Quelle, Ziel, Betrag, Kommentar, followed by one column per
// denomination labeled with its face value ("500€" … "1¢").
package xlsx

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/vereinskasse/kassenbuch/internal/models"
)

const (
	sheetName  = "Transaktionen"
	dateLayout = "02.01.2006 15:04:05"

	typeDeposit    = "Einzahlung"
	typeWithdrawal = "Abhebung"
)

// Export renders the transactions as an XLSX workbook.
func Export(txns []*models.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	denominations := models.DefaultDenominations()
	header := []interface{}{"Datum", "Typ", "Quelle", "Ziel", "Betrag", "Kommentar"}
	for _, value := range denominations {
		header = append(header, models.DenominationLabel(value))
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, txn := range txns {
		row := exportRow(txn, denominations)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func exportRow(txn *models.Transaction, denominations []decimal.Decimal) []interface{} {
	// Deposits show the receiving register in the Quelle column;
	// only withdrawals fill Ziel.
	source := "-"
	target := "-"
	if txn.Type == models.TypeDeposit {
		source = txn.Target
	} else {
		if txn.Source != "" {
			source = txn.Source
		}
		target = txn.Target
	}

	typ := typeWithdrawal
	if txn.Type == models.TypeDeposit {
		typ = typeDeposit
	}

	row := []interface{}{
		txn.CreatedAt.Format(dateLayout),
		typ,
		source,
		target,
		txn.Amount.InexactFloat64(),
		txn.Comment,
	}

	counts := make(map[string]int, len(txn.Denominations))
	for _, d := range txn.Denominations {
		counts[d.Value.String()] = d.Count
	}
	for _, value := range denominations {
		if count, set := counts[value.String()]; set {
			row = append(row, count)
		} else {
			row = append(row, "")
		}
	}
	return row
}

// Import parses an XLSX workbook back into transactions. Event id is
// left empty; the engine assigns it on import. Register references are
// carried by name only, so the engine's name fallback resolves them.
func Import(r io.Reader) ([]*models.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook contains no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[0]
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Typ", "Betrag"} {
		if _, set := columns[required]; !set {
			return nil, fmt.Errorf("workbook is missing the %q column", required)
		}
	}

	denominations := models.DefaultDenominations()
	txns := make([]*models.Transaction, 0, len(rows)-1)
	for i, row := range rows[1:] {
		txn, err := importRow(row, columns, denominations)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if txn != nil {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

func importRow(row []string, columns map[string]int, denominations []decimal.Decimal) (*models.Transaction, error) {
	typ := cellValue(row, columns, "Typ")
	if typ == "" {
		return nil, nil
	}

	txType := models.TypeWithdrawal
	target := cellValue(row, columns, "Ziel")
	if typ == typeDeposit {
		txType = models.TypeDeposit
		target = cellValue(row, columns, "Quelle")
	}
	if target == "-" {
		target = ""
	}

	amount, err := parseAmount(cellValue(row, columns, "Betrag"))
	if err != nil {
		return nil, err
	}

	source := ""
	if txType == models.TypeWithdrawal {
		source = cellValue(row, columns, "Quelle")
		if source == "-" {
			source = ""
		}
	}

	createdAt := time.Now().UTC()
	if raw := cellValue(row, columns, "Datum"); raw != "" {
		if parsed, err := time.Parse(dateLayout, raw); err == nil {
			createdAt = parsed
		}
	}

	var counted []models.Denomination
	for _, value := range denominations {
		raw := cellValue(row, columns, models.DenominationLabel(value))
		if raw == "" {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || count <= 0 {
			continue
		}
		counted = append(counted, models.Denomination{Value: value, Count: count})
	}

	return &models.Transaction{
		ID:            uuid.NewString(),
		Type:          txType,
		Amount:        amount,
		Source:        source,
		Target:        target,
		Comment:       cellValue(row, columns, "Kommentar"),
		CreatedAt:     createdAt,
		Denominations: counted,
	}, nil
}

func cellValue(row []string, columns map[string]int, name string) string {
	i, set := columns[name]
	if !set || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return decimal.Zero, fmt.Errorf("missing amount")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return amount, nil
}
