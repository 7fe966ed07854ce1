package convert

import (
	"encoding/csv"
	"fmt"
	"io"
)

// SchwabChecking converts Schwab checking exports:
//
//	"Date","Type","Check #","Description","Withdrawal (-)","Deposit (+)","RunningBalance"
type SchwabChecking struct{}

// Format returns the converter name.
func (c *SchwabChecking) Format() string { return "schwab-checking" }

// Convert reads a Schwab checking CSV and emits canonical rows. The
// description becomes both the dest label (left for hint resolution) and
// the notes; withdrawals carry a negative sign so the account itself is
// the losing side.
func (c *SchwabChecking) Convert(r io.Reader) ([]Row, error) {
	records, err := readExport(r, 7)
	if err != nil {
		return nil, fmt.Errorf("reading schwab checking CSV: %w", err)
	}

	var rows []Row
	for _, rec := range records {
		withdrawal := cleanMoney(rec[4])
		deposit := cleanMoney(rec[5])

		amount := deposit
		if withdrawal != "" {
			amount = "-" + withdrawal
		}

		rows = append(rows, Row{
			Date:   rec[0],
			Dest:   rec[3],
			Amount: amount,
			Notes:  rec[3],
		})
	}
	return rows, nil
}

// SchwabBrokerage converts Schwab brokerage exports:
//
//	"Date","Action","Symbol","Description","Quantity","Price","Fees & Comm","Amount"
type SchwabBrokerage struct{}

// Format returns the converter name.
func (c *SchwabBrokerage) Format() string { return "schwab-brokerage" }

// Convert reads a Schwab brokerage CSV. Buys book against the account
// itself, and rows carrying a symbol become a two-sided cash-for-shares
// exchange ("-5000:usd SWPPX:100").
func (c *SchwabBrokerage) Convert(r io.Reader) ([]Row, error) {
	records, err := readExport(r, 8)
	if err != nil {
		return nil, fmt.Errorf("reading schwab brokerage CSV: %w", err)
	}

	var rows []Row
	for _, rec := range records {
		dest := rec[3]
		if rec[1] == "Buy" {
			dest = "this"
		}

		amount := cleanMoney(rec[7])
		if symbol := rec[2]; symbol != "" {
			amount = fmt.Sprintf("%s:usd %s:%s", amount, symbol, rec[4])
		}

		rows = append(rows, Row{
			Date:   rec[0],
			Dest:   dest,
			Amount: amount,
			Notes:  rec[3],
		})
	}
	return rows, nil
}

// readExport reads an institution CSV, skipping the header row.
func readExport(r io.Reader, fields int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) <= 1 {
		return nil, nil
	}
	return records[1:], nil
}
