package convert

import (
	"fmt"
	"io"
)

// USAAGeneral converts USAA checking, savings, and credit card exports:
//
//	Date,Description,Original Description,Category,Amount,Status
type USAAGeneral struct{}

// Format returns the converter name.
func (c *USAAGeneral) Format() string { return "usaa-general" }

// Convert reads a USAA CSV. The original description becomes the dest
// label (left for hint resolution) and the cleaned-up description the
// notes; amounts already carry their sign.
func (c *USAAGeneral) Convert(r io.Reader) ([]Row, error) {
	records, err := readExport(r, 6)
	if err != nil {
		return nil, fmt.Errorf("reading usaa CSV: %w", err)
	}

	var rows []Row
	for _, rec := range records {
		rows = append(rows, Row{
			Date:   rec[0],
			Dest:   rec[2],
			Amount: cleanMoney(rec[4]),
			Notes:  rec[1],
		})
	}
	return rows, nil
}
