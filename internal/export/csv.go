package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"mortsim/internal/model"
)

var csvHeader = []string{"period", "payment", "interest_paid", "principal_paid", "remaining_balance"}

// CSVRenderer writes one row per period with amounts rounded to cents.
type CSVRenderer struct{}

// Render implements Renderer.
func (CSVRenderer) Render(w io.Writer, l model.Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for i := 0; i < l.Len(); i++ {
		r := l.Record(i)
		row := []string{
			strconv.Itoa(r.Period),
			Cents(r.Payment).String(),
			Cents(r.Interest).String(),
			Cents(r.Principal).String(),
			Cents(r.Balance).String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", r.Period, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}
