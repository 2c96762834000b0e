package storage

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// ExportCSV writes records as CSV with a header row, in the given order.
func ExportCSV(w io.Writer, records []Reservation) error {
	if records == nil {
		records = []Reservation{}
	}
	if err := gocsv.Marshal(&records, w); err != nil {
		return fmt.Errorf("export reservations: %w", err)
	}
	return nil
}
