package ledger

import (
	"encoding/csv"
	"fmt"
	"os"

	"mediasim/internal/profiles"
)

// Report summarizes a ledger verification pass.
type Report struct {
	Rows       int
	PerProfile map[string]int
}

// Verify reads a ledger file and checks the header matches the current
// catalog vocabulary and that every row carries exactly one set profile
// column. It returns per-profile row counts.
func Verify(path string) (Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("open ledger: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return Report{}, fmt.Errorf("read ledger: %w", err)
	}
	if len(records) == 0 {
		return Report{}, fmt.Errorf("ledger %q has no header", path)
	}

	header := Header()
	if len(records[0]) != len(header) {
		return Report{}, fmt.Errorf("header has %d columns, catalog expects %d", len(records[0]), len(header))
	}
	for i, col := range header {
		if records[0][i] != col {
			return Report{}, fmt.Errorf("header column %d is %q, want %q", i, records[0][i], col)
		}
	}

	names := profiles.Names()
	report := Report{PerProfile: make(map[string]int, len(names))}
	offset := len(identityColumns)
	for rowNum, record := range records[1:] {
		hot := -1
		for i, name := range names {
			switch record[offset+i] {
			case "1":
				if hot >= 0 {
					return Report{}, fmt.Errorf("row %d sets both %q and %q", rowNum+1, names[hot], name)
				}
				hot = i
			case "0":
			default:
				return Report{}, fmt.Errorf("row %d has non-binary value %q in column %q", rowNum+1, record[offset+i], name)
			}
		}
		if hot < 0 {
			return Report{}, fmt.Errorf("row %d sets no profile column", rowNum+1)
		}
		report.Rows++
		report.PerProfile[names[hot]]++
	}
	return report, nil
}
