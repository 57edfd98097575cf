package report

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
)

// ErrSummaryUnsupported is returned when a format has no summary view.
var ErrSummaryUnsupported = errors.New("format has no summary view")

// csvHeader lists the listing columns.
var csvHeader = []string{
	"file",        // Path as given or found
	"days",        // Day count, empty when unknown
	"captured_at", // Resolved capture time
	"method",      // exif, filename or stat
}

const csvTimeLayout = "2006-01-02 15:04:05"

type csvRenderer struct{}

// Plain writes a header row and one row per entry.
func (csvRenderer) Plain(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{e.File, "", "", e.Method}
		if n, ok := e.Days.Value(); ok {
			row[1] = strconv.Itoa(n)
		}
		if e.Resolved {
			row[2] = e.Captured.Format(csvTimeLayout)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Summary always fails; CSV has no summary layout.
func (csvRenderer) Summary(io.Writer, Document) error {
	return ErrSummaryUnsupported
}
