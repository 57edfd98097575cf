// Package report renders day counts as a per-file listing or as a summary.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/tendant/photo-days/internal/chrono"
)

// Entry is one row of the per-file listing.
type Entry struct {
	File     string
	Days     chrono.DayCount
	Captured time.Time
	Resolved bool
	Method   string
}

// Document is everything the summary view shows.
type Document struct {
	Birthday    time.Time
	HasBirthday bool
	Summary     chrono.Summary
}

// Renderer writes reports in one output format.
type Renderer interface {
	Plain(w io.Writer, entries []Entry) error
	Summary(w io.Writer, doc Document) error
}

// New returns the renderer for f.
func New(f Format) (Renderer, error) {
	switch f {
	case FormatText, "":
		return textRenderer{}, nil
	case FormatJSON:
		return jsonRenderer{}, nil
	case FormatCSV:
		return csvRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", f)
	}
}

const dateLayout = "2006-01-02"
