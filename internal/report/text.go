package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const unknownDate = "unknown date"

type textRenderer struct{}

// Plain writes "file: days" lines in input order.
func (textRenderer) Plain(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if n, ok := e.Days.Value(); ok {
			fmt.Fprintf(bw, "%s: %d\n", e.File, n)
		} else {
			fmt.Fprintf(bw, "%s: %s\n", e.File, unknownDate)
		}
	}
	return bw.Flush()
}

// Summary writes the totals, then the sections that have content.
func (textRenderer) Summary(w io.Writer, doc Document) error {
	s := doc.Summary
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Photos: %d (%d dated)\n", s.Total, s.KnownCount())
	if doc.HasBirthday {
		fmt.Fprintf(bw, "Birthday: %s\n", doc.Birthday.Format(dateLayout))
	}

	if s.HasKnown() {
		first, _ := s.First.Days.Value()
		latest, _ := s.Latest.Days.Value()
		fmt.Fprintf(bw, "First: %s (day %d)\n", s.First.File, first)
		fmt.Fprintf(bw, "Latest: %s (day %d)\n", s.Latest.File, latest)
	}

	if len(s.MissingDays) > 0 {
		fmt.Fprintf(bw, "Missing days (%d): %s\n", len(s.MissingDays), compressRanges(s.MissingDays))
	}

	if len(s.Duplicates) > 0 {
		fmt.Fprintf(bw, "Duplicate days (%d):\n", len(s.Duplicates))
		for _, g := range s.Duplicates {
			fmt.Fprintf(bw, "  day %d: %s\n", g.Day, strings.Join(g.Files, ", "))
		}
	}

	if len(s.Unknown) > 0 {
		fmt.Fprintf(bw, "Unknown dates (%d):\n", len(s.Unknown))
		for _, f := range s.Unknown {
			fmt.Fprintf(bw, "  %s\n", f)
		}
	}
	return bw.Flush()
}

// compressRanges renders ascending days as "0, 2-5, 9".
func compressRanges(days []int) string {
	var parts []string
	for i := 0; i < len(days); {
		j := i
		for j+1 < len(days) && days[j+1] == days[j]+1 {
			j++
		}
		if i == j {
			parts = append(parts, strconv.Itoa(days[i]))
		} else {
			parts = append(parts, strconv.Itoa(days[i])+"-"+strconv.Itoa(days[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ", ")
}
