package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/tendant/photo-days/internal/chrono"
)

type jsonEntry struct {
	File       string     `json:"file"`
	Days       *int       `json:"days"`
	CapturedAt *time.Time `json:"captured_at"`
	Method     string     `json:"method"`
}

type jsonRef struct {
	File string `json:"file"`
	Days int    `json:"days"`
}

type jsonGroup struct {
	Day   int      `json:"day"`
	Files []string `json:"files"`
}

type jsonSummary struct {
	Total       int         `json:"total"`
	Known       int         `json:"known"`
	Birthday    string      `json:"birthday,omitempty"`
	First       *jsonRef    `json:"first"`
	Latest      *jsonRef    `json:"latest"`
	MissingDays []int       `json:"missing_days"`
	Duplicates  []jsonGroup `json:"duplicates"`
	Unknown     []string    `json:"unknown"`
}

type jsonRenderer struct{}

// Plain writes one object per entry. Unknown days and capture times are null.
func (jsonRenderer) Plain(w io.Writer, entries []Entry) error {
	out := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		je := jsonEntry{File: e.File, Method: e.Method}
		if n, ok := e.Days.Value(); ok {
			je.Days = &n
		}
		if e.Resolved {
			captured := e.Captured
			je.CapturedAt = &captured
		}
		out = append(out, je)
	}
	return encode(w, out)
}

// Summary writes the summary as a single object with empty lists as [].
func (jsonRenderer) Summary(w io.Writer, doc Document) error {
	s := doc.Summary
	out := jsonSummary{
		Total:       s.Total,
		Known:       s.KnownCount(),
		First:       ref(s.First),
		Latest:      ref(s.Latest),
		MissingDays: append([]int{}, s.MissingDays...),
		Duplicates:  make([]jsonGroup, 0, len(s.Duplicates)),
		Unknown:     append([]string{}, s.Unknown...),
	}
	if doc.HasBirthday {
		out.Birthday = doc.Birthday.Format(dateLayout)
	}
	for _, g := range s.Duplicates {
		out.Duplicates = append(out.Duplicates, jsonGroup{Day: g.Day, Files: g.Files})
	}
	return encode(w, out)
}

func ref(r *chrono.DayCountResult) *jsonRef {
	if r == nil {
		return nil
	}
	n, _ := r.Days.Value()
	return &jsonRef{File: r.File, Days: n}
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
