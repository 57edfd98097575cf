package chrono

// DuplicateGroup lists files sharing one day count.
type DuplicateGroup struct {
	Day   int
	Files []string
}

// Summary is the derived view over a set of day count results.
type Summary struct {
	Total int

	// First and Latest are nil when no result has a known day count.
	First  *DayCountResult
	Latest *DayCountResult

	// MissingDays holds every day in [0, Latest) that no file maps to.
	MissingDays []int

	// Duplicates is ordered by the first occurrence of each day.
	Duplicates []DuplicateGroup

	Unknown []string
}

// HasKnown reports whether at least one result had a known day count.
func (s Summary) HasKnown() bool { return s.First != nil }

// KnownCount returns the number of results with a known day count.
func (s Summary) KnownCount() int { return s.Total - len(s.Unknown) }

// Summarize derives first/latest, missing days, duplicate groups and the
// unknown partition from results. Ties on first and latest go to the entry
// encountered first in results.
func Summarize(results []DayCountResult) Summary {
	s := Summary{Total: len(results)}

	var known []DayCountResult
	for _, r := range results {
		if r.Days.IsKnown() {
			known = append(known, r)
		} else {
			s.Unknown = append(s.Unknown, r.File)
		}
	}
	if len(known) == 0 {
		return s
	}

	first, latest := known[0], known[0]
	for _, r := range known[1:] {
		if r.Days.days < first.Days.days {
			first = r
		}
		if r.Days.days > latest.Days.days {
			latest = r
		}
	}
	s.First, s.Latest = &first, &latest

	byDay := make(map[int][]string, len(known))
	var order []int
	for _, r := range known {
		d := r.Days.days
		if _, seen := byDay[d]; !seen {
			order = append(order, d)
		}
		byDay[d] = append(byDay[d], r.File)
	}

	for d := 0; d < latest.Days.days; d++ {
		if _, ok := byDay[d]; !ok {
			s.MissingDays = append(s.MissingDays, d)
		}
	}

	for _, d := range order {
		if files := byDay[d]; len(files) >= 2 {
			s.Duplicates = append(s.Duplicates, DuplicateGroup{Day: d, Files: files})
		}
	}
	return s
}
