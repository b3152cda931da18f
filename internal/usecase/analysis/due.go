package analysis

import (
	"regexp"
	"strings"
	"time"
)

const dueLayout = "2006-01-02"

var isoDueRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var dueUnknown = map[string]struct{}{
	"":          {},
	"tbd":       {},
	"unknown":   {},
	"none":      {},
	"null":      {},
	"n/a":       {},
	"undecided": {},
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// NormalizeDue converts a free-text due phrase from the LLM into a concrete
// YYYY-MM-DD date anchored to the meeting date. Unresolvable phrases yield
// nil rather than a guess. Explicit dates with a year earlier than the
// meeting's are bumped to the meeting year, since models tend to reuse stale
// years from their training data.
func NormalizeDue(raw string, base time.Time) *string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := dueUnknown[s]; ok {
		return nil
	}

	switch s {
	case "today", "end of day", "eod":
		return datePtr(base)
	case "tomorrow":
		return datePtr(base.AddDate(0, 0, 1))
	case "day after tomorrow":
		return datePtr(base.AddDate(0, 0, 2))
	}

	if isoDueRe.MatchString(s) {
		t, err := time.Parse(dueLayout, s)
		if err != nil {
			return nil
		}
		if t.Year() < base.Year() {
			t = time.Date(base.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return datePtr(t)
	}

	if d, ok := weekdayPhrase(s, base); ok {
		return datePtr(d)
	}

	return nil
}

// weekdayPhrase resolves "friday", "this friday", "by friday" and
// "next friday" style phrases to the matching date after the meeting.
func weekdayPhrase(s string, base time.Time) (time.Time, bool) {
	next := false
	switch {
	case strings.HasPrefix(s, "this "):
		s = strings.TrimPrefix(s, "this ")
	case strings.HasPrefix(s, "by "):
		s = strings.TrimPrefix(s, "by ")
	case strings.HasPrefix(s, "next "):
		next = true
		s = strings.TrimPrefix(s, "next ")
	}

	wd, ok := weekdays[s]
	if !ok {
		return time.Time{}, false
	}

	// A bare weekday matching the meeting day resolves to that same day;
	// "next" still pushes a full week out.
	days := (int(wd) - int(base.Weekday()) + 7) % 7
	if next {
		days += 7
	}
	return base.AddDate(0, 0, days), true
}

func datePtr(t time.Time) *string {
	s := t.Format(dueLayout)
	return &s
}
