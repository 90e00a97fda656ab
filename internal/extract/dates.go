package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// monthPattern pairs a compiled "month-name day" regex with its month.
type monthPattern struct {
	re    *regexp.Regexp
	month time.Month
}

// monthAlternations maps each month to the spellings the extractor accepts.
// Longer forms come first so the regex engine prefers them.
var monthAlternations = map[time.Month]string{
	time.January:   "january|jan",
	time.February:  "february|feb",
	time.March:     "march|mar",
	time.April:     "april|apr",
	time.May:       "may",
	time.June:      "june|jun",
	time.July:      "july|jul",
	time.August:    "august|aug",
	time.September: "september|sept|sep",
	time.October:   "october|oct",
	time.November:  "november|nov",
	time.December:  "december|dec",
}

// DateExtractor resolves event dates from message text using an ordered
// rule list; the first rule that fires wins.
//
// Explicit "Month day" mentions resolve against a configured month->year
// table rather than the calendar year. The table is deliberately
// installation-specific (it covers one festival season); months absent from
// it never match.
type DateExtractor struct {
	patterns []monthPattern
	years    map[time.Month]int
	now      func() time.Time
}

// NewDateExtractor creates a date extractor over the given month->year
// table. now is injected for deterministic tests; nil means time.Now.
func NewDateExtractor(years map[time.Month]int, now func() time.Time) *DateExtractor {
	if now == nil {
		now = time.Now
	}

	e := &DateExtractor{years: years, now: now}
	// Calendar order keeps matching deterministic regardless of map order.
	for m := time.January; m <= time.December; m++ {
		if _, ok := years[m]; !ok {
			continue
		}
		re := regexp.MustCompile(fmt.Sprintf(`(?i)\b(?:%s)\s+(\d{1,2})\b`, monthAlternations[m]))
		e.patterns = append(e.patterns, monthPattern{re: re, month: m})
	}
	return e
}

// Extract returns the event date implied by the text, or nil when no rule
// matches.
func (e *DateExtractor) Extract(text string) *time.Time {
	lower := strings.ToLower(text)
	today := truncateToDay(e.now())

	switch {
	case strings.Contains(lower, "tonight"):
		return &today
	case strings.Contains(lower, "tomorrow"):
		d := today.AddDate(0, 0, 1)
		return &d
	case strings.Contains(lower, "weekend"):
		d := nextWeekday(today, time.Saturday)
		return &d
	}

	// Explicit dates: the earliest valid mention in the text wins, so a
	// message naming several months ("March 15-16 ... until Jan 31")
	// resolves to the one mentioned first, not the one earliest in the
	// calendar.
	var (
		best    time.Time
		bestPos = -1
	)
	for _, p := range e.patterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
			day, err := strconv.Atoi(text[loc[2]:loc[3]])
			if err != nil {
				continue
			}
			year := e.years[p.month]
			if day < 1 || day > daysIn(p.month, year) {
				// "September 45" is not a date; later mentions still count.
				continue
			}
			if bestPos == -1 || loc[0] < bestPos {
				bestPos = loc[0]
				best = time.Date(year, p.month, day, 0, 0, 0, 0, today.Location())
			}
		}
	}
	if bestPos >= 0 {
		return &best
	}

	return nil
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func nextWeekday(t time.Time, day time.Weekday) time.Time {
	delta := (int(day) - int(t.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return t.AddDate(0, 0, delta)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
