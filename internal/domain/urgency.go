package domain

import "time"

// Urgency is a display-only classification of how soon an event happens.
// It is derived from the event date relative to "now" and is not part of the
// extraction contract; the query API computes it when serializing events.
type Urgency string

const (
	UrgencyUnknown   Urgency = "unknown"
	UrgencyToday     Urgency = "today"
	UrgencyTomorrow  Urgency = "tomorrow"
	UrgencyWeekend   Urgency = "weekend"
	UrgencyThisWeek  Urgency = "this_week"
	UrgencyThisMonth Urgency = "this_month"
	UrgencyFuture    Urgency = "future"
)

const (
	thisWeekDays  = 7
	thisMonthDays = 30
)

// Urgencies lists all urgency buckets.
var Urgencies = []Urgency{
	UrgencyUnknown, UrgencyToday, UrgencyTomorrow, UrgencyWeekend,
	UrgencyThisWeek, UrgencyThisMonth, UrgencyFuture,
}

// ValidUrgency reports whether s names a known urgency bucket.
func ValidUrgency(s string) bool {
	for _, u := range Urgencies {
		if string(u) == s {
			return true
		}
	}
	return false
}

// ClassifyUrgency returns the urgency bucket for an event date.
// A nil date is unknown. "Weekend" means the event falls on the next
// Saturday or Sunday strictly after today.
func ClassifyUrgency(eventDate *time.Time, now time.Time) Urgency {
	if eventDate == nil {
		return UrgencyUnknown
	}

	today := truncateToDay(now)
	date := truncateToDay(*eventDate)

	switch {
	case date.Equal(today):
		return UrgencyToday
	case date.Equal(today.AddDate(0, 0, 1)):
		return UrgencyTomorrow
	case date.Equal(NextWeekday(today, time.Saturday)), date.Equal(NextWeekday(today, time.Sunday)):
		return UrgencyWeekend
	}

	days := int(date.Sub(today).Hours() / 24)
	if days < 0 {
		days = -days
	}

	switch {
	case days <= thisWeekDays:
		return UrgencyThisWeek
	case days <= thisMonthDays:
		return UrgencyThisMonth
	default:
		return UrgencyFuture
	}
}

// NextWeekday returns the next occurrence of the given weekday strictly
// after the day of t.
func NextWeekday(t time.Time, day time.Weekday) time.Time {
	t = truncateToDay(t)
	delta := (int(day) - int(t.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return t.AddDate(0, 0, delta)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
