// Package classify maps matched keywords to a single event-type category.
package classify

import (
	"strings"

	"github.com/islandbeat/eventradar/internal/domain"
)

// typeBucket associates an event type with the keywords that trigger it.
type typeBucket struct {
	eventType domain.EventType
	keywords  map[string]bool
}

// typeBuckets is checked in order; the first bucket containing any matched
// keyword wins. A message matching both "party" and "festival" keywords is
// therefore a party. This ordering is policy, not an accident.
var typeBuckets = []typeBucket{
	{domain.EventTypeParty, keywordSet("party", "rave", "club", "dj", "techno", "house", "trance", "dance")},
	{domain.EventTypeFestival, keywordSet("festival")},
	{domain.EventTypeWellness, keywordSet("yoga", "wellness", "meditation", "healing", "retreat")},
}

// EventType classifies a keyword set into exactly one event type. It is a
// pure function of the keywords: the same set always yields the same type.
// No bucket hit means general.
func EventType(keywordsFound []string) domain.EventType {
	for _, bucket := range typeBuckets {
		for _, kw := range keywordsFound {
			if bucket.keywords[strings.ToLower(kw)] {
				return bucket.eventType
			}
		}
	}
	return domain.EventTypeGeneral
}

func keywordSet(keywords ...string) map[string]bool {
	set := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		set[kw] = true
	}
	return set
}
