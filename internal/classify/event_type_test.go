package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/islandbeat/eventradar/internal/classify"
	"github.com/islandbeat/eventradar/internal/domain"
)

func TestEventType(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		want     domain.EventType
	}{
		{
			name:     "party keyword",
			keywords: []string{"party"},
			want:     domain.EventTypeParty,
		},
		{
			name:     "party beats festival",
			keywords: []string{"festival", "techno"},
			want:     domain.EventTypeParty,
		},
		{
			name:     "festival beats wellness",
			keywords: []string{"yoga", "festival"},
			want:     domain.EventTypeFestival,
		},
		{
			name:     "wellness bucket",
			keywords: []string{"meditation", "retreat"},
			want:     domain.EventTypeWellness,
		},
		{
			name:     "case insensitive",
			keywords: []string{"DJ"},
			want:     domain.EventTypeParty,
		},
		{
			name:     "unbucketed keywords are general",
			keywords: []string{"full moon", "beach"},
			want:     domain.EventTypeGeneral,
		},
		{
			name:     "no keywords is general",
			keywords: nil,
			want:     domain.EventTypeGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.EventType(tt.keywords))
		})
	}
}
