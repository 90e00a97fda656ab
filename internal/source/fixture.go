package source

import (
	"context"
	"fmt"
	"time"

	"github.com/islandbeat/eventradar/internal/domain"
)

// Fixture is an in-process MessageSource serving a canned feed. It stands in
// for the real channel client during local development and in tests.
type Fixture struct {
	now func() time.Time
}

// NewFixture creates a fixture source. now is injected for deterministic
// tests; nil means time.Now.
func NewFixture(now func() time.Time) *Fixture {
	if now == nil {
		now = time.Now
	}
	return &Fixture{now: now}
}

// FetchMessages returns up to limit canned messages attributed to channel.
func (f *Fixture) FetchMessages(_ context.Context, channel string, limit int) ([]domain.RawMessage, error) {
	now := f.now()
	feed := fixtureFeed(now)

	if limit <= 0 {
		feed = nil
	} else if limit < len(feed) {
		feed = feed[:limit]
	}

	msgs := make([]domain.RawMessage, 0, len(feed))
	for i, m := range feed {
		msgs = append(msgs, domain.RawMessage{
			Channel:   channel,
			Text:      m.text,
			MessageID: fmt.Sprintf("%s-%d", channel, 1001+i),
			PostedAt:  m.postedAt,
		})
	}
	return msgs, nil
}

type fixtureMessage struct {
	text     string
	postedAt time.Time
}

// fixtureFeed mirrors the kind of posts the real channels carry: a jungle
// party, a yoga session, a full moon announcement, a retreat, a festival.
func fixtureFeed(now time.Time) []fixtureMessage {
	return []fixtureMessage{
		{
			text: "🎉 ECHO WATERFALL PARTY 🎉\n" +
				"📅 Tonight 9 PM - Late\n" +
				"📍 Secret Jungle Location (Transport from Thong Sala)\n" +
				"🎵 LINEUP:\n" +
				"▸ DJ MAYA (Techno/Progressive)\n" +
				"▸ BAMBOO (Deep House)\n" +
				"▸ COSMIC FLOW (Psytrance)\n" +
				"💰 Entry: 800 THB (includes transport)\n" +
				"🎫 Limited capacity - Book now!\n" +
				"#EchoParty #WaterfallRave #TechnoPhangan",
			postedAt: now,
		},
		{
			text: "🌅 SUNRISE YOGA FLOW 🧘‍♀️\n" +
				"📅 Tomorrow 6:00 AM\n" +
				"📍 Haad Rin Beach (North End)\n" +
				"🎯 FREE SESSION with Instructor Luna\n" +
				"☕ Fresh coconuts & healthy breakfast after\n" +
				"🌺 All levels welcome\n" +
				"Join our mindful community!\n" +
				"#YogaPhangan #SunriseYoga #Wellness #HaadRin",
			postedAt: now.Add(-30 * time.Minute),
		},
		{
			text: "🌕 FULL MOON PARTY PREP! 🌕\n" +
				"📅 September 14-15, 2025\n" +
				"📍 Haad Rin Beach + Multiple Venues\n" +
				"🎵 3 Stages: Main Beach, Cactus Club, Drop In Bar\n" +
				"🎫 PRE-PARTY: Sep 13 at Paradise Bungalows\n" +
				"💰 Bucket specials, fire shows, international DJs\n" +
				"🚌 Free shuttles from all major beaches\n" +
				"Book accommodation NOW - selling out fast!\n" +
				"#FullMoonParty #HaadRin #September2025",
			postedAt: now.Add(-1 * time.Hour),
		},
		{
			text: "🌴 JUNGLE HEALING RETREAT 🌴\n" +
				"📅 This Weekend (Sat-Sun)\n" +
				"📍 Wat Phu Khao Noi (Mountain Temple)\n" +
				"🧘‍♀️ Meditation, Sound Healing, Breathwork\n" +
				"🥗 Organic vegetarian meals included\n" +
				"💎 Crystal bowl sessions with Ajahn Som\n" +
				"🏡 Stay overnight in temple guesthouse (optional)\n" +
				"💰 2-day package: 2,500 THB\n" +
				"Limited to 20 participants\n" +
				"#Retreat #Healing #Meditation #Temple",
			postedAt: now.Add(-2 * time.Hour),
		},
		{
			text: "🎪 HALF MOON FESTIVAL 2025 🎪\n" +
				"📅 March 15-16, 2025\n" +
				"📍 Ban Tai Beach + Jungle Venues\n" +
				"🎵 48 hours of music across 4 stages:\n" +
				"▸ Main Stage (Commercial EDM)\n" +
				"▸ Jungle Stage (Psytrance/Goa)\n" +
				"▸ Chill Stage (Ambient/Downtempo)\n" +
				"▸ Underground (Techno/Minimal)\n" +
				"🎭 Fire performers, art installations\n" +
				"🍕 International food court\n" +
				"💰 Early Bird: 1,200 THB (until Jan 31)\n" +
				"#HalfMoon #Festival #BanTai #March2025",
			postedAt: now.Add(-3 * time.Hour),
		},
	}
}
