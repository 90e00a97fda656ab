package config

import "github.com/spf13/viper"

// Default channel list. These are the public party/festival channels the
// scraper was built around; override per deployment.
var defaultChannels = []string{
	"phanganparty",
	"koh_phangan_events",
	"phangan_island_life",
	"fullmoon_parties",
	"waterfall_festivals",
}

// Default keyword vocabulary, in matching order.
var defaultKeywords = []string{
	"party", "event", "festival", "music", "dj", "waterfall",
	"beach", "fullmoon", "halfmoon", "jungle", "eco", "yoga",
	"wellness", "concert", "nightlife", "bar", "club", "celebration",
	"phangan", "koh phangan", "echo", "rave", "dance", "techno",
	"house", "trance", "chill", "sunset", "sunrise", "bamboo",
}

// Default month->year table for the date extractor. Spans the 2024/2025
// festival season; months outside it deliberately never match.
var defaultDateYears = map[string]int{
	"september": 2025,
	"october":   2025,
	"november":  2025,
	"december":  2024,
	"january":   2025,
	"february":  2025,
	"march":     2025,
}

// SetDefaults registers default configuration values on the given viper
// instance. Environment variables and config files override them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("service.name", "eventradar")
	v.SetDefault("service.version", "1.0.0")
	v.SetDefault("service.debug", false)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.development", false)
	v.SetDefault("logger.output_paths", []string{"stdout"})

	v.SetDefault("server.address", defaultServerAddress)
	v.SetDefault("server.read_timeout", defaultServerReadTimeout)
	v.SetDefault("server.write_timeout", defaultServerWriteTimeout)
	v.SetDefault("server.idle_timeout", defaultServerIdleTimeout)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "eventradar.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "eventradar")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("scraper.channels", defaultChannels)
	v.SetDefault("scraper.keywords", defaultKeywords)
	v.SetDefault("scraper.message_limit", DefaultMessageLimit)
	v.SetDefault("scraper.word_boundary", false)
	v.SetDefault("scraper.date_years", defaultDateYears)
}
