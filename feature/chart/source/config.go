package source

// Config holds the upstream feed endpoints.
type Config struct {
	// SongsURL is the domestic song metadata feed.
	SongsURL string `mapstructure:"songs_url" default:"https://otoge-db.net/maimai/data/music-ex.json"`
	// IntlSongsURL is the international song metadata feed.
	IntlSongsURL string `mapstructure:"intl_songs_url" default:"https://norca0721.github.io/otoge-db/maimai/data/music-ex-intl.json"`
	// CommunityURL is the community difficulty dataset.
	CommunityURL string `mapstructure:"community_url" default:"https://www.diving-fish.com/api/maimaidxprober/music_data"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
}
