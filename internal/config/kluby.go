package config

// KlubyConfig controls how we reach the venue's booking grid.
type KlubyConfig struct {
	BaseURL      string
	Club         string
	Timeout      Duration
	RateInterval Duration
}

func loadKluby() KlubyConfig {
	return KlubyConfig{
		BaseURL:      envOrDefault(envKlubyBaseURL, defaultKlubyBaseURL),
		Club:         envOrDefault(envKlubyClub, defaultKlubyClub),
		Timeout:      durationEnvOrDefault(envKlubyTimeout, defaultKlubyTimeout),
		RateInterval: durationEnvOrDefault(envKlubyRate, defaultKlubyRate),
	}
}

// CacheConfig controls the parsed schedule cache. A zero TTL keeps entries for the process lifetime.
type CacheConfig struct {
	TTL Duration
}

func loadCache() CacheConfig {
	return CacheConfig{
		TTL: nonNegativeDurationEnvOrDefault(envCacheTTL, defaultCacheTTL),
	}
}
