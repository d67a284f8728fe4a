package engine

// ClientProfile is one simulated client identity the engine presents to the
// platform. The hardened configuration rotates through several of these when
// the access-denied class of error comes back.
type ClientProfile struct {
	Name          string
	UserAgent     string
	Headers       []string // "Key:Value" pairs
	PlayerClient  string   // extractor client identity, "" for the default
	SleepInterval float64  // seconds between requests, 0 disables
}

// DefaultProfiles returns the single desktop-browser identity used by the
// plain configuration.
func DefaultProfiles() []ClientProfile {
	return []ClientProfile{
		{
			Name:      "web",
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		},
	}
}

// HardenedProfiles returns the ordered identity list tried by the hardened
// configuration. Later entries lean on mobile clients, which tend to survive
// blocks that hit the web client.
func HardenedProfiles() []ClientProfile {
	return []ClientProfile{
		{
			Name:      "web",
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			Headers:   []string{"Accept-Language:en-US,en;q=0.9"},
		},
		{
			Name:          "android",
			UserAgent:     "com.google.android.youtube/19.09.37 (Linux; U; Android 11) gzip",
			PlayerClient:  "android",
			SleepInterval: 1,
		},
		{
			Name:          "ios",
			UserAgent:     "com.google.ios.youtube/19.09.3 (iPhone14,3; U; CPU iOS 15_6 like Mac OS X)",
			PlayerClient:  "ios",
			SleepInterval: 2,
		},
	}
}
