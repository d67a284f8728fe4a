package platform

import "regexp"

// Platform video IDs are exactly this long
const VideoIDLength = 11

// Accepted URL shapes: canonical watch link, short link, embed link,
// legacy /v/ link, and the mobile subdomain variant.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/watch\?v=[\w-]+`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtu\.be/[\w-]+`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/embed/[\w-]+`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/v/[\w-]+`),
	regexp.MustCompile(`^(?:https?://)?(?:m\.)?youtube\.com/watch\?v=[\w-]+`),
}

// ID extraction patterns, tried in priority order
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`embed/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`v/([0-9A-Za-z_-]{11})`),
}

// IsValidVideoURL reports whether the string matches one of the known URL
// shapes for the platform. It never returns an error.
func IsValidVideoURL(url string) bool {
	if url == "" {
		return false
	}
	for _, pattern := range urlPatterns {
		if pattern.MatchString(url) {
			return true
		}
	}
	return false
}

// ExtractVideoID pulls the 11-character video ID out of a URL via the first
// matching pattern, returning ok=false when none match.
func ExtractVideoID(url string) (string, bool) {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}
