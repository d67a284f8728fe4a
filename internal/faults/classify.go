package faults

import "strings"

// keyword groups checked in priority order. The order is a deterministic
// heuristic: a message containing several keywords lands in the first group
// that matches, with private/unavailable checked before geo/blocked. A
// geo-blocked message that also says "unavailable" therefore classifies as
// private-or-unavailable; accepted as-is, the order is not load-bearing.
var keywordGroups = []struct {
	category Category
	keywords []string
}{
	{CategoryPrivateOrUnavailable, []string{"private", "unavailable"}},
	{CategoryCopyrightBlocked, []string{"copyright"}},
	{CategoryGeoBlocked, []string{"geo", "blocked"}},
	{CategoryRateLimited, []string{"429", "too many requests", "rate limit"}},
	{CategoryAccessDenied, []string{"403", "forbidden", "access denied", "sign in to confirm"}},
	{CategoryStreamingUnsupported, []string{"fragment", "m3u8", "live stream"}},
}

// ClassifyMessage maps raw error text to a category by substring match,
// returning "" when nothing matches.
func ClassifyMessage(msg string) Category {
	lower := strings.ToLower(msg)
	for _, group := range keywordGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.category
			}
		}
	}
	return ""
}

// Suggestions returns at least one remediation per category
func (c Category) Suggestions() []string {
	switch c {
	case CategoryInvalidInput:
		return []string{
			"Check the URL for typos",
			"Use a watch, short, or embed link of the platform",
		}
	case CategoryRateLimited:
		return []string{
			"Wait 5-10 minutes before trying again",
			"Try downloading without subtitles",
			"Use a VPN to change your IP address",
		}
	case CategoryAccessDenied:
		return []string{
			"Retry; the request is rotated through alternate client identities",
			"Wait a few minutes before trying again",
		}
	case CategoryPrivateOrUnavailable:
		return []string{
			"Video is private or has been removed",
			"Check if the URL is correct",
			"Video might be restricted in your region",
		}
	case CategoryCopyrightBlocked:
		return []string{
			"This video cannot be downloaded due to copyright restrictions",
		}
	case CategoryGeoBlocked:
		return []string{
			"Video is blocked in your region",
			"Try using a VPN",
		}
	case CategoryStreamingUnsupported:
		return []string{
			"Live streams or adaptive formats detected",
			"Try a different quality setting",
			"Some live content cannot be downloaded",
		}
	default:
		return []string{
			"Check your internet connection",
			"Try a different video quality",
			"Try the audio-only or lowest-quality fallback",
		}
	}
}
