package platform

// Package platform contains OS and input-boundary glue: video URL validation
// and ID extraction, session temporary-directory lifecycle, and downloaded
// file enumeration.
