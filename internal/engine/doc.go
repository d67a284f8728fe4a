package engine

// Package engine is the boundary around the yt-dlp library
// (github.com/lrstanley/go-ytdlp): request compilation into deterministic
// engine options, metadata probing with client-identity rotation, and the
// single-attempt download call with progress forwarding.
