package model

// Package model defines domain data structures shared across the app: video
// metadata and format descriptors projected from the extraction engine,
// download requests, and the shared download state record with its status
// state machine.
