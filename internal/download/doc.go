package download

// Package download implements the per-session download orchestrator: it
// compiles user requests into engine options, submits the engine call to a
// bounded worker pool, polls the shared download state for progress, and
// applies the retry policy with client-identity rotation on retryable
// failure classes.
