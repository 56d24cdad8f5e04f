// Package pkgroutine contains helpers for running goroutines safely.
//
// The Manager type limits concurrency, collects returned errors, and logs
// panics so that fan-out work (for example batch identifier generation)
// does not crash the process silently.
package pkgroutine
