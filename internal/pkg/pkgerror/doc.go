// Package pkgerror defines the structured error type used across the
// application.
//
// Errors carry a high-level Type and a stable Code that handlers map to
// HTTP status codes. Domain packages keep their own sentinel errors; the
// usecase layer wraps them here so errors.Is still reaches the sentinel.
package pkgerror
