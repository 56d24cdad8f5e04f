// Package pkguid provides helpers for generating unique identifiers.
//
// The codebase uses these interfaces to avoid hard-coding a specific UID
// strategy. The main implementation is Sequential, which issues 16-byte
// GUIDs laid out as:
//
//	[0,8)  big-endian 100ns ticks since 1970-01-01T00:00:00Z
//	[8,16) seed segment
//
// Identifiers that share a seed sort by generation time when compared
// byte by byte, and their timestamp can be extracted again with
// Sequential.Timestamp.
//
// Seeds come in three forms:
//   - None: a fresh random value per call.
//   - A string: either a GUID literal used verbatim, or the first eight
//     characters ASCII-encoded into the seed segment.
//   - An existing GUID.
package pkguid
