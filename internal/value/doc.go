// Package value provides the runtime value types that flow through filterql.
//
// Dependency values supplied by callers, literals parsed out of filter source
// and the cache keys of the translation history all use these types. value
// imports nothing internal.
//
// Key design constraints:
//   - Numbers are float64, formatted the way JavaScript's String(n) does
//   - NaN and Infinity are rejected at the FromGo boundary
//   - Canonical JSON (RFC 8785) is the only encoding used for hashing
package value
