// Package filterql translates JavaScript filter arrow functions into Realm
// Query Language (RQL).
//
//	rql, err := filterql.ParseFilter(
//		"x => x.age > threshold && x.name.startsWith(prefix, true)",
//		"() => [threshold, prefix]",
//		func() []any { return []any{30, "Al"} },
//	)
//	// rql == `((age > 30) && (name BEGINSWITH[c] "Al"))`
//
// Errors are *Error values; use the Is* helpers or CodeOf to classify them.
package filterql
