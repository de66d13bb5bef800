// Package rql translates filter arrow functions into Realm Query Language.
//
// A filter is a single-expression arrow function over one object:
//
//	x => x.age > threshold && x.name.startsWith(prefix, true)
//
// Identifiers other than the member-chain root are resolved against an Env
// built from a dependency list (`() => [threshold, prefix]`) and the values
// supplied for it. The example above, with values [30, "Al"], becomes:
//
//	((age > 30) && (name BEGINSWITH[c] "Al"))
//
// # Translation rules
//
//   - String literals are wrapped in double quotes without escaping; numbers
//     use the JavaScript number format; booleans and null print as is.
//   - A member chain becomes a dotted property path with the root dropped.
//     By default only the last two segments are kept (x.a.b.c yields b.c);
//     WithNestedPaths keeps the full chain. A chain through .any() is
//     prefixed with "ANY ".
//   - A member chain used directly as an operand of a comparison or
//     arithmetic operator emits the bare path. Anywhere else it is a truth
//     test and emits "<path> == true"; !member emits "<path> == false".
//   - .count() emits "<path>.@count".
//   - startsWith, endsWith, contains and like emit
//     "(<path> BEGINSWITH|ENDSWITH|CONTAINS|LIKE <arg>)", with "[c]" appended
//     to the operator when the second argument is true.
//   - Binary expressions are always parenthesized; === becomes == and !==
//     becomes !=.
//
// Everything else fails with an *Error carrying one of the ErrorCode values.
// Translation never returns partial output.
package rql
