// Package ast defines the expression tree produced by the filter parser.
//
// The tree mirrors the subset of the JavaScript expression grammar that a
// filter callback may use:
//
//	x => x.age > 30 && x.name.startsWith("A")
//
// parses to
//
//	BinaryExpression(&&)
//	├── BinaryExpression(>)
//	│   ├── MemberExpression(x.age)
//	│   └── Literal(30)
//	└── CallExpression
//	    ├── MemberExpression(x.name.startsWith)
//	    └── Literal("A")
//
// SEALED INTERFACE:
//
// Expr is sealed with a marker method on pointer receivers. Only the node
// types in this package implement it, so a type switch over *Literal,
// *Identifier, *MemberExpression, *UnaryExpression, *CallExpression,
// *BinaryExpression and *ArrayExpression is exhaustive.
//
// Nodes are immutable once built. Each node owns its children exclusively and
// the tree is acyclic.
package ast
