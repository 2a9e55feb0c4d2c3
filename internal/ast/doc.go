// Package ast holds the Zephyr syntax tree produced by internal/parser.
//
// Every node exposes its kind (DeclKind, MemberKind, StmtKind, ExprKind), its
// source span and exported child fields. Nodes are plain pointers; the tree is
// built once per parse and never mutated afterwards.
package ast
