// Package bound holds the typed tree the binder produces and the lowering pass
// rewrites. Every expression carries its static type; failed bindings are ErrorExpr
// nodes typed symbols.Error so callers can propagate them without checks.
package bound
