// Package scope implements the lookup chain used by the binder: a Program root,
// one Type scope per declared type, and Block scopes for locals.
package scope
