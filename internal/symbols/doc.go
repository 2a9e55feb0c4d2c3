// Package symbols defines the semantic entities produced by the binder: types,
// fields, functions, constructors, operators, parameters, variables and exports.
//
// Types compare nominally. A TypeSymbol records its member signatures in the
// declare sweep; bodies live in the owning scope.Type and are attached in the
// define sweep.
package symbols
