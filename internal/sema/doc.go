// Package sema is the checking engine: it decides whether every definition
// of a parsed module agrees with its type declaration.
//
// Check runs in two passes. COLLECT walks the items once, resolves every
// type declaration into the types.Interner (last declaration of a name wins)
// and records the definitions in source order. CHECK then visits the
// definitions in that order: it infers the type of the value (a procedure is
// inferred as the lambda of its parameters and body), unifies the declared
// type with the inferred one and stops at the first failure.
//
// Inference gives every lambda parameter a distinct fresh type variable.
// Unification binds variables through a union-find table with an occurs
// check. Variables left unbound after a definition has been unified are
// reported, not generalised.
package sema
