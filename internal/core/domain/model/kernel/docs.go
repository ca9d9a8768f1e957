// Package kernel contains the shared value objects of the domain model:
// UUID identities, fixed-point Money, and the typed Actor principal.
//
// Everything in this package is immutable and constructed through factory
// functions that validate their inputs, so entities built on top of these
// types never have to re-check them.
package kernel
