// Package services provides domain services that implement business logic
// spanning more than a single aggregate in the ordering system.
//
// The package includes:
//   - PricingCalculator: Prices a set of order lines and applies the delivery fee
//   - TransitionAuthorizer: Decides which actor may request which status transition
//
// Domain services stay free of infrastructure concerns; use case handlers
// wire them together with repositories and external clients.
package services
