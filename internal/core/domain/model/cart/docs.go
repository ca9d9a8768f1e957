// Package cart contains the Cart aggregate: a per-customer accumulator of
// menu items bound to a single restaurant at a time. Prices are not stored
// in the cart; they are snapshotted into the order at checkout.
package cart
