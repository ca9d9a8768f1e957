// Package order contains the Order aggregate and its value objects: the
// status state machine, immutable line-item and address snapshots, the
// payment axis, and the structured business-rule errors the lifecycle
// surfaces to callers.
package order
