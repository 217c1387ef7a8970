// Package kernel provides the shared domain primitives of the baggage tracker.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - TrackingCode: The human-presentable baggage code derived from a baggage UUID
//
// Both primitives are immutable and safe for concurrent use.
package kernel
