// Package services provides domain services that apply business rules spanning
// more than one aggregate of the baggage tracker.
//
// The package includes:
//   - StatusAuthority: decides whether an actor may move a bag to a status
//   - TransitionPolicy: the pluggable rule for which status may follow which
//
// Domain services read aggregates and return decisions. They never persist.
package services
