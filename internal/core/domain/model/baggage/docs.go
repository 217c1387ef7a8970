// Package baggage provides the baggage aggregate of the tracker: the Baggage
// root, its closed Status enumeration and the immutable StatusEvent records
// that form each bag's timeline.
//
// Key business rules:
//   - A bag is identified by a UUID and a tracking code derived from it
//   - New bags start in CheckedIn
//   - The current status changes only through RecordStatus, which also
//     produces the StatusEvent describing the change
//   - Event timestamps never go backwards within one bag
//
// Any status may follow any other at this level. Transition rules that depend
// on who asks or on a policy live in the domain services package.
package baggage
