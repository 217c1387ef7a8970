// Package actor models the people who act on baggage: passengers, airport
// staff and administrators. Profiles are keyed by the identity provider's
// subject id and carry the role that decides what an actor may do.
package actor
