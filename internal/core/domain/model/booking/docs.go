// Package booking provides domain entities and business logic for service
// booking management in the dispatch system. It implements the Booking
// aggregate root with lifecycle management and state transitions.
//
// The package includes:
//   - Booking: The aggregate root that manages booking identity, frozen price,
//     provider assignment and the completion code secret
//   - Status: A state machine that enforces valid booking status transitions
//
// Key business rules:
//   - Bookings must have a valid owner, service, address and positive price
//   - Status follows a defined workflow: Pending -> Confirmed -> OnTheWay -> Completed,
//     with Pending -> Cancelled as the only other transition
//   - A provider is assigned exactly when the booking is confirmed or later
//   - The price and completion code are frozen at creation
//   - Completion requires the caller to present the matching completion code
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package booking
