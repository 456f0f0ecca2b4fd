package booking

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a booking.
// It implements a state machine with defined transitions to ensure
// bookings follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> OnTheWay ──> Completed
//	   │
//	   └──> Cancelled
//
// Completed and Cancelled are terminal states with no further transitions.
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a booking is first created.
	// Bookings in this status are visible to nearby providers and open for acceptance.
	Pending

	// Confirmed indicates a provider has won the booking and commission was settled.
	Confirmed

	// OnTheWay indicates the assigned provider has started travelling to the job.
	OnTheWay

	// Completed indicates the service was delivered and the completion code verified.
	// This is a terminal state.
	Completed

	// Cancelled indicates the owner withdrew the booking before any provider accepted it.
	// This is a terminal state.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Confirmed: "confirmed",
		OnTheWay:  "on_the_way",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Confirmed: "confirmed",
		OnTheWay:  "on_the_way",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are: Pending, Confirmed, OnTheWay, Completed, Cancelled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "on_the_way".
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// ValidateCanHaveProvider validates the consistency between booking status
// and provider assignment.
//
// Business Rules:
//   - Pending and Cancelled bookings must not have a provider assigned
//   - Confirmed, OnTheWay and Completed bookings must have a provider assigned
//
// Parameters:
//   - provider: whether the booking has a provider assigned
//
// Returns:
//   - error: validation error if status and provider assignment are inconsistent
func (s Status) ValidateCanHaveProvider(provider bool) error {
	assigned := s == Confirmed || s == OnTheWay || s == Completed

	if provider && !assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a provider", s.String()),
		)
	}

	if !provider && assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no provider", s.String()),
		)
	}

	return nil
}

// Confirm transitions the status to Confirmed.
//
// Valid transitions:
//   - Pending -> Confirmed (a provider won the booking)
//
// Returns:
//   - (Confirmed, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Confirm() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to confirm", s.String()),
		)
	}

	return Confirmed, nil
}

// Start transitions the status to OnTheWay.
//
// Valid transitions:
//   - Confirmed -> OnTheWay (assigned provider started the service)
//
// Returns:
//   - (OnTheWay, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Start() (Status, error) {
	if s != Confirmed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start", s.String()),
		)
	}

	return OnTheWay, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - OnTheWay -> Completed (service delivered, completion code verified)
//
// Completed is a terminal state with no further transitions possible.
//
// Returns:
//   - (Completed, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Complete() (Status, error) {
	if s != OnTheWay {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled (owner withdrew the booking before acceptance)
//
// Cancelled is a terminal state with no further transitions possible.
//
// Returns:
//   - (Cancelled, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Cancel() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}

	return Cancelled, nil
}

// StatusFromString parses a wire name, e.g. "on_the_way", into a Status.
// Returns an error for names that do not map to a valid status.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status name", s))
}
