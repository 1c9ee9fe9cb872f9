package schedule

import "errors"

var (
	// ErrProgramNotFound indicates the referenced program is not in the catalog.
	ErrProgramNotFound = errors.New("program not found")
	// ErrAlreadyScheduled indicates the program already has a schedule item.
	ErrAlreadyScheduled = errors.New("program already scheduled")
	// ErrNotScheduled indicates the program has no schedule item.
	ErrNotScheduled = errors.New("program not scheduled")
	// ErrInvalidVersions indicates an empty set or a tag the program does not offer.
	ErrInvalidVersions = errors.New("invalid version selection")
	// ErrInvalidDelivery indicates an unknown delivery method.
	ErrInvalidDelivery = errors.New("invalid delivery method")
	// ErrInvalidSessions indicates a session count below 1.
	ErrInvalidSessions = errors.New("invalid session count")
)
