package search

import "errors"

var (
	// ErrUnreachable indicates that no geometric path exists between the
	// requested endpoints.
	ErrUnreachable = errors.New("search: destination unreachable")

	// ErrEnergyInfeasible indicates that a geometric path exists but every
	// candidate violates the minimum battery reserve.
	ErrEnergyInfeasible = errors.New("search: no battery-feasible route")

	// ErrTimeout indicates the search exceeded its expansion budget or
	// wall-clock deadline.
	ErrTimeout = errors.New("search: budget exceeded")
)
