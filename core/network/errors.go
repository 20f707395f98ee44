package network

import "errors"

var (
	// ErrInvalidNetwork indicates a malformed graph at build time. It is
	// fatal and aborts startup.
	ErrInvalidNetwork = errors.New("network: invalid network")

	// ErrNotFound indicates a node ID unknown to the network.
	ErrNotFound = errors.New("network: node not found")
)
