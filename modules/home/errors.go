package home

import (
	"errors"
	"fmt"
)

var (
	ErrQueueFull             = errors.New("demo queue is full")
	ErrSchedulerRunning      = errors.New("scheduler is already running")
	ErrSchedulerStopped      = errors.New("scheduler is stopped")
	ErrUnknownOperation      = errors.New("unknown demo operation")
	ErrToastNotFound         = errors.New("toast not found")
	ErrSimulatedAsyncFailure = errors.New("Simulated async operation failed") //nolint:staticcheck // displayed verbatim
)

// NetworkError is returned for a non-2xx response from the network demo.
type NetworkError struct {
	Status int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("Network error: %d", e.Status)
}
