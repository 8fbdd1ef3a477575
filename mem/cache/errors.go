package cache

import "fmt"

// A ConfigurationError reports cache parameters that cannot describe a
// cache.
type ConfigurationError struct {
	SetBits   int
	NumWays   int
	BlockBits int
	Reason    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid cache configuration (s=%d, E=%d, b=%d): %s",
		e.SetBits, e.NumWays, e.BlockBits, e.Reason)
}

// An AllocationError reports that the line storage of a cache could not be
// obtained.
type AllocationError struct {
	NumSets uint64
	NumWays uint64
	Cause   error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("cannot allocate %d sets of %d lines: %v",
		e.NumSets, e.NumWays, e.Cause)
}

func (e *AllocationError) Unwrap() error {
	return e.Cause
}
