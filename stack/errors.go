package stack

import "fmt"

// SynthError reports a failure while synthesizing one stack.
type SynthError struct {
	Stack string
	Phase string // "validate", "collect", "resolve", "encode", "write"
	Cause error
}

func (e *SynthError) Error() string {
	return fmt.Sprintf("synthesis failed for stack '%s' during %s phase: %v",
		e.Stack, e.Phase, e.Cause)
}

func (e *SynthError) Unwrap() error {
	return e.Cause
}
