package awsdeploy

import "fmt"

// OperationError represents a failed AWS operation.
type OperationError struct {
	Operation string // "load-config", "bootstrap", "publish", etc.
	Resource  string // bucket name, role name, etc.
	Cause     error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("aws error during %s operation on resource '%s': %v",
		e.Operation, e.Resource, e.Cause)
}

func (e *OperationError) Unwrap() error {
	return e.Cause
}
