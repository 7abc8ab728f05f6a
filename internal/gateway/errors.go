package gateway

import "fmt"

// ValidationError reports a missing or blank required input field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// NotConfiguredError reports an absent, inactive, or incomplete
// integration record. Absent and inactive are deliberately not
// distinguished: the store query filters on the active flag, so the
// resolver cannot tell them apart.
type NotConfiguredError struct {
	Reason string
}

func (e *NotConfiguredError) Error() string {
	return e.Reason
}

// NoWorkspacesError means the token was accepted upstream but grants
// access to zero workspaces.
type NoWorkspacesError struct{}

func (e *NoWorkspacesError) Error() string {
	return "no workspaces accessible with the provided token"
}

// StoreError wraps a failure from the integration config store.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
