package ops

import "errors"

// ErrUnknownOperation is returned by Registry.Lookup.
var ErrUnknownOperation = errors.New("unknown operation")

// FinalizeError wraps a failure surfaced by Finalize. The host must treat it
// as a no-op for its document.
type FinalizeError struct {
	Op  string
	Err error
}

func (e *FinalizeError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *FinalizeError) Unwrap() error { return e.Err }
