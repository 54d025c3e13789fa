// Where: internal/domain/provider/errors.go
// What: Error taxonomy for template-derived entities and provider contracts.
// Why: Let callers branch on error kind without depending on a concrete backend.
package provider

import (
	"errors"
	"fmt"
)

// ErrFunctionNotFound is returned by FunctionProvider.Get when no function
// matches the requested name.
var ErrFunctionNotFound = errors.New("function not found")

// ErrNotImplemented signals that a provider method was called on a backend
// that does not implement it. This is a programming error, not a runtime
// condition to recover from.
var ErrNotImplemented = errors.New("not implemented")

// UnsupportedIntrinsicError reports a layer reference that is not a resolved
// literal string, e.g. an intrinsic function the resolver could not evaluate.
type UnsupportedIntrinsicError struct {
	Value any
}

func (e *UnsupportedIntrinsicError) Error() string {
	return fmt.Sprintf("%v is an unsupported intrinsic", e.Value)
}

// InvalidLayerVersionARNError reports a layer ARN that does not match the
// expected `...:layer:<name>:<version>` shape.
type InvalidLayerVersionARNError struct {
	ARN string
}

func (e *InvalidLayerVersionARNError) Error() string {
	return e.ARN + " is an invalid layer ARN"
}
