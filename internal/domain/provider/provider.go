// Where: internal/domain/provider/provider.go
// What: Capability interfaces for template backends.
// Why: Let callers consume functions and APIs without knowing the template format.
package provider

import (
	"fmt"
	"iter"
)

// FunctionProvider is implemented by every template backend that can yield
// functions. Callers depend on this interface only, never on a concrete
// backend type.
type FunctionProvider interface {
	// Get returns the function with the given logical name. The baseline
	// lookup rule is an exact name match; backends may refine it. When no
	// function matches, the returned error wraps ErrFunctionNotFound.
	Get(name string) (*Function, error)

	// GetAll yields every function the backend knows, in a stable
	// backend-defined order. The sequence is finite and, for stateless
	// backends, restartable.
	GetAll() iter.Seq[*Function]
}

// ApiProvider is implemented by template backends that can yield APIs.
type ApiProvider interface {
	// GetAll yields every API, with the same contract as
	// FunctionProvider.GetAll.
	GetAll() iter.Seq[*Api]
}

// UnimplementedFunctionProvider can be embedded by partial backends. Every
// method fails with ErrNotImplemented; Get returns it, GetAll panics with it
// because the iterator signature has no error channel and calling an
// unimplemented method is a programming error.
type UnimplementedFunctionProvider struct{}

func (UnimplementedFunctionProvider) Get(name string) (*Function, error) {
	return nil, fmt.Errorf("Get(%q): %w", name, ErrNotImplemented)
}

func (UnimplementedFunctionProvider) GetAll() iter.Seq[*Function] {
	panic(fmt.Errorf("GetAll: %w", ErrNotImplemented))
}

// UnimplementedApiProvider is the ApiProvider counterpart.
type UnimplementedApiProvider struct{}

func (UnimplementedApiProvider) GetAll() iter.Seq[*Api] {
	panic(fmt.Errorf("GetAll: %w", ErrNotImplemented))
}
