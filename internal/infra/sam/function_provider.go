// Where: internal/infra/sam/function_provider.go
// What: FunctionProvider backed by a parsed SAM template.
// Why: Commands consume the provider interface, not the parse result.
package sam

import (
	"fmt"
	"iter"

	"github.com/samscope/samscope/internal/domain/provider"
)

// FunctionProvider serves the functions extracted from one template. The
// iteration order of GetAll is the extraction order and is stable across
// calls.
type FunctionProvider struct {
	names     []string
	functions map[string]*provider.Function
	warnings  []string
}

var _ provider.FunctionProvider = (*FunctionProvider)(nil)

// NewFunctionProvider parses the template and indexes its functions by name.
func NewFunctionProvider(content string, parameters map[string]string) (*FunctionProvider, error) {
	result, err := ParseTemplate(content, parameters)
	if err != nil {
		return nil, err
	}
	return newFunctionProvider(result), nil
}

// NewFunctionProviderFromResult wraps an already parsed template.
func NewFunctionProviderFromResult(result *ParseResult) *FunctionProvider {
	return newFunctionProvider(result)
}

func newFunctionProvider(result *ParseResult) *FunctionProvider {
	p := &FunctionProvider{
		names:     make([]string, 0, len(result.Functions)),
		functions: make(map[string]*provider.Function, len(result.Functions)),
		warnings:  result.Warnings,
	}
	for _, fn := range result.Functions {
		p.names = append(p.names, fn.Name)
		p.functions[fn.Name] = fn
	}
	return p
}

// Get returns the function with the given name.
func (p *FunctionProvider) Get(name string) (*provider.Function, error) {
	fn, ok := p.functions[name]
	if !ok {
		return nil, fmt.Errorf("function %q: %w", name, provider.ErrFunctionNotFound)
	}
	return fn, nil
}

// GetAll yields every function in extraction order.
func (p *FunctionProvider) GetAll() iter.Seq[*provider.Function] {
	return func(yield func(*provider.Function) bool) {
		for _, name := range p.names {
			if !yield(p.functions[name]) {
				return
			}
		}
	}
}

// Warnings returns the non-fatal issues collected while parsing.
func (p *FunctionProvider) Warnings() []string {
	return p.warnings
}
