// Where: internal/infra/sam/api_provider.go
// What: ApiProvider backed by a parsed SAM template.
package sam

import (
	"iter"

	"github.com/samscope/samscope/internal/domain/provider"
)

// ApiProvider serves the APIs extracted from one template.
type ApiProvider struct {
	apis []*provider.Api
}

var _ provider.ApiProvider = (*ApiProvider)(nil)

// NewApiProvider parses the template and collects its APIs.
func NewApiProvider(content string, parameters map[string]string) (*ApiProvider, error) {
	result, err := ParseTemplate(content, parameters)
	if err != nil {
		return nil, err
	}
	return &ApiProvider{apis: result.Apis}, nil
}

// GetAll yields explicit APIs in logical-id order, then the implicit default
// API when the template has routes that belong to no explicit one.
func (p *ApiProvider) GetAll() iter.Seq[*provider.Api] {
	return func(yield func(*provider.Api) bool) {
		for _, api := range p.apis {
			if !yield(api) {
				return
			}
		}
	}
}
