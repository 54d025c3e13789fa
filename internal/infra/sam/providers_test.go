// Where: internal/infra/sam/providers_test.go
// What: Tests for the template-backed providers.
package sam

import (
	"errors"
	"testing"

	"github.com/samscope/samscope/internal/domain/provider"
)

func TestFunctionProviderGet(t *testing.T) {
	p, err := NewFunctionProvider(fixtureTemplate, nil)
	if err != nil {
		t.Fatalf("NewFunctionProvider failed: %v", err)
	}

	fn, err := p.Get("ListFunction")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fn.Name != "ListFunction" {
		t.Fatalf("Name = %q", fn.Name)
	}

	_, err = p.Get("NoSuchFunction")
	if !errors.Is(err, provider.ErrFunctionNotFound) {
		t.Fatalf("error = %v, want ErrFunctionNotFound", err)
	}
}

func TestFunctionProviderGetAllIsStable(t *testing.T) {
	p, err := NewFunctionProvider(fixtureTemplate, nil)
	if err != nil {
		t.Fatalf("NewFunctionProvider failed: %v", err)
	}

	collect := func() []string {
		var names []string
		for fn := range p.GetAll() {
			names = append(names, fn.Name)
		}
		return names
	}

	first := collect()
	second := collect()
	if len(first) == 0 {
		t.Fatal("GetAll yielded nothing")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("iteration order changed: %v vs %v", first, second)
		}
	}
}

func TestFunctionProviderGetAllEarlyBreak(t *testing.T) {
	p, err := NewFunctionProvider(fixtureTemplate, nil)
	if err != nil {
		t.Fatalf("NewFunctionProvider failed: %v", err)
	}

	count := 0
	for range p.GetAll() {
		count++
		break
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestApiProviderGetAll(t *testing.T) {
	p, err := NewApiProvider(fixtureTemplate, nil)
	if err != nil {
		t.Fatalf("NewApiProvider failed: %v", err)
	}

	var apis []*provider.Api
	for api := range p.GetAll() {
		apis = append(apis, api)
	}
	if len(apis) != 2 {
		t.Fatalf("expected 2 apis, got %d", len(apis))
	}
	if apis[0].StageName != "dev" {
		t.Fatalf("explicit api should come first, got stage %q", apis[0].StageName)
	}
}
