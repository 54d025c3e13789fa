// Where: internal/infra/sam/template_parser.go
// What: Top-level SAM template parsing flow.
// Why: One entry point from template text to provider entities.
package sam

import (
	"fmt"
	"sort"

	"github.com/samscope/samscope/internal/domain/provider"
	"github.com/samscope/samscope/internal/domain/value"
)

// ParseResult carries everything extracted from one template.
type ParseResult struct {
	Functions []*provider.Function
	Apis      []*provider.Api
	Layers    []*provider.LayerVersion
	Warnings  []string
}

// Parser abstracts the template parsing step so commands can be tested with
// canned results.
type Parser interface {
	Parse(content string, parameters map[string]string) (*ParseResult, error)
}

// DefaultParser is the production Parser.
type DefaultParser struct{}

func (DefaultParser) Parse(content string, parameters map[string]string) (*ParseResult, error) {
	return ParseTemplate(content, parameters)
}

// ParseTemplate decodes the template, resolves intrinsics with the merged
// parameter values, and extracts functions, layers, and APIs in a
// deterministic order.
func ParseTemplate(content string, parameters map[string]string) (*ParseResult, error) {
	document, err := DecodeYAML(content)
	if err != nil {
		return nil, err
	}
	if err := ValidateTemplate(document); err != nil {
		return nil, err
	}

	params := extractParameterDefaults(document)
	if params == nil {
		params = map[string]string{}
	}
	for name, val := range parameters {
		params[name] = val
	}

	warnings := newWarningCollector()
	resolver := NewIntrinsicResolver(params, warnings)
	resolver.SetConditions(value.AsMap(document["Conditions"]))

	resolvedAny, err := ResolveAll(&Context{MaxDepth: maxResolveDepth}, document, resolver)
	if err != nil {
		return nil, fmt.Errorf("resolve intrinsics: %w", err)
	}
	resolved := value.AsMap(resolvedAny)
	if resolved == nil {
		return nil, fmt.Errorf("unexpected template root")
	}

	resources := conditionalResources(value.AsMap(resolved["Resources"]), resolver)
	if resources == nil {
		return &ParseResult{Warnings: warnings.list()}, nil
	}

	defaults := parseFunctionDefaults(extractFunctionGlobals(resolved))
	layers := parseLayerResources(resources)

	functions, err := parseFunctions(resources, defaults, layers, warnings.warnf)
	if err != nil {
		return nil, err
	}
	apis := parseApis(resources, warnings.warnf)

	return &ParseResult{
		Functions: functions,
		Apis:      apis,
		Layers:    distinctLayers(functions),
		Warnings:  warnings.list(),
	}, nil
}

// conditionalResources drops resources whose Condition attribute evaluates
// false.
func conditionalResources(resources map[string]any, resolver *IntrinsicResolver) map[string]any {
	if resources == nil {
		return nil
	}
	out := make(map[string]any, len(resources))
	for logicalID, raw := range resources {
		resource := value.AsMap(raw)
		if resource != nil {
			if condition := value.AsString(resource["Condition"]); condition != "" && !resolver.ConditionResult(condition) {
				continue
			}
		}
		out[logicalID] = raw
	}
	return out
}

// distinctLayers collects every layer referenced by any function, first
// occurrence wins, function order preserved.
func distinctLayers(functions []*provider.Function) []*provider.LayerVersion {
	seen := map[string]struct{}{}
	var layers []*provider.LayerVersion
	for _, fn := range functions {
		for _, layer := range fn.Layers {
			if _, dup := seen[layer.Name()]; dup {
				continue
			}
			seen[layer.Name()] = struct{}{}
			layers = append(layers, layer)
		}
	}
	return layers
}

// sortedMapKeys keeps extraction independent of Go map iteration order.
func sortedMapKeys(values map[string]any) []string {
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
