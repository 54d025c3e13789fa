// Where: internal/infra/sam/decode.go
// What: Tag-aware YAML decoding for SAM/CloudFormation templates.
// Why: Short-form intrinsics (!Ref, !Sub, ...) must survive as long-form maps.
package sam

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// shortFormIntrinsics maps CloudFormation short-form tags to the long-form
// key the resolver understands. !Ref and !Condition keep their bare keys;
// everything else gets the Fn:: prefix.
var shortFormIntrinsics = map[string]string{
	"!Ref":         "Ref",
	"!Condition":   "Condition",
	"!GetAtt":      "Fn::GetAtt",
	"!GetAZs":      "Fn::GetAZs",
	"!Sub":         "Fn::Sub",
	"!Join":        "Fn::Join",
	"!Split":       "Fn::Split",
	"!Select":      "Fn::Select",
	"!FindInMap":   "Fn::FindInMap",
	"!Base64":      "Fn::Base64",
	"!Cidr":        "Fn::Cidr",
	"!ImportValue": "Fn::ImportValue",
	"!If":          "Fn::If",
	"!Not":         "Fn::Not",
	"!And":         "Fn::And",
	"!Or":          "Fn::Or",
	"!Equals":      "Fn::Equals",
}

// DecodeYAML parses template YAML into a string-keyed map, rewriting
// short-form intrinsic tags into their long-form map equivalents so the rest
// of the pipeline only ever sees `{"Fn::X": args}` nodes.
func DecodeYAML(content string) (map[string]any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(content), &root); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return map[string]any{}, nil
	}

	decoded, err := nodeToValue(root.Content[0])
	if err != nil {
		return nil, err
	}
	m, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("template root must be a mapping")
	}
	return m, nil
}

func nodeToValue(n *yaml.Node) (any, error) {
	if longForm, ok := shortFormIntrinsics[n.Tag]; ok {
		inner, err := untaggedValue(n)
		if err != nil {
			return nil, err
		}
		return map[string]any{longForm: inner}, nil
	}
	return untaggedValue(n)
}

// untaggedValue decodes a node by kind, ignoring any intrinsic tag on the
// node itself (children are decoded normally).
func untaggedValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			val, err := nodeToValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[n.Content[i].Value] = val
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			val, err := nodeToValue(child)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	case yaml.ScalarNode:
		if n.Tag == "" || strings.HasPrefix(n.Tag, "!!") {
			var out any
			if err := n.Decode(&out); err != nil {
				return nil, fmt.Errorf("decode scalar at line %d: %w", n.Line, err)
			}
			return out, nil
		}
		// Custom-tagged scalar, e.g. `!Ref Name`: the payload is the raw text.
		return n.Value, nil
	case yaml.AliasNode:
		return nodeToValue(n.Alias)
	default:
		return nil, nil
	}
}
