// Where: internal/infra/sam/intrinsics.go
// What: Intrinsic function resolver for SAM/CloudFormation templates.
// Why: Collapse parameters and locally computable intrinsics before extraction.
package sam

import (
	"regexp"
	"strings"

	"github.com/samscope/samscope/internal/domain/value"
)

// pseudoParameters are the defaults a local run substitutes for the
// deployment-provided AWS pseudo parameters.
var pseudoParameters = map[string]string{
	"AWS::Partition":        "aws",
	"AWS::Region":           "us-east-1",
	"AWS::AccountId":        "123456789012",
	"AWS::StackName":        "local",
	"AWS::StackId":          "arn:aws:cloudformation:us-east-1:123456789012:stack/local",
	"AWS::URLSuffix":        "amazonaws.com",
	"AWS::NotificationARNs": "",
}

// IntrinsicResolver evaluates the intrinsics a template can be resolved with
// locally. Anything it cannot evaluate (Fn::GetAtt on live resources,
// Fn::ImportValue, unknown functions) is left in place: downstream
// construction then fails with the unsupported-intrinsic error when such a
// node ends up somewhere a literal is required.
type IntrinsicResolver struct {
	params        map[string]string
	conditions    map[string]any
	conditionMemo map[string]bool
	conditionPath map[string]bool
	warnings      *warningCollector
}

// NewIntrinsicResolver builds a resolver over the merged parameter values.
func NewIntrinsicResolver(params map[string]string, warnings *warningCollector) *IntrinsicResolver {
	if params == nil {
		params = map[string]string{}
	}
	return &IntrinsicResolver{
		params:        params,
		conditions:    map[string]any{},
		conditionMemo: map[string]bool{},
		conditionPath: map[string]bool{},
		warnings:      warnings,
	}
}

// SetConditions installs the template's Conditions section before resolution.
func (r *IntrinsicResolver) SetConditions(conditions map[string]any) {
	if conditions == nil {
		conditions = map[string]any{}
	}
	r.conditions = conditions
}

// Resolve implements Resolver.
func (r *IntrinsicResolver) Resolve(ctx *Context, node any) (any, bool, error) {
	switch typed := node.(type) {
	case string:
		substituted := r.substitute(typed, nil)
		return substituted, substituted != typed, nil
	case map[string]any:
		if len(typed) != 1 {
			return node, false, nil
		}
		for key, arg := range typed {
			return r.resolveIntrinsic(ctx, key, arg, node)
		}
	}
	return node, false, nil
}

func (r *IntrinsicResolver) resolveIntrinsic(ctx *Context, key string, arg, node any) (any, bool, error) {
	switch key {
	case "Ref":
		return r.resolveRef(ctx, arg, node)
	case "Fn::Sub":
		return r.resolveSub(ctx, arg, node)
	case "Fn::Join":
		return r.resolveJoin(ctx, arg, node)
	case "Fn::If":
		return r.resolveIf(arg, node)
	case "Fn::Split":
		return r.resolveSplit(ctx, arg, node)
	case "Fn::Select":
		return r.resolveSelect(ctx, arg, node)
	case "Condition":
		return r.conditionResult(value.AsString(arg)), true, nil
	case "Fn::GetAtt", "Fn::ImportValue", "Fn::GetAZs", "Fn::FindInMap", "Fn::Base64", "Fn::Cidr":
		// Needs deployed resources or data this core does not model. Leave
		// the node in place for the boundary checks to reject.
		r.warnings.warnf("%s cannot be resolved locally", key)
		return node, false, nil
	default:
		return node, false, nil
	}
}

// resolveRef maps parameter refs to their values and pseudo parameters to
// local defaults. A ref to a template resource resolves to its logical id:
// that is exactly the identity the layer and route lookups key on.
func (r *IntrinsicResolver) resolveRef(ctx *Context, arg, node any) (any, bool, error) {
	name, ok := r.evaluate(ctx, arg).(string)
	if !ok {
		return node, false, nil
	}
	if val, found := r.params[name]; found {
		return val, true, nil
	}
	if val, found := pseudoParameters[name]; found {
		return val, true, nil
	}
	return name, true, nil
}

func (r *IntrinsicResolver) resolveSub(ctx *Context, arg, node any) (any, bool, error) {
	switch typed := arg.(type) {
	case string:
		return r.substitute(typed, nil), true, nil
	case []any:
		if len(typed) != 2 {
			r.warnings.warnf("Fn::Sub: expected [template, variables]")
			return node, false, nil
		}
		text := value.AsString(typed[0])
		locals := map[string]string{}
		for name, val := range value.AsMap(typed[1]) {
			locals[name] = value.AsString(r.evaluate(ctx, val))
		}
		return r.substitute(text, locals), true, nil
	default:
		return node, false, nil
	}
}

func (r *IntrinsicResolver) resolveJoin(ctx *Context, arg, node any) (any, bool, error) {
	args, ok := arg.([]any)
	if !ok || len(args) != 2 {
		r.warnings.warnf("Fn::Join: expected [separator, elements]")
		return node, false, nil
	}
	elements, ok := r.evaluate(ctx, args[1]).([]any)
	if !ok {
		return node, false, nil
	}
	separator := value.AsString(r.evaluate(ctx, args[0]))
	parts := make([]string, 0, len(elements))
	for _, element := range elements {
		parts = append(parts, value.AsString(r.evaluate(ctx, element)))
	}
	return strings.Join(parts, separator), true, nil
}

func (r *IntrinsicResolver) resolveIf(arg, node any) (any, bool, error) {
	args, ok := arg.([]any)
	if !ok || len(args) != 3 {
		r.warnings.warnf("Fn::If: expected [condition, then, else]")
		return node, false, nil
	}
	if r.conditionResult(value.AsString(args[0])) {
		return args[1], true, nil
	}
	return args[2], true, nil
}

func (r *IntrinsicResolver) resolveSplit(ctx *Context, arg, node any) (any, bool, error) {
	args, ok := arg.([]any)
	if !ok || len(args) != 2 {
		r.warnings.warnf("Fn::Split: expected [delimiter, source]")
		return node, false, nil
	}
	delimiter := value.AsString(r.evaluate(ctx, args[0]))
	source, ok := r.evaluate(ctx, args[1]).(string)
	if !ok {
		return node, false, nil
	}
	parts := strings.Split(source, delimiter)
	out := make([]any, len(parts))
	for i, part := range parts {
		out[i] = part
	}
	return out, true, nil
}

func (r *IntrinsicResolver) resolveSelect(ctx *Context, arg, node any) (any, bool, error) {
	args, ok := arg.([]any)
	if !ok || len(args) != 2 {
		r.warnings.warnf("Fn::Select: expected [index, list]")
		return node, false, nil
	}
	index := value.AsInt(r.evaluate(ctx, args[0]))
	list, ok := r.evaluate(ctx, args[1]).([]any)
	if !ok || index < 0 || index >= len(list) {
		return node, false, nil
	}
	return list[index], true, nil
}

// evaluate resolves a nested argument, falling back to the raw node when
// resolution fails. Failures surface as warnings, not errors: the parent
// intrinsic then simply stays unresolved.
func (r *IntrinsicResolver) evaluate(ctx *Context, node any) any {
	if ctx == nil {
		ctx = &Context{MaxDepth: maxResolveDepth}
	}
	resolved, err := ResolveAll(ctx, node, r)
	if err != nil {
		r.warnings.warnf("resolve: %v", err)
		return node
	}
	return resolved
}

var substitutionPattern = regexp.MustCompile(`\$\{([A-Za-z0-9_:]+)\}`)

// substitute replaces ${Name} placeholders from locals, then parameters, then
// pseudo parameters. Unknown placeholders are left verbatim.
func (r *IntrinsicResolver) substitute(text string, locals map[string]string) string {
	if text == "" {
		return text
	}
	return substitutionPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := locals[name]; ok {
			return val
		}
		if val, ok := r.params[name]; ok {
			return val
		}
		if val, ok := pseudoParameters[name]; ok {
			return val
		}
		return match
	})
}

// ConditionResult reports the evaluated value of a named template condition.
// Resources carrying a false Condition attribute are dropped before
// extraction.
func (r *IntrinsicResolver) ConditionResult(name string) bool {
	return r.conditionResult(name)
}

// conditionResult evaluates a named condition with memoization and cycle
// detection.
func (r *IntrinsicResolver) conditionResult(name string) bool {
	if result, ok := r.conditionMemo[name]; ok {
		return result
	}
	raw, ok := r.conditions[name]
	if !ok {
		r.warnings.warnf("condition %q not found", name)
		return false
	}
	if r.conditionPath[name] {
		r.warnings.warnf("condition %q is circular", name)
		return false
	}
	r.conditionPath[name] = true
	defer delete(r.conditionPath, name)

	result := r.evaluateCondition(raw)
	r.conditionMemo[name] = result
	return result
}

func (r *IntrinsicResolver) evaluateCondition(node any) bool {
	m, ok := node.(map[string]any)
	if !ok {
		switch typed := r.evaluate(nil, node).(type) {
		case bool:
			return typed
		case string:
			return typed == "true" || typed == "True" || typed == "1"
		default:
			return false
		}
	}

	if args, ok := m["Fn::Equals"].([]any); ok && len(args) == 2 {
		return value.AsString(r.evaluate(nil, args[0])) == value.AsString(r.evaluate(nil, args[1]))
	}
	if args, ok := m["Fn::Not"].([]any); ok && len(args) == 1 {
		return !r.evaluateCondition(args[0])
	}
	if args, ok := m["Fn::And"].([]any); ok {
		for _, arg := range args {
			if !r.evaluateCondition(arg) {
				return false
			}
		}
		return true
	}
	if args, ok := m["Fn::Or"].([]any); ok {
		for _, arg := range args {
			if r.evaluateCondition(arg) {
				return true
			}
		}
		return false
	}
	if name, ok := m["Condition"]; ok {
		return r.conditionResult(value.AsString(name))
	}
	return false
}
