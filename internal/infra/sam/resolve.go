// Where: internal/infra/sam/resolve.go
// What: Generic resolution walk over a decoded template document.
// Why: Separate the traversal from the intrinsic semantics.
package sam

import "fmt"

// maxResolveDepth bounds how many times a single node may be rewritten.
// Self-referential intrinsics would otherwise loop forever.
const maxResolveDepth = 20

// Context tracks rewrite depth during resolution.
type Context struct {
	MaxDepth int
	depth    int
}

func (c *Context) descend() (*Context, error) {
	if c.MaxDepth > 0 && c.depth >= c.MaxDepth {
		return nil, fmt.Errorf("intrinsic resolution exceeded depth %d", c.MaxDepth)
	}
	return &Context{MaxDepth: c.MaxDepth, depth: c.depth + 1}, nil
}

// Resolver rewrites a single node. The second return reports whether the node
// changed; unchanged nodes stop the rewrite loop and the walk recurses into
// their children instead.
type Resolver interface {
	Resolve(ctx *Context, node any) (any, bool, error)
}

// ResolveAll applies the resolver across the whole document. Nodes the
// resolver rewrites are resolved again until they settle, bounded by the
// context depth.
func ResolveAll(ctx *Context, node any, resolver Resolver) (any, error) {
	if ctx == nil {
		ctx = &Context{MaxDepth: maxResolveDepth}
	}

	current := node
	for {
		resolved, changed, err := resolver.Resolve(ctx, current)
		if err != nil {
			return nil, err
		}
		if !changed {
			break
		}
		next, err := ctx.descend()
		if err != nil {
			return nil, err
		}
		ctx = next
		current = resolved
	}

	switch typed := current.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			resolved, err := ResolveAll(ctx, val, resolver)
			if err != nil {
				return nil, err
			}
			out[key] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(typed))
		for i, val := range typed {
			resolved, err := ResolveAll(ctx, val, resolver)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return current, nil
	}
}
