// Where: internal/infra/sam/template_defaults.go
// What: Globals/Function defaults extraction.
// Why: Functions inherit runtime settings the template declares once.
package sam

import "github.com/samscope/samscope/internal/domain/value"

// Lambda service defaults, applied when neither the function nor the
// template Globals set a value.
const (
	defaultTimeout = 3
	defaultMemory  = 128
)

type functionDefaults struct {
	Runtime     string
	Handler     string
	Timeout     int
	Memory      int
	Layers      []any
	Environment map[string]any
}

func extractFunctionGlobals(document map[string]any) map[string]any {
	globals := value.AsMap(document["Globals"])
	if globals == nil {
		return nil
	}
	return value.AsMap(globals["Function"])
}

func parseFunctionDefaults(functionGlobals map[string]any) functionDefaults {
	defaults := functionDefaults{
		Timeout: defaultTimeout,
		Memory:  defaultMemory,
	}
	if functionGlobals == nil {
		return defaults
	}

	defaults.Runtime = value.AsString(functionGlobals["Runtime"])
	defaults.Handler = value.AsString(functionGlobals["Handler"])
	defaults.Timeout = value.AsIntDefault(functionGlobals["Timeout"], defaults.Timeout)
	defaults.Memory = value.AsIntDefault(functionGlobals["MemorySize"], defaults.Memory)
	if layers := value.AsSlice(functionGlobals["Layers"]); layers != nil {
		defaults.Layers = layers
	}
	if env := value.AsMap(functionGlobals["Environment"]); env != nil {
		defaults.Environment = env
	}
	return defaults
}

// extractParameterDefaults pulls Default values out of the Parameters
// section so callers can override them selectively.
func extractParameterDefaults(document map[string]any) map[string]string {
	params := value.AsMap(document["Parameters"])
	if params == nil {
		return nil
	}
	defaults := map[string]string{}
	for name, raw := range params {
		m := value.AsMap(raw)
		if m == nil {
			continue
		}
		if def := m["Default"]; def != nil {
			defaults[name] = value.AsString(def)
		}
	}
	return defaults
}
