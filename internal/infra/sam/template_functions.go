// Where: internal/infra/sam/template_functions.go
// What: Function resource extraction.
// Why: Map AWS::Serverless::Function and AWS::Lambda::Function to the provider model.
package sam

import (
	"fmt"

	"github.com/samscope/samscope/internal/domain/provider"
	"github.com/samscope/samscope/internal/domain/value"
)

func parseFunctions(
	resources map[string]any,
	defaults functionDefaults,
	layers layerIndex,
	warnf func(string, ...any),
) ([]*provider.Function, error) {
	functions := make([]*provider.Function, 0)
	for _, logicalID := range sortedMapKeys(resources) {
		resource := value.AsMap(resources[logicalID])
		if resource == nil {
			continue
		}

		var (
			fn  *provider.Function
			err error
		)
		switch value.AsString(resource["Type"]) {
		case "AWS::Serverless::Function":
			fn, err = parseServerlessFunction(logicalID, resource, defaults, layers, warnf)
		case "AWS::Lambda::Function":
			fn, err = parseLambdaFunction(logicalID, resource, defaults, layers, warnf)
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", logicalID, err)
		}
		if fn != nil {
			functions = append(functions, fn)
		}
	}
	return functions, nil
}

func parseServerlessFunction(
	logicalID string,
	resource map[string]any,
	defaults functionDefaults,
	layers layerIndex,
	warnf func(string, ...any),
) (*provider.Function, error) {
	props := value.AsMap(resource["Properties"])
	if props == nil {
		warnf("function %s has no Properties", logicalID)
		return nil, nil
	}

	layerRefs := props["Layers"]
	if layerRefs == nil {
		layerRefs = defaults.Layers
	}
	fnLayers, err := parseFunctionLayers(layerRefs, layers)
	if err != nil {
		return nil, err
	}

	return &provider.Function{
		Name:        logicalID,
		Runtime:     value.AsStringDefault(props["Runtime"], defaults.Runtime),
		Memory:      value.AsIntDefault(props["MemorySize"], defaults.Memory),
		Timeout:     value.AsIntDefault(props["Timeout"], defaults.Timeout),
		Handler:     value.AsStringDefault(props["Handler"], defaults.Handler),
		CodeURI:     parseCodeURI(props["CodeUri"]),
		Environment: mergeEnvironment(defaults.Environment, props["Environment"]),
		RoleARN:     value.AsString(props["Role"]),
		Layers:      fnLayers,
	}, nil
}

// parseLambdaFunction handles the raw CloudFormation form, whose code lives
// under Code.{S3Bucket,S3Key,S3ObjectVersion} or Code.ZipFile.
func parseLambdaFunction(
	logicalID string,
	resource map[string]any,
	defaults functionDefaults,
	layers layerIndex,
	warnf func(string, ...any),
) (*provider.Function, error) {
	props := value.AsMap(resource["Properties"])
	if props == nil {
		warnf("function %s has no Properties", logicalID)
		return nil, nil
	}

	fnLayers, err := parseFunctionLayers(props["Layers"], layers)
	if err != nil {
		return nil, err
	}

	var codeURI provider.CodeURI
	if code := value.AsMap(props["Code"]); code != nil {
		bucket := value.AsString(code["S3Bucket"])
		key := value.AsString(code["S3Key"])
		if bucket != "" && key != "" {
			codeURI = provider.CodeURI{S3: &provider.S3Location{
				Bucket:  bucket,
				Key:     key,
				Version: value.AsString(code["S3ObjectVersion"]),
			}}
		} else if inline := value.AsString(code["ZipFile"]); inline != "" {
			warnf("function %s uses inline ZipFile code, which is not runnable locally", logicalID)
		}
	}

	return &provider.Function{
		Name:        logicalID,
		Runtime:     value.AsStringDefault(props["Runtime"], defaults.Runtime),
		Memory:      value.AsIntDefault(props["MemorySize"], defaults.Memory),
		Timeout:     value.AsIntDefault(props["Timeout"], defaults.Timeout),
		Handler:     value.AsStringDefault(props["Handler"], defaults.Handler),
		CodeURI:     codeURI,
		Environment: mergeEnvironment(defaults.Environment, props["Environment"]),
		RoleARN:     value.AsString(props["Role"]),
		Layers:      fnLayers,
	}, nil
}

// parseCodeURI accepts the string form (local path, s3:// URI) and the
// structured {Bucket, Key, Version} form of a Serverless CodeUri.
func parseCodeURI(raw any) provider.CodeURI {
	switch typed := raw.(type) {
	case string:
		return provider.CodeURI{Path: typed}
	case map[string]any:
		bucket := value.AsString(typed["Bucket"])
		key := value.AsString(typed["Key"])
		if bucket != "" && key != "" {
			return provider.CodeURI{S3: &provider.S3Location{
				Bucket:  bucket,
				Key:     key,
				Version: value.AsString(typed["Version"]),
			}}
		}
	}
	return provider.CodeURI{}
}

// mergeEnvironment overlays the function's Environment block on the Globals
// one, preserving the source format's "Variables" nesting. The merged map is
// pass-through data for the runtime; nothing here interprets it.
func mergeEnvironment(globalEnv map[string]any, raw any) map[string]any {
	fnEnv := value.AsMap(raw)
	if globalEnv == nil && fnEnv == nil {
		return nil
	}

	merged := map[string]any{}
	variables := map[string]any{}
	for _, env := range []map[string]any{globalEnv, fnEnv} {
		for key, val := range env {
			if key != "Variables" {
				merged[key] = val
				continue
			}
			for name, v := range value.AsMap(val) {
				variables[name] = v
			}
		}
	}
	if len(variables) > 0 {
		merged["Variables"] = variables
	}
	return merged
}

// parseFunctionLayers preserves template order: the runtime merges extracted
// layer contents in exactly this order.
func parseFunctionLayers(raw any, layers layerIndex) ([]*provider.LayerVersion, error) {
	refs := value.AsSlice(raw)
	if refs == nil {
		return nil, nil
	}
	out := make([]*provider.LayerVersion, 0, len(refs))
	for _, ref := range refs {
		layer, err := layers.resolve(ref)
		if err != nil {
			return nil, err
		}
		out = append(out, layer)
	}
	return out, nil
}
