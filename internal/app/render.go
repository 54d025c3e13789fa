// Where: internal/app/render.go
// What: Output rendering for list commands.
// Why: One place for text, json, yaml, and user-template rendering.
package app

import (
	"encoding/json"
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/samscope/samscope/internal/domain/provider"
)

// functionView is the serializable shape of a function for json/yaml output
// and user templates.
type functionView struct {
	Name        string         `json:"name"`
	Runtime     string         `json:"runtime,omitempty"`
	Handler     string         `json:"handler,omitempty"`
	Memory      int            `json:"memory"`
	Timeout     int            `json:"timeout"`
	CodeURI     string         `json:"codeUri,omitempty"`
	Environment map[string]any `json:"environment,omitempty"`
	Role        string         `json:"role,omitempty"`
	Layers      []layerView    `json:"layers,omitempty"`
}

type layerView struct {
	Name    string `json:"name"`
	ARN     string `json:"arn"`
	Version *int   `json:"version,omitempty"`
	CodeURI string `json:"codeUri,omitempty"`
	Local   bool   `json:"local"`
}

type routeView struct {
	Path     string `json:"path"`
	Method   string `json:"method"`
	Function string `json:"function"`
}

type apiView struct {
	StageName        string            `json:"stageName,omitempty"`
	StageVariables   map[string]string `json:"stageVariables,omitempty"`
	Routes           []routeView       `json:"routes"`
	CorsHeaders      map[string]string `json:"corsHeaders,omitempty"`
	BinaryMediaTypes []string          `json:"binaryMediaTypes,omitempty"`
}

func newFunctionView(fn *provider.Function) functionView {
	view := functionView{
		Name:        fn.Name,
		Runtime:     fn.Runtime,
		Handler:     fn.Handler,
		Memory:      fn.Memory,
		Timeout:     fn.Timeout,
		CodeURI:     fn.CodeURI.String(),
		Environment: fn.Environment,
		Role:        fn.RoleARN,
	}
	for _, layer := range fn.Layers {
		view.Layers = append(view.Layers, newLayerView(layer))
	}
	return view
}

func newLayerView(layer *provider.LayerVersion) layerView {
	return layerView{
		Name:    layer.Name(),
		ARN:     layer.ARN(),
		Version: layer.Version(),
		CodeURI: layer.CodeURI(),
		Local:   layer.DefinedWithinTemplate(),
	}
}

func newApiView(api *provider.Api) apiView {
	view := apiView{
		StageName:        api.StageName,
		StageVariables:   api.StageVariables,
		CorsHeaders:      api.Cors.Headers(),
		BinaryMediaTypes: api.BinaryMediaTypes(),
		Routes:           make([]routeView, 0, len(api.Routes)),
	}
	for _, route := range api.Routes {
		view.Routes = append(view.Routes, routeView{
			Path:     route.Path,
			Method:   route.Method,
			Function: route.FunctionName,
		})
	}
	return view
}

// renderStructured writes v as json or yaml.
func renderStructured(out io.Writer, format string, v any) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		data, err := sigsyaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// renderUserTemplate renders each item through a user-supplied Go template
// with the sprig function set, one line per item.
func renderUserTemplate[T any](out io.Writer, format string, items []T) error {
	tmpl, err := template.New("format").Funcs(sprig.FuncMap()).Parse(format)
	if err != nil {
		return fmt.Errorf("parse format template: %w", err)
	}
	for _, item := range items {
		if err := tmpl.Execute(out, item); err != nil {
			return fmt.Errorf("render format template: %w", err)
		}
		fmt.Fprintln(out)
	}
	return nil
}
