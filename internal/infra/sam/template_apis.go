// Where: internal/infra/sam/template_apis.go
// What: Api resource and implicit-route extraction.
// Why: Routes come both from explicit Api resources and from function events.
package sam

import (
	"strings"

	"github.com/samscope/samscope/internal/domain/provider"
	"github.com/samscope/samscope/internal/domain/value"
)

// parseApis builds one Api per AWS::Serverless::Api resource and a default
// Api for function Api events that do not name a RestApiId. Explicit APIs
// come first in logical-id order; the implicit default, when present, last.
func parseApis(resources map[string]any, warnf func(string, ...any)) []*provider.Api {
	explicit := map[string]*provider.Api{}
	var explicitOrder []string

	for _, logicalID := range sortedMapKeys(resources) {
		resource := value.AsMap(resources[logicalID])
		if resource == nil || value.AsString(resource["Type"]) != "AWS::Serverless::Api" {
			continue
		}
		explicit[logicalID] = parseApiResource(value.AsMap(resource["Properties"]))
		explicitOrder = append(explicitOrder, logicalID)
	}

	defaultApi := provider.NewApi()
	for _, logicalID := range sortedMapKeys(resources) {
		resource := value.AsMap(resources[logicalID])
		if resource == nil || value.AsString(resource["Type"]) != "AWS::Serverless::Function" {
			continue
		}
		props := value.AsMap(resource["Properties"])
		if props == nil {
			continue
		}
		for _, eventID := range sortedMapKeys(value.AsMap(props["Events"])) {
			event := value.AsMap(value.AsMap(props["Events"])[eventID])
			if value.AsString(event["Type"]) != "Api" {
				continue
			}
			eventProps := value.AsMap(event["Properties"])
			route, ok := parseRoute(logicalID, eventProps)
			if !ok {
				warnf("event %s on function %s is missing Path or Method", eventID, logicalID)
				continue
			}
			if restApiID := value.AsString(eventProps["RestApiId"]); restApiID != "" {
				if api, found := explicit[restApiID]; found {
					api.AddRoute(route)
					continue
				}
				warnf("event %s on function %s references unknown api %s", eventID, logicalID, restApiID)
				continue
			}
			defaultApi.AddRoute(route)
		}
	}

	apis := make([]*provider.Api, 0, len(explicitOrder)+1)
	for _, logicalID := range explicitOrder {
		apis = append(apis, explicit[logicalID])
	}
	if len(defaultApi.Routes) > 0 {
		apis = append(apis, defaultApi)
	}
	return apis
}

func parseApiResource(props map[string]any) *provider.Api {
	api := provider.NewApi()
	if props == nil {
		return api
	}

	api.StageName = value.AsString(props["StageName"])
	api.StageVariables = value.AsStringMap(props["Variables"])
	api.Cors = parseCors(props["Cors"])
	for _, raw := range value.AsSlice(props["BinaryMediaTypes"]) {
		// Swagger-escaped separators ("*~1*") mean "*/*".
		api.AddBinaryMediaType(strings.ReplaceAll(value.AsString(raw), "~1", "/"))
	}
	return api
}

// parseCors accepts both the string shorthand (an allowed origin) and the
// structured form with the four policy fields.
func parseCors(raw any) *provider.Cors {
	switch typed := raw.(type) {
	case string:
		if typed == "" {
			return nil
		}
		return &provider.Cors{AllowOrigin: typed}
	case map[string]any:
		cors := &provider.Cors{
			AllowOrigin:  value.AsString(typed["AllowOrigin"]),
			AllowMethods: value.AsString(typed["AllowMethods"]),
			AllowHeaders: value.AsString(typed["AllowHeaders"]),
			MaxAge:       value.AsString(typed["MaxAge"]),
		}
		if *cors == (provider.Cors{}) {
			return nil
		}
		return cors
	default:
		return nil
	}
}

func parseRoute(functionName string, eventProps map[string]any) (provider.Route, bool) {
	path := value.AsString(eventProps["Path"])
	method := value.AsString(eventProps["Method"])
	if path == "" || method == "" {
		return provider.Route{}, false
	}
	return provider.Route{
		Path:         path,
		Method:       strings.ToLower(method),
		FunctionName: functionName,
	}, true
}
