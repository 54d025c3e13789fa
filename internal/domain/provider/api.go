// Where: internal/domain/provider/api.go
// What: Api aggregate of routes, CORS policy, and binary media types.
// Why: Collect everything an API-serving frontend needs per deployed API.
package provider

import (
	"sort"

	"github.com/mitchellh/hashstructure/v2"
)

// Route binds an HTTP path and method to the function that serves it.
type Route struct {
	Path         string
	Method       string
	FunctionName string
}

// Api aggregates the routes of one API resource plus its serving
// configuration. A template backend constructs it, keeps merging routes in
// while parsing, and hands it off read-only afterwards. It is not safe for
// concurrent mutation.
type Api struct {
	// Routes lists the path+method bindings merged into this API.
	Routes []Route

	// Cors, when set, makes the server answer OPTIONS preflight requests on
	// every route with the corresponding headers. At most one per Api.
	Cors *Cors

	// StageName and StageVariables are deployment-stage metadata passed
	// through to the server. Both are excluded from Hash and Equal.
	StageName      string
	StageVariables map[string]string

	binaryMediaTypes map[string]struct{}
}

// NewApi builds an Api over the given routes.
func NewApi(routes ...Route) *Api {
	return &Api{Routes: routes}
}

// AddRoute appends a route binding.
func (a *Api) AddRoute(route Route) {
	a.Routes = append(a.Routes, route)
}

// AddBinaryMediaType records a media type the API serves as binary. Adding a
// type twice is a no-op.
func (a *Api) AddBinaryMediaType(mediaType string) {
	if mediaType == "" {
		return
	}
	if a.binaryMediaTypes == nil {
		a.binaryMediaTypes = map[string]struct{}{}
	}
	a.binaryMediaTypes[mediaType] = struct{}{}
}

// BinaryMediaTypes returns the recorded media types as a sorted slice.
func (a *Api) BinaryMediaTypes() []string {
	if len(a.binaryMediaTypes) == 0 {
		return nil
	}
	types := make([]string, 0, len(a.binaryMediaTypes))
	for mediaType := range a.binaryMediaTypes {
		types = append(types, mediaType)
	}
	sort.Strings(types)
	return types
}

// apiIdentity is the hashed view of an Api: stage metadata stays out.
type apiIdentity struct {
	Routes           []Route
	Cors             *Cors
	BinaryMediaTypes []string
}

// Hash derives a structural hash over routes, CORS policy, and binary media
// types. It is recomputed on every call so in-place mutation is reflected.
func (a *Api) Hash() (uint64, error) {
	return hashstructure.Hash(apiIdentity{
		Routes:           a.Routes,
		Cors:             a.Cors,
		BinaryMediaTypes: a.BinaryMediaTypes(),
	}, hashstructure.FormatV2, nil)
}

// Equal compares two Apis by their derived hash, deliberately ignoring
// StageName and StageVariables.
func (a *Api) Equal(other *Api) bool {
	if a == nil || other == nil {
		return a == other
	}
	left, err := a.Hash()
	if err != nil {
		return false
	}
	right, err := other.Hash()
	if err != nil {
		return false
	}
	return left == right
}
