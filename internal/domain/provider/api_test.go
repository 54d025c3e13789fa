// Where: internal/domain/provider/api_test.go
// What: Unit tests for the Api aggregate.
// Why: Hash-based equality must track routes/cors/media types and nothing else.
package provider

import "testing"

func TestApiBinaryMediaTypesSortedAndDeduplicated(t *testing.T) {
	api := NewApi()
	api.AddBinaryMediaType("image/png")
	api.AddBinaryMediaType("application/octet-stream")
	api.AddBinaryMediaType("image/png")
	api.AddBinaryMediaType("")

	types := api.BinaryMediaTypes()
	if len(types) != 2 {
		t.Fatalf("expected 2 media types, got %v", types)
	}
	if types[0] != "application/octet-stream" || types[1] != "image/png" {
		t.Fatalf("media types not sorted: %v", types)
	}
}

func TestApiEqualityIgnoresStageMetadata(t *testing.T) {
	left := NewApi(Route{Path: "/items", Method: "get", FunctionName: "ListItems"})
	right := NewApi(Route{Path: "/items", Method: "get", FunctionName: "ListItems"})
	right.StageName = "prod"
	right.StageVariables = map[string]string{"Stack": "blue"}

	if !left.Equal(right) {
		t.Fatal("stage metadata must not participate in equality")
	}
}

func TestApiEqualityTracksMutation(t *testing.T) {
	left := NewApi(Route{Path: "/items", Method: "get", FunctionName: "ListItems"})
	right := NewApi(Route{Path: "/items", Method: "get", FunctionName: "ListItems"})

	right.AddRoute(Route{Path: "/items", Method: "post", FunctionName: "CreateItem"})
	if left.Equal(right) {
		t.Fatal("added route should change equality")
	}

	left.AddRoute(Route{Path: "/items", Method: "post", FunctionName: "CreateItem"})
	if !left.Equal(right) {
		t.Fatal("same routes should restore equality")
	}

	right.Cors = &Cors{AllowOrigin: "*"}
	if left.Equal(right) {
		t.Fatal("cors should participate in equality")
	}

	left.Cors = &Cors{AllowOrigin: "*"}
	right.AddBinaryMediaType("image/png")
	if left.Equal(right) {
		t.Fatal("binary media types should participate in equality")
	}
}

func TestApiHashIsRecomputed(t *testing.T) {
	api := NewApi()
	before, err := api.Hash()
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	api.AddRoute(Route{Path: "/ping", Method: "get", FunctionName: "Ping"})
	after, err := api.Hash()
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if before == after {
		t.Fatal("hash should change after in-place mutation")
	}
}
