// Where: internal/domain/provider/layer_test.go
// What: Unit tests for LayerVersion identity computation.
// Why: The name doubles as a cache key; lock the algorithm down.
package provider

import (
	"errors"
	"strings"
	"testing"
)

func TestNewLayerVersionPublished(t *testing.T) {
	arn := "arn:aws:lambda:us-east-1:123456789012:layer:mylayer:4"

	layer, err := NewLayerVersion(arn, "")
	if err != nil {
		t.Fatalf("NewLayerVersion error: %v", err)
	}
	if layer.DefinedWithinTemplate() {
		t.Fatal("published layer reported as defined within template")
	}
	if layer.Version() == nil || *layer.Version() != 4 {
		t.Fatalf("version unexpected: %v", layer.Version())
	}
	if !strings.HasPrefix(layer.Name(), "mylayer-4-") {
		t.Fatalf("name prefix unexpected: %q", layer.Name())
	}
	suffix := strings.TrimPrefix(layer.Name(), "mylayer-4-")
	if len(suffix) != 10 {
		t.Fatalf("hash suffix length unexpected: %q", suffix)
	}
	for _, r := range suffix {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Fatalf("hash suffix not lowercase hex: %q", suffix)
		}
	}
	if layer.ARN() != arn {
		t.Fatalf("arn unexpected: %q", layer.ARN())
	}
}

func TestLayerVersionNameIsDeterministic(t *testing.T) {
	arn := "arn:aws:lambda:us-east-1:123456789012:layer:mylayer:4"

	first, err := NewLayerVersion(arn, "")
	if err != nil {
		t.Fatalf("first construction error: %v", err)
	}
	second, err := NewLayerVersion(arn, "")
	if err != nil {
		t.Fatalf("second construction error: %v", err)
	}
	if first.Name() != second.Name() {
		t.Fatalf("names differ: %q vs %q", first.Name(), second.Name())
	}
}

func TestLayerVersionNameDisambiguatesAccounts(t *testing.T) {
	left, err := NewLayerVersion("arn:aws:lambda:us-east-1:111111111111:layer:shared:1", "")
	if err != nil {
		t.Fatalf("left construction error: %v", err)
	}
	right, err := NewLayerVersion("arn:aws:lambda:us-west-2:222222222222:layer:shared:1", "")
	if err != nil {
		t.Fatalf("right construction error: %v", err)
	}

	if !strings.HasPrefix(left.Name(), "shared-1-") || !strings.HasPrefix(right.Name(), "shared-1-") {
		t.Fatalf("name prefixes unexpected: %q, %q", left.Name(), right.Name())
	}
	if left.Name() == right.Name() {
		t.Fatalf("distinct ARNs produced the same name: %q", left.Name())
	}
}

func TestNewLayerVersionDefinedWithinTemplate(t *testing.T) {
	layer, err := NewLayerVersion("CommonLayer", "layers/common/")
	if err != nil {
		t.Fatalf("NewLayerVersion error: %v", err)
	}
	if !layer.DefinedWithinTemplate() {
		t.Fatal("expected template-local layer")
	}
	if layer.Version() != nil {
		t.Fatalf("local layer version should be nil, got %v", *layer.Version())
	}
	if layer.Name() != "CommonLayer" {
		t.Fatalf("local layer name should be the logical id, got %q", layer.Name())
	}
	if layer.CodeURI() != "layers/common/" {
		t.Fatalf("codeURI unexpected: %q", layer.CodeURI())
	}
}

func TestLayerVersionLayerARN(t *testing.T) {
	layer, err := NewLayerVersion("arn:aws:lambda:us-east-1:123:layer:mylayer:4", "")
	if err != nil {
		t.Fatalf("NewLayerVersion error: %v", err)
	}
	if layer.LayerARN() != "arn:aws:lambda:us-east-1:123:layer:mylayer" {
		t.Fatalf("layer arn unexpected: %q", layer.LayerARN())
	}
}

func TestNewLayerVersionRejectsNonString(t *testing.T) {
	_, err := NewLayerVersion(123, "")
	if err == nil {
		t.Fatal("expected error for non-string arn")
	}
	var unsupported *UnsupportedIntrinsicError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedIntrinsicError, got %T", err)
	}

	_, err = NewLayerVersion(map[string]any{"Fn::GetAtt": []any{"Layer", "Arn"}}, "")
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedIntrinsicError for intrinsic node, got %T", err)
	}
}

func TestNewLayerVersionRejectsMalformedARN(t *testing.T) {
	cases := []string{
		"not-an-arn",
		"arn:aws:lambda:us-east-1:123:layer:mylayer:latest",
		"mylayer:4",
	}
	for _, arn := range cases {
		_, err := NewLayerVersion(arn, "")
		if err == nil {
			t.Fatalf("expected error for %q", arn)
		}
		var invalid *InvalidLayerVersionARNError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidLayerVersionARNError for %q, got %T", arn, err)
		}
		if !strings.Contains(err.Error(), arn) {
			t.Fatalf("error should include the offending arn, got %q", err.Error())
		}
	}
}

func TestLayerVersionEquality(t *testing.T) {
	arn := "arn:aws:lambda:us-east-1:123:layer:mylayer:4"

	left, err := NewLayerVersion(arn, "")
	if err != nil {
		t.Fatalf("left construction error: %v", err)
	}
	right, err := NewLayerVersion(arn, "")
	if err != nil {
		t.Fatalf("right construction error: %v", err)
	}
	if !left.Equal(right) {
		t.Fatal("identically constructed layers should be equal")
	}

	// Back-filling codeURI breaks equality on purpose; Name stays the
	// identity that survives mutation.
	right.SetCodeURI("/tmp/layers/mylayer")
	if left.Equal(right) {
		t.Fatal("layers should differ after codeURI back-fill")
	}
	if left.Name() != right.Name() {
		t.Fatal("names should still match after codeURI back-fill")
	}
}
