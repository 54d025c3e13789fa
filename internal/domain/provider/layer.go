// Where: internal/domain/provider/layer.go
// What: LayerVersion identity value type.
// Why: Give published and template-local layers one stable identity scheme.
package provider

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// layerNameDelimiter joins the name, version, and hash segments of a
// published layer identity.
const layerNameDelimiter = "-"

// LayerVersion identifies a Lambda layer referenced by a function. The
// reference is either a full ARN of a published layer version or the logical
// id of a layer resource defined in the same template.
//
// Name and Version are computed once at construction and never recomputed.
// The name doubles as the on-disk cache key for extracted layer contents, so
// the computation must stay stable across runs.
type LayerVersion struct {
	arn                   string
	codeURI               string
	definedWithinTemplate bool
	name                  string
	version               *int
}

// NewLayerVersion builds a LayerVersion from a layer reference.
//
// The arn argument is any because template parsing can hand over an intrinsic
// node it failed to resolve; everything except a plain string fails with
// UnsupportedIntrinsicError before any parsing happens.
//
// A non-empty codeURI marks the layer as defined within the template. In that
// case arn carries the logical id and is used as the name verbatim. Otherwise
// arn must be a published layer version ARN, `...:layer:<name>:<version>`.
func NewLayerVersion(arn any, codeURI string) (*LayerVersion, error) {
	arnStr, ok := arn.(string)
	if !ok {
		return nil, &UnsupportedIntrinsicError{Value: arn}
	}

	layer := &LayerVersion{
		arn:                   arnStr,
		codeURI:               codeURI,
		definedWithinTemplate: codeURI != "",
	}

	name, version, err := computeLayerIdentity(arnStr, layer.definedWithinTemplate)
	if err != nil {
		return nil, err
	}
	layer.name = name
	layer.version = version
	return layer, nil
}

// computeLayerIdentity derives the stable (name, version) pair.
//
// Published layers get `<layer-name>-<version>-<10 hex chars of sha256(arn)>`.
// The hash suffix disambiguates layers whose ARNs differ only in segments the
// name itself does not carry (account, region).
func computeLayerIdentity(arn string, definedWithinTemplate bool) (string, *int, error) {
	if definedWithinTemplate {
		return arn, nil, nil
	}

	versionIdx := strings.LastIndex(arn, ":")
	if versionIdx < 0 {
		return "", nil, &InvalidLayerVersionARNError{ARN: arn}
	}
	versionStr := arn[versionIdx+1:]
	version, err := strconv.Atoi(versionStr)
	if err != nil {
		return "", nil, &InvalidLayerVersionARNError{ARN: arn}
	}

	nameIdx := strings.LastIndex(arn[:versionIdx], ":")
	if nameIdx < 0 {
		return "", nil, &InvalidLayerVersionARNError{ARN: arn}
	}
	layerName := arn[nameIdx+1 : versionIdx]

	sum := sha256.Sum256([]byte(arn))
	suffix := hex.EncodeToString(sum[:])[:10]

	name := strings.Join([]string{layerName, versionStr, suffix}, layerNameDelimiter)
	return name, &version, nil
}

// ARN returns the raw reference: a published layer version ARN or a logical id.
func (l *LayerVersion) ARN() string {
	return l.arn
}

// Name returns the stable unique name of the layer.
func (l *LayerVersion) Name() string {
	return l.name
}

// Version returns the published layer version, or nil for layers defined
// within the template.
func (l *LayerVersion) Version() *int {
	return l.version
}

// CodeURI returns the local path to the layer contents, empty when not set.
func (l *LayerVersion) CodeURI() string {
	return l.codeURI
}

// SetCodeURI back-fills the layer contents path after the full template has
// been parsed or after the artifact has been fetched. It does not change the
// identity computed at construction.
func (l *LayerVersion) SetCodeURI(codeURI string) {
	l.codeURI = codeURI
}

// DefinedWithinTemplate reports whether the layer is a template-local
// resource rather than a published layer version.
func (l *LayerVersion) DefinedWithinTemplate() bool {
	return l.definedWithinTemplate
}

// LayerARN returns the ARN with the trailing version segment stripped. Only
// meaningful for published layers.
func (l *LayerVersion) LayerARN() string {
	idx := strings.LastIndex(l.arn, ":")
	if idx < 0 {
		return l.arn
	}
	return l.arn[:idx]
}

// Equal reports structural equality over every field, codeURI included.
// Because codeURI is settable after construction, two references to the same
// published layer can compare unequal once one of them is back-filled; use
// Name for identity that survives back-filling.
func (l *LayerVersion) Equal(other *LayerVersion) bool {
	if l == nil || other == nil {
		return l == other
	}
	if (l.version == nil) != (other.version == nil) {
		return false
	}
	if l.version != nil && *l.version != *other.version {
		return false
	}
	return l.arn == other.arn &&
		l.codeURI == other.codeURI &&
		l.definedWithinTemplate == other.definedWithinTemplate &&
		l.name == other.name
}
