// Where: internal/infra/sam/template_layers.go
// What: Layer resource extraction and reference resolution.
// Why: Function layer lists mix template-local logical ids and published ARNs.
package sam

import (
	"github.com/samscope/samscope/internal/domain/provider"
	"github.com/samscope/samscope/internal/domain/value"
)

// layerIndex maps the logical id of every AWS::Serverless::LayerVersion
// resource to its ContentUri.
type layerIndex map[string]string

func parseLayerResources(resources map[string]any) layerIndex {
	index := layerIndex{}
	for logicalID, raw := range resources {
		resource := value.AsMap(raw)
		if resource == nil {
			continue
		}
		resourceType := value.AsString(resource["Type"])
		if resourceType != "AWS::Serverless::LayerVersion" && resourceType != "AWS::Lambda::LayerVersion" {
			continue
		}
		props := value.AsMap(resource["Properties"])
		index[logicalID] = layerContentURI(props)
	}
	return index
}

func layerContentURI(props map[string]any) string {
	if props == nil {
		return ""
	}
	uri := parseCodeURI(props["ContentUri"])
	if uri.IsZero() {
		// The raw CloudFormation form nests an S3 object under Content.
		if content := value.AsMap(props["Content"]); content != nil {
			bucket := value.AsString(content["S3Bucket"])
			key := value.AsString(content["S3Key"])
			if bucket != "" && key != "" {
				uri = provider.CodeURI{S3: &provider.S3Location{
					Bucket:  bucket,
					Key:     key,
					Version: value.AsString(content["S3ObjectVersion"]),
				}}
			}
		}
	}
	if uri.S3 != nil {
		return uri.String()
	}
	return value.EnsureTrailingSlash(uri.Path)
}

// resolve turns one entry of a function's Layers list into a LayerVersion.
// Logical ids of template resources become template-local layers; strings
// that are not known logical ids must be published layer version ARNs.
// Anything that is not a string is an intrinsic the resolver could not
// evaluate and fails construction.
func (idx layerIndex) resolve(ref any) (*provider.LayerVersion, error) {
	name, ok := ref.(string)
	if !ok {
		return provider.NewLayerVersion(ref, "")
	}
	if contentURI, found := idx[name]; found {
		if contentURI == "" {
			// Local layer without contents yet; the artifact fetch
			// back-fills the path via SetCodeURI.
			contentURI = "./"
		}
		return provider.NewLayerVersion(name, contentURI)
	}
	return provider.NewLayerVersion(name, "")
}
