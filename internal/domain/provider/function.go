// Where: internal/domain/provider/function.go
// What: Function record and its code location type.
// Why: Carry everything a local runtime needs to invoke a template function.
package provider

import "fmt"

// S3Location is a structured code reference to an object in S3.
type S3Location struct {
	Bucket  string
	Key     string
	Version string
}

// CodeURI points at function or layer code. At most one of Path and S3 is
// set: Path holds a local directory, archive path, or remote URI string; S3
// holds the structured {Bucket, Key, Version} form some templates use.
type CodeURI struct {
	Path string
	S3   *S3Location
}

// IsZero reports whether no code location is set.
func (c CodeURI) IsZero() bool {
	return c.Path == "" && c.S3 == nil
}

// String renders the location for display and diagnostics.
func (c CodeURI) String() string {
	if c.S3 != nil {
		uri := fmt.Sprintf("s3://%s/%s", c.S3.Bucket, c.S3.Key)
		if c.S3.Version != "" {
			uri += "?versionId=" + c.S3.Version
		}
		return uri
	}
	return c.Path
}

// Function is an immutable record of one function extracted from a template.
// Construct it fully and treat it as read-only afterwards; it is then safe to
// share across goroutines.
type Function struct {
	// Name is the unique logical identifier within a template.
	Name string

	// Runtime is the language/runtime tag, passed through opaquely.
	Runtime string

	// Memory is the memory limit in MB.
	Memory int

	// Timeout is the invocation timeout in seconds.
	Timeout int

	// Handler names the code entry point.
	Handler string

	// CodeURI locates the function code.
	CodeURI CodeURI

	// Environment holds the variable mapping as the template declared it,
	// including the single "Variables" nesting level when the source format
	// uses one. It is pass-through data, not parsed here.
	Environment map[string]any

	// RoleARN is the execution role ARN, empty when the template has none.
	RoleARN string

	// Layers lists the function's layer references in template order. The
	// order is significant: it determines the merge order of extracted layer
	// contents in the execution environment.
	Layers []*LayerVersion
}
