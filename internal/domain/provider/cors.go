// Where: internal/domain/provider/cors.go
// What: CORS policy value type and its header mapping.
// Why: Hand API-serving infrastructure ready-to-emit response headers.
package provider

// Cors holds the CORS policy attached to an Api. Every field is optional; an
// empty string means the dimension is not enforced.
type Cors struct {
	AllowOrigin  string
	AllowMethods string
	AllowHeaders string
	MaxAge       string
}

// Headers maps the present fields to their fixed HTTP response header names.
// Absent fields are omitted entirely rather than emitted empty, because
// downstream HTTP layers reject null header values. A nil Cors yields an
// empty mapping.
func (c *Cors) Headers() map[string]string {
	headers := map[string]string{}
	if c == nil {
		return headers
	}
	if c.AllowOrigin != "" {
		headers["Access-Control-Allow-Origin"] = c.AllowOrigin
	}
	if c.AllowMethods != "" {
		headers["Access-Control-Allow-Methods"] = c.AllowMethods
	}
	if c.AllowHeaders != "" {
		headers["Access-Control-Allow-Headers"] = c.AllowHeaders
	}
	if c.MaxAge != "" {
		headers["Access-Control-Max-Age"] = c.MaxAge
	}
	return headers
}
