// Where: internal/infra/sam/warnings.go
// What: Deduplicating warning collector for template parsing.
// Why: Parsers report diagnostics without writing to stdout themselves.
package sam

import "fmt"

type warningCollector struct {
	warnings []string
	seen     map[string]struct{}
}

func newWarningCollector() *warningCollector {
	return &warningCollector{seen: map[string]struct{}{}}
}

func (c *warningCollector) warnf(format string, args ...any) {
	if c == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if _, dup := c.seen[msg]; dup {
		return
	}
	c.seen[msg] = struct{}{}
	c.warnings = append(c.warnings, msg)
}

func (c *warningCollector) list() []string {
	if c == nil || len(c.warnings) == 0 {
		return nil
	}
	out := make([]string, len(c.warnings))
	copy(out, c.warnings)
	return out
}
