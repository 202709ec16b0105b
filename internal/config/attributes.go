package config

import (
	"fmt"
	"strings"
)

// CustomAttribute is a span attribute whose value is an expression over the
// process snapshot.
type CustomAttribute struct {
	Name       string
	Expression string
}

// ParseAttributeString parses "name=expr;name2=expr2". Empty sections are
// ignored; the expression is everything after the first '='.
func ParseAttributeString(s string) ([]CustomAttribute, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var attrs []CustomAttribute
	for _, section := range strings.Split(s, ";") {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		name, expression, found := strings.Cut(section, "=")
		if !found {
			return nil, fmt.Errorf("invalid attribute format %q: expected name=expression", section)
		}
		name = strings.TrimSpace(name)
		expression = strings.TrimSpace(expression)
		if name == "" {
			return nil, fmt.Errorf("invalid attribute %q: name cannot be empty", section)
		}
		if expression == "" {
			return nil, fmt.Errorf("invalid attribute %q: expression cannot be empty", section)
		}
		attrs = append(attrs, CustomAttribute{Name: name, Expression: expression})
	}
	return attrs, nil
}
