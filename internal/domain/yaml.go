package domain

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// checkKeys rejects mapping keys outside allowed so typos in data files fail loudly.
func checkKeys(value *yaml.Node, what string, allowed ...string) error {
	if value == nil || value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		k := value.Content[i]
		if k.Kind != yaml.ScalarNode {
			continue
		}
		if !slices.Contains(allowed, k.Value) {
			return fmt.Errorf("%s: unsupported key %q (line %d)", what, k.Value, k.Line)
		}
	}
	return nil
}
