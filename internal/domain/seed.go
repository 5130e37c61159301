package domain

import "strings"

var defaultSeedNames = []string{"yes", "hi", "no", "wtf"}

// DefaultSeedNames returns a fresh copy of the built-in seed set.
func DefaultSeedNames() []string {
	out := make([]string, len(defaultSeedNames))
	copy(out, defaultSeedNames)
	return out
}

// ParseSeedNames splits a comma separated list, dropping blank entries.
// An input with no usable names yields the default seed set.
func ParseSeedNames(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return DefaultSeedNames()
	}
	return names
}
