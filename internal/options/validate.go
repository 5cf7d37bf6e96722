// Package options provides shared utilities for option validation across packages.
package options

import (
	"strings"

	"github.com/erraggy/oasclientgen/oaserrors"
)

// Source names one input option and whether the caller set it.
type Source struct {
	Option string
	Set    bool
}

// ExactlyOne returns a *oaserrors.ConfigError unless exactly one of sources
// is set. pkg prefixes the message (e.g., "parser").
func ExactlyOne(pkg string, sources ...Source) error {
	var set, names []string
	for _, s := range sources {
		names = append(names, s.Option)
		if s.Set {
			set = append(set, s.Option)
		}
	}

	switch len(set) {
	case 1:
		return nil
	case 0:
		return &oaserrors.ConfigError{
			Option:  "input",
			Message: pkg + ": must specify an input source (use " + strings.Join(names, " or ") + ")",
		}
	default:
		return &oaserrors.ConfigError{
			Option:  "input",
			Value:   strings.Join(set, ", "),
			Message: pkg + ": must specify exactly one input source",
		}
	}
}
