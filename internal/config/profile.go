package config

import (
	"fmt"

	"github.com/Faultbox/neuraterra/pkg/formats"
)

// ParseProfile converts the configured profile name to its formats
// identifier. Unknown names are configuration errors.
func (e EngineConfig) ParseProfile() (formats.Profile, error) {
	switch e.Profile {
	case "encoded":
		return formats.ProfileEncoded, nil
	case "raw":
		return formats.ProfileRaw, nil
	default:
		return 0, fmt.Errorf("unknown network profile %q (want \"encoded\" or \"raw\")", e.Profile)
	}
}
