package static

import (
	_ "embed"
)

//go:embed sample_config.toml
var sampleConfig []byte

// SampleConfig returns a commented configuration file holding the defaults.
func SampleConfig() []byte {
	out := make([]byte, len(sampleConfig))
	copy(out, sampleConfig)
	return out
}
