package cli

import (
	"bytes"
	_ "embed"
)

//go:embed default_config.yaml
var embeddedDefaultConfigurationContent []byte

// EmbeddedDefaultConfiguration returns a copy of the built-in configuration and its format.
// It is merged before any configuration file or environment override.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return bytes.Clone(embeddedDefaultConfigurationContent), configurationTypeConstant
}
