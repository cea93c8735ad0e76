package kestrel

import (
	"os"

	jujuerrors "github.com/juju/errors"
	yaml "gopkg.in/yaml.v2"
)

// Config resolves the lexer's feature-gated behavior. The zero value is the
// default configuration, the same one DefaultConfig returns.
type Config struct {
	// EnableHexLiterals permits 0x-prefixed integer literals. Off by
	// default: they are reserved syntax without defined semantics yet.
	EnableHexLiterals bool `yaml:"enableHexLiterals"`

	// EnableOctalLiterals permits 0o-prefixed integer literals. Off by
	// default for the same reason as EnableHexLiterals.
	EnableOctalLiterals bool `yaml:"enableOctalLiterals"`

	// EnableUnicodeEscapes is read from YAML but consulted by neither the
	// lexer nor UnprocessedString.Process: a \u escape is rejected as
	// ErrUnicodeEscapeReserved whatever its value.
	EnableUnicodeEscapes bool `yaml:"enableUnicodeEscapes"`
}

// DefaultConfig returns the configuration used when a caller passes a nil
// *Config: every reserved-syntax feature stays off.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig reads a YAML configuration file from path. A field absent from
// the file keeps its DefaultConfig value (false).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, jujuerrors.Annotatef(err, "reading config file %q", path)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, jujuerrors.Annotatef(err, "parsing config file %q", path)
	}
	return cfg, nil
}
