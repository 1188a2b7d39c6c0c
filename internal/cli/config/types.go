// Package config loads the CLI configuration by layering defaults, an
// optional forge.yaml, FORGE_* environment variables and command-line
// flags, highest last.
package config

// Default configuration values.
const (
	DefaultSchemaDir = "schemas"
	DefaultOutput    = "auto"
)

// Config is the resolved CLI configuration.
type Config struct {
	// SchemaDir is where .forge schema files live.
	SchemaDir string `koanf:"schema_dir"`
	// OutputFormat selects the renderer mode (auto, text, json, table).
	OutputFormat string `koanf:"output"`
	// Verbose enables progress output on stderr.
	Verbose bool `koanf:"verbose"`
}
