package config

import (
	"fmt"

	"github.com/schemaforge/forge/internal/cli/output"
)

// Validate checks that the resolved configuration is usable.
func (c *Config) Validate() error {
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.SchemaDir == "" {
		return fmt.Errorf("invalid config: schema_dir must not be empty")
	}
	return nil
}
