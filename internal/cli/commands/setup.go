// Package commands implements the forge subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/schemaforge/forge/internal/cli/config"
	"github.com/schemaforge/forge/internal/cli/output"
	"github.com/schemaforge/forge/pkg/dsl"
	"github.com/schemaforge/forge/pkg/schema"
)

// CommandContext carries the shared dependencies of a command run.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds the context for a command invocation.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	mode, err := output.ParseMode(cfg.OutputFormat)
	if err != nil {
		mode = output.ModeAuto
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration, falling back to
// defaults when no configuration has been loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		SchemaDir:    config.DefaultSchemaDir,
		OutputFormat: config.DefaultOutput,
	}
}

// parseSchemaFile reads and parses one .forge file.
func parseSchemaFile(path string) ([]schema.SchemaDefinition, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	schemas, err := dsl.Parse(string(source))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return schemas, nil
}

// findSchema returns the schema with the given name from a parsed
// file.
func findSchema(schemas []schema.SchemaDefinition, name string) (schema.SchemaDefinition, error) {
	for _, s := range schemas {
		if s.Name.String() == name {
			return s, nil
		}
	}
	return schema.SchemaDefinition{}, fmt.Errorf("schema '%s' not found", name)
}
