package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export parsed schemas as JSON or YAML",
		Long: `Parse a .forge schema file and emit its schemas in a structured
wire format. The JSON form round-trips through the parser's validated
types; YAML is derived from the same structure.`,
		Example: `  # Export as JSON
  forge export schemas/crm.forge

  # Export as YAML
  forge export schemas/crm.forge --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format (json|yaml)")
	return cmd
}

func runExport(cmd *cobra.Command, path, format string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	schemas, err := parseSchemaFile(path)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return r.JSON(schemas)
	case "yaml", "yml":
		// Route through the JSON encoding so the YAML mirrors the
		// validated wire form exactly.
		data, err := json.Marshal(schemas)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		out, err := yaml.Marshal(generic)
		if err != nil {
			return err
		}
		r.Printf("%s", out)
		return nil
	default:
		return fmt.Errorf("unknown export format %q (valid: json, yaml)", format)
	}
}
