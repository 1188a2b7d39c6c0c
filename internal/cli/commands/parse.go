package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/schemaforge/forge/internal/cli/output"
	"github.com/schemaforge/forge/pkg/schema"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file...>",
		Short: "Parse and validate schema files",
		Long: `Parse one or more .forge schema files and report the schemas they
declare. Parsing continues past the first error within a file, so all
problems are reported in one run.`,
		Example: `  # Validate a single file
  forge parse schemas/crm.forge

  # Validate several files, machine-readable
  forge parse schemas/*.forge --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args)
		},
	}
}

type parsedFile struct {
	Path    string                    `json:"path"`
	Schemas []schema.SchemaDefinition `json:"schemas"`
}

func runParse(cmd *cobra.Command, paths []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	var files []parsedFile
	for _, path := range paths {
		schemas, err := parseSchemaFile(path)
		if err != nil {
			return err
		}
		files = append(files, parsedFile{Path: path, Schemas: schemas})
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(files)
	case output.ModeTable:
		header := []string{"FILE", "SCHEMA", "VERSION", "FIELDS"}
		var rows [][]string
		for _, f := range files {
			for _, s := range f.Schemas {
				rows = append(rows, []string{
					f.Path,
					s.Name.String(),
					s.Version().String(),
					strconv.Itoa(len(s.Fields)),
				})
			}
		}
		r.Table(header, rows)
	default:
		for _, f := range files {
			word := "schemas"
			if len(f.Schemas) == 1 {
				word = "schema"
			}
			r.Printf("%s: %d %s\n", f.Path, len(f.Schemas), word)
			for _, s := range f.Schemas {
				r.Printf("  %s\n", s)
			}
		}
	}

	total := 0
	for _, f := range files {
		total += len(f.Schemas)
	}
	cmdCtx.Logger.Debug("parse completed", "files", len(files), "schemas", total)
	return nil
}
