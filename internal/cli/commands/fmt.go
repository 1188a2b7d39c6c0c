package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schemaforge/forge/pkg/dsl"
)

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	var (
		write bool
		check bool
	)

	cmd := &cobra.Command{
		Use:   "fmt <file...>",
		Short: "Format schema files canonically",
		Long: `Reprint .forge schema files in canonical form: four-space field
indentation, normalized spacing and annotation order. Formatting a
canonical file is a no-op.`,
		Example: `  # Print the canonical form to stdout
  forge fmt schemas/crm.forge

  # Rewrite files in place
  forge fmt --write schemas/*.forge

  # Fail if any file is not canonical (for CI)
  forge fmt --check schemas/*.forge`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, write, check)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite files in place")
	cmd.Flags().BoolVar(&check, "check", false, "Exit non-zero if any file is not canonical")
	return cmd
}

func runFmt(cmd *cobra.Command, paths []string, write, check bool) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	var unformatted []string
	for _, path := range paths {
		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		schemas, err := dsl.Parse(string(source))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		canonical := dsl.PrintAll(schemas)

		switch {
		case check:
			if canonical != string(source) {
				unformatted = append(unformatted, path)
			}
		case write:
			if canonical != string(source) {
				if err := os.WriteFile(path, []byte(canonical), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				r.Printf("formatted %s\n", path)
			}
		default:
			r.Printf("%s", canonical)
		}
	}

	if len(unformatted) > 0 {
		for _, path := range unformatted {
			r.Errorf("not formatted: %s\n", path)
		}
		return fmt.Errorf("%d file(s) not canonically formatted", len(unformatted))
	}
	return nil
}
