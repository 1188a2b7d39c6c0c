package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schemaforge/forge/internal/cli/output"
	"github.com/schemaforge/forge/pkg/migrate"
	"github.com/schemaforge/forge/pkg/schema"
	"github.com/schemaforge/forge/pkg/surql"
)

// NewDiffCommand creates the diff command.
func NewDiffCommand() *cobra.Command {
	var (
		renames            []string
		confirmDestructive bool
		emitSurql          bool
	)

	cmd := &cobra.Command{
		Use:   "diff <old-file> <new-file>",
		Short: "Diff two schema files into migration plans",
		Long: `Compare two versions of a schema file and produce a migration plan
per schema. Each step is classified as safe, requires_confirmation or
destructive; the plan's overall safety is its worst step.

Field renames cannot be detected from the files alone and default to a
remove plus add. Pass --rename old=new to record an explicit rename.`,
		Example: `  # Show migration plans between two versions
  forge diff schemas/v1.forge schemas/v2.forge

  # Treat a removed/added pair as a rename
  forge diff v1.forge v2.forge --rename name=full_name

  # Emit SurrealQL DDL, acknowledging destructive steps
  forge diff v1.forge v2.forge --surql --confirm-destructive`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args[0], args[1], renames, confirmDestructive, emitSurql)
		},
	}

	cmd.Flags().StringArrayVar(&renames, "rename", nil, "Field rename hint as old=new (repeatable)")
	cmd.Flags().BoolVar(&confirmDestructive, "confirm-destructive", false, "Allow DDL generation for destructive plans")
	cmd.Flags().BoolVar(&emitSurql, "surql", false, "Emit SurrealQL DDL statements for each plan")
	return cmd
}

func parseRenames(specs []string) ([]migrate.Rename, error) {
	var out []migrate.Rename
	for _, spec := range specs {
		oldName, newName, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid rename %q: expected old=new", spec)
		}
		from, err := schema.NewFieldName(oldName)
		if err != nil {
			return nil, fmt.Errorf("invalid rename %q: %w", spec, err)
		}
		to, err := schema.NewFieldName(newName)
		if err != nil {
			return nil, fmt.Errorf("invalid rename %q: %w", spec, err)
		}
		out = append(out, migrate.Rename{OldName: from, NewName: to})
	}
	return out, nil
}

// diffPlans pairs schemas by name across both files: matched pairs are
// diffed, schemas only in the new file become creations, schemas only
// in the old file become drops.
func diffPlans(oldSchemas, newSchemas []schema.SchemaDefinition, renames []migrate.Rename) []migrate.Plan {
	oldByName := make(map[schema.SchemaName]schema.SchemaDefinition, len(oldSchemas))
	for _, s := range oldSchemas {
		oldByName[s.Name] = s
	}

	var plans []migrate.Plan
	seen := make(map[schema.SchemaName]struct{}, len(newSchemas))
	for _, next := range newSchemas {
		seen[next.Name] = struct{}{}
		if prev, ok := oldByName[next.Name]; ok {
			plans = append(plans, migrate.DiffWithRenames(prev, next, renames))
		} else {
			plans = append(plans, migrate.CreateNew(next))
		}
	}
	for _, prev := range oldSchemas {
		if _, ok := seen[prev.Name]; !ok {
			plans = append(plans, migrate.NewPlan(prev.ID, prev.Name, []migrate.Step{
				migrate.DropSchema{Name: prev.Name},
			}))
		}
	}
	return plans
}

func runDiff(cmd *cobra.Command, oldPath, newPath string, renameSpecs []string, confirmDestructive, emitSurql bool) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	renames, err := parseRenames(renameSpecs)
	if err != nil {
		return err
	}

	oldSchemas, err := parseSchemaFile(oldPath)
	if err != nil {
		return err
	}
	newSchemas, err := parseSchemaFile(newPath)
	if err != nil {
		return err
	}

	plans := diffPlans(oldSchemas, newSchemas, renames)

	if emitSurql {
		for _, plan := range plans {
			if plan.IsEmpty() {
				continue
			}
			if err := plan.Validate(confirmDestructive); err != nil {
				return fmt.Errorf("refusing to generate DDL for '%s': %w (use --confirm-destructive)", plan.SchemaName, err)
			}
			for _, stmt := range surql.PlanStatements(plan) {
				r.Println(stmt)
			}
		}
		return nil
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(plans)
	case output.ModeTable:
		header := []string{"SCHEMA", "#", "STEP", "SAFETY"}
		var rows [][]string
		for _, plan := range plans {
			for i, step := range plan.Steps {
				rows = append(rows, []string{
					plan.SchemaName.String(),
					fmt.Sprintf("%d", i+1),
					step.String(),
					step.Safety().String(),
				})
			}
		}
		r.Table(header, rows)
	default:
		for _, plan := range plans {
			if plan.IsEmpty() {
				r.Printf("No changes for '%s'\n", plan.SchemaName)
				continue
			}
			r.Printf("%s", plan)
		}
	}
	return nil
}
