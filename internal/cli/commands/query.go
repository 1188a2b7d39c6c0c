package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/schemaforge/forge/pkg/query"
	"github.com/schemaforge/forge/pkg/surql"
)

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	var (
		schemaName string
		queryFile  string
		withCount  bool
	)

	cmd := &cobra.Command{
		Use:   "query <schema-file>",
		Short: "Compile a query against a schema to SurrealQL",
		Long: `Read a query document (JSON), validate its filter against a schema
declared in the given .forge file, and print the compiled SurrealQL
statement. The query's filters are checked for unknown fields and
type mismatches before compilation.`,
		Example: `  # Compile a query from a file
  forge query schemas/crm.forge --schema Contact --query q.json

  # Read the query document from stdin
  cat q.json | forge query schemas/crm.forge --schema Contact --query -

  # Also print the counting variant
  forge query schemas/crm.forge --schema Contact --query q.json --count`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], schemaName, queryFile, withCount)
		},
	}

	cmd.Flags().StringVarP(&schemaName, "schema", "s", "", "Schema name to query (required)")
	cmd.Flags().StringVarP(&queryFile, "query", "q", "", "Query document file, or - for stdin (required)")
	cmd.Flags().BoolVar(&withCount, "count", false, "Also print the counting statement")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}

func readQueryDocument(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func runQuery(cmd *cobra.Command, schemaPath, schemaName, queryFile string, withCount bool) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	schemas, err := parseSchemaFile(schemaPath)
	if err != nil {
		return err
	}
	target, err := findSchema(schemas, schemaName)
	if err != nil {
		return fmt.Errorf("%s: %w", schemaPath, err)
	}

	doc, err := readQueryDocument(cmd, queryFile)
	if err != nil {
		return err
	}
	var q query.Query
	if err := json.Unmarshal(doc, &q); err != nil {
		return fmt.Errorf("invalid query document: %w", err)
	}

	// The document's schema id refers to a different parse; rebind to
	// the schema resolved by name.
	q.Schema = target.ID

	if err := q.Validate(); err != nil {
		return err
	}
	if q.Filter != nil {
		if err := query.ValidateFilter(q.Filter, target); err != nil {
			return fmt.Errorf("query does not match schema '%s':\n%w", target.Name, err)
		}
	}

	r.Println(surql.CompileQuery(q, target.Name.String()))
	if withCount {
		r.Println(surql.CompileCount(q, target.Name.String()))
	}
	return nil
}
