package cli

import (
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	paramq "github.com/SimonDaKappa/go-paramq"
)

// InputOptions are the flags shared by the commands that parse input.
type InputOptions struct {
	Schema string // path to the YAML schema
	Input  string // path to a JSON object, "-" for stdin
	Query  string // URL query string, applied over Input
}

func (o *InputOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Schema, "schema", "s", "", "YAML schema file (required)")
	cmd.Flags().StringVarP(&o.Input, "input", "i", "", `JSON object holding the parameters ("-" reads stdin)`)
	cmd.Flags().StringVarP(&o.Query, "query", "q", "", "URL query string holding the parameters")
	_ = cmd.MarkFlagRequired("schema")
}

// loadSchema reads and validates the schema file.
func loadSchema(f *OutputFormatter, path string) (*paramq.Schema, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, f.fail(ErrCodeReadFailed, "cannot read schema", err)
	}
	defer file.Close()

	schema, err := paramq.LoadSchema(file)
	if err != nil {
		return nil, f.fail(ErrCodeInvalidSchema, "invalid schema", err)
	}
	return schema, nil
}

// loadSource merges the JSON input and the query string into one source
// map. Query parameters win on clashes.
func loadSource(f *OutputFormatter, cmd *cobra.Command, opts *InputOptions) (map[string]any, error) {
	source := map[string]any{}

	if opts.Input != "" {
		data, err := readInput(cmd, opts.Input)
		if err != nil {
			return nil, f.fail(ErrCodeReadFailed, "cannot read input", err)
		}
		fromJSON, err := paramq.SourceFromJSON(data)
		if err != nil {
			return nil, f.fail(ErrCodeInvalidInput, "invalid input", err)
		}
		for k, v := range fromJSON {
			source[k] = v
		}
	}

	if opts.Query != "" {
		values, err := url.ParseQuery(opts.Query)
		if err != nil {
			return nil, f.fail(ErrCodeInvalidInput, "invalid query string", err)
		}
		for k, v := range paramq.SourceFromValues(values) {
			source[k] = v
		}
	}
	return source, nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func newFormatter(rootOpts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format: rootOpts.Format,
		Writer: cmd.OutOrStdout(),
	}
}
