package cli

import (
	"github.com/spf13/cobra"

	paramq "github.com/SimonDaKappa/go-paramq"
)

// CheckResult is the payload of the check command.
type CheckResult struct {
	Valid  bool     `json:"valid" yaml:"valid"`
	Params []string `json:"params" yaml:"params"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <schema>",
		Short: "Validate a schema without parsing any input",
		Long: `Decode a YAML schema and check every declared parameter: the kind
must be registered, array item types must resolve, patterns must compile and
operators must be known.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(rootOpts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	schema, err := loadSchema(formatter, path)
	if err != nil {
		return err
	}
	rootOpts.logger().Debug("schema checked", "path", path, "params", len(schema.Params))
	return formatter.Success(CheckResult{Valid: true, Params: paramNames(schema)})
}

func paramNames(schema *paramq.Schema) []string {
	names := make([]string, 0, len(schema.Params))
	for _, p := range schema.Params {
		names = append(names, p.Name)
	}
	return names
}
