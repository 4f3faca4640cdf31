package cli

import (
	"github.com/spf13/cobra"

	paramq "github.com/SimonDaKappa/go-paramq"
)

// SQLResult is the payload of the sql command.
type SQLResult struct {
	SQL  string `json:"sql" yaml:"sql"`
	Args []any  `json:"args" yaml:"args"`
}

// SQLOptions holds the flags of the sql command.
type SQLOptions struct {
	InputOptions
	Table string
}

// NewSQLCommand creates the sql command.
func NewSQLCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SQLOptions{}

	cmd := &cobra.Command{
		Use:   "sql",
		Short: "Render parameters as a parameterized SELECT",
		Long: `Parse the parameters against a schema and print the SELECT statement
with dollar placeholders together with its arguments. Nothing is executed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSQL(rootOpts, opts, cmd)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.Table, "table", "t", rootOpts.defaults().Table, "table to select from")

	return cmd
}

func runSQL(rootOpts *RootOptions, opts *SQLOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)
	logger := rootOpts.logger()

	if opts.Table == "" {
		return formatter.fail(ErrCodeConfiguration, "table is not provided", nil)
	}
	schema, err := loadSchema(formatter, opts.Schema)
	if err != nil {
		return err
	}
	source, err := loadSource(formatter, cmd, &opts.InputOptions)
	if err != nil {
		return err
	}

	qb := paramq.NewQueryBuilder(source, nil, paramq.ProcessorOpts{Logger: logger})
	if err := schema.Apply(qb); err != nil {
		return formatter.fail(ErrCodeGeneric, "cannot parse parameters", err)
	}
	sb, err := qb.SelectBuilder(opts.Table)
	if err != nil {
		return formatter.fail(ErrCodeGeneric, "cannot build statement", err)
	}
	stmt, args, err := sb.ToSql()
	if err != nil {
		return formatter.fail(ErrCodeGeneric, "cannot build statement", err)
	}
	logger.Info("statement rendered", "table", opts.Table, "args", len(args))
	if args == nil {
		args = []any{}
	}
	return formatter.Success(SQLResult{SQL: stmt, Args: args})
}
