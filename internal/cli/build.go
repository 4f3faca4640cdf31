package cli

import (
	"github.com/spf13/cobra"

	paramq "github.com/SimonDaKappa/go-paramq"
)

// BuildOptions holds the flags of the build command.
type BuildOptions struct {
	InputOptions
	Dialect string
	Data    bool // parse into a plain map instead of a query
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render parameters as a query for a dialect",
		Long: `Parse the parameters given with --input and --query against a schema
and print the resulting query descriptor for the chosen dialect.

With --data the schema params are collected into a plain map instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(rootOpts, opts, cmd)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.Dialect, "dialect", "d", rootOpts.defaults().Dialect, "query dialect (mongoose|sequelize)")
	cmd.Flags().BoolVar(&opts.Data, "data", false, "output the parsed parameters as a plain map")

	return cmd
}

func runBuild(rootOpts *RootOptions, opts *BuildOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)
	logger := rootOpts.logger()

	schema, err := loadSchema(formatter, opts.Schema)
	if err != nil {
		return err
	}
	source, err := loadSource(formatter, cmd, &opts.InputOptions)
	if err != nil {
		return err
	}
	procOpts := paramq.ProcessorOpts{Logger: logger}

	if opts.Data {
		db := paramq.NewDataBuilder(source, nil, procOpts)
		if err := schema.ApplyData(db); err != nil {
			return formatter.fail(ErrCodeGeneric, "cannot parse parameters", err)
		}
		return formatter.Success(db.Build())
	}

	qb := paramq.NewQueryBuilder(source, nil, procOpts)
	if err := schema.Apply(qb); err != nil {
		return formatter.fail(ErrCodeGeneric, "cannot parse parameters", err)
	}
	query, err := qb.Build(opts.Dialect)
	if err != nil {
		return formatter.fail(ErrCodeGeneric, "cannot build query", err)
	}
	logger.Info("query rendered", "dialect", opts.Dialect, "filters", len(query.Filter))
	return formatter.Success(query)
}
