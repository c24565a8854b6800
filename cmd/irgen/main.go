package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-irgen/internal/cli"
	"github.com/goliatone/go-irgen/pkg/generator"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		cli.Failureln(err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		includeDirs []string
		definitions []string
		extras      []string
		verbose     bool
	)

	rootCmd := &cobra.Command{
		Use:           "irgen [flags] specfile templatefile",
		Short:         "Generate code and documentation from IR node specifications",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli.Verbose = verbose
			var options []generator.Option
			if verbose {
				slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
				options = append(options, generator.WithStderr(cmd.ErrOrStderr()))
			}

			cfg := generator.Config{
				SpecFile:    args[0],
				Template:    args[1],
				IncludeDirs: includeDirs,
				Extras:      extras,
			}
			for _, raw := range definitions {
				cfg.Definitions = append(cfg.Definitions, generator.ParseDefinition(raw))
			}

			cli.Verboseln("rendering " + cfg.Template + " from " + cfg.SpecFile)

			out, err := generator.New(options...).Generate(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			// The rendered blob is the only thing ever written to stdout.
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	rootCmd.Flags().StringArrayVarP(&includeDirs, "include", "I", nil,
		"directory searched for templates and units (repeatable)")
	rootCmd.Flags().StringArrayVarP(&definitions, "define", "D", nil,
		"definition NAME=VALUE exported to the template (repeatable)")
	rootCmd.Flags().StringArrayVarP(&extras, "extra", "e", nil,
		"extra specification unit loaded after the main one (repeatable)")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "print progress to stderr")

	return rootCmd
}
