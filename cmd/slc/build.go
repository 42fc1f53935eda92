package main

import (
	"fmt"

	"github.com/spf13/cobra"

	compiler "slc/internal/cmd"
	"slc/internal/context"
)

func newBuildCmd() *cobra.Command {
	var debug bool
	var dumpSymbols bool
	var dumpRefs bool

	cmd := &cobra.Command{
		Use:   "build <file>...",
		Short: "Compile shader files and report diagnostics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.New(&context.CompilerOptions{
				Debug:       debug,
				DumpSymbols: dumpSymbols,
				DumpRefs:    dumpRefs,
			})

			if err := compiler.Compile(args, ctx); err != nil {
				return err
			}

			ctx.EmitDiagnostics()

			if dumpSymbols {
				compiler.DumpSymbols(ctx)
			}
			if dumpRefs {
				compiler.DumpRefs(ctx)
			}

			if ctx.HasErrors() {
				return fmt.Errorf("compilation failed with %d error(s)", ctx.Diagnostics.ErrorCount())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "print phase progress on stderr")
	cmd.Flags().BoolVar(&dumpSymbols, "dump-symbols", false, "print each file's module scope after resolution")
	cmd.Flags().BoolVar(&dumpRefs, "dump-refs", false, "print every resolved reference in source order")
	return cmd
}
