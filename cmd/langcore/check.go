package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hassan/langcore/internal/diag"
	"github.com/hassan/langcore/internal/program"
)

// newCheckCmd builds `langcore check <files...>`: run the full pipeline and
// print diagnostics grouped by phase (parse, then collect, then resolve,
// per spec §6.3's ordering), exiting nonzero if any phase produced one.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <files...>",
		Short: "run the semantic analysis pipeline over one or more source files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger()
			defer func() { _ = logger.Sync() }()

			res, err := program.Run(cmd.Context(), cfg, logger, args)
			if err != nil {
				return err
			}

			printPhase(cmd, "parse", res.ParseErrors)
			printPhase(cmd, "collect", res.CollectErrors)
			printPhase(cmd, "resolve", res.ResolveErrors)

			if res.HasErrors() {
				return fmt.Errorf("analysis found %d diagnostic(s)",
					len(res.ParseErrors)+len(res.CollectErrors)+len(res.ResolveErrors))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func printPhase(cmd *cobra.Command, phase string, errs []diag.Diagnostic) {
	if len(errs) == 0 {
		return
	}
	out := cmd.ErrOrStderr()
	fmt.Fprintf(out, "%s errors:\n", phase)
	for _, d := range errs {
		fmt.Fprintf(out, "  %s\n", d.String())
	}
}
