package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hassan/langcore/internal/program"
)

// newDumpScopeCmd builds `langcore dump-scope <files...>`: run Collector
// Pass A/B and the Resolver, then print the global scope tree via
// symtab.Scope.DebugString, kept from the teacher, for debugging import
// resolution and declaration placement.
func newDumpScopeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump-scope <files...>",
		Short: "print the resolved global scope tree",
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
			fmt.Fprint(cmd.OutOrStdout(), res.Ctx.GlobalScope.DebugString(res.Ctx.Arena))
			return nil
		},
	}
}
