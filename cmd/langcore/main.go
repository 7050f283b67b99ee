// Command langcore drives the Collector/Resolver pipeline over a set of
// source files. Generalizes the teacher's flat `cmd/compiler/main.go` (a
// func main() indexing os.Args directly) into the cobra.Command tree shape
// termfx-morfx's CLI uses, per SPEC_FULL §2.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hassan/langcore/internal/config"
)

var (
	configPath  string
	nativeWidth int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "langcore",
		Short: "semantic analysis core for the langcore toolchain",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to langcore.yaml")
	root.PersistentFlags().IntVar(&nativeWidth, "native-width", 0, "override native_width from config (32 or 64)")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newDumpScopeCmd())
	return root
}

func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		cfg := config.Default()
		if nativeWidth != 0 {
			cfg.NativeWidth = nativeWidth
		}
		return cfg, nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if nativeWidth != 0 {
		cfg.NativeWidth = nativeWidth
	}
	return cfg, nil
}
