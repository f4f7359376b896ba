package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nlhepler/intel-mkl-tool/internal/utils/config"
	"github.com/nlhepler/intel-mkl-tool/internal/utils/logger"
)

// Global command flags
var (
	cfgFile      string
	logLevel     string
	verbose      bool
	cacheDirFlag string
	platformFlag string
	linkModeFlag string
)

func main() {
	rootCmd := createRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// createRootCommand builds the root command with all subcommands attached
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "intel-mkl-tool",
		Short: "Prepare Intel MKL static libraries for linking",
		Long: `intel-mkl-tool is a build step that guarantees the Intel MKL
static libraries exist, in verified form, in the local build cache and
then emits the linker directives the build system needs to consume them.
It is meant to run once per clean build, before compilation.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging (shorthand for --log-level debug)")
	rootCmd.PersistentFlags().StringVar(&cacheDirFlag, "cache-dir", "",
		"Cache directory for downloaded libraries (defaults to $OUT_DIR)")
	rootCmd.PersistentFlags().StringVar(&platformFlag, "platform", "",
		"Target platform triple (default: detected from the host)")
	rootCmd.PersistentFlags().StringVar(&linkModeFlag, "link", "",
		"Link mode: static or dynamic")

	rootCmd.AddCommand(createPrepareCommand())
	rootCmd.AddCommand(createVerifyCommand())
	rootCmd.AddCommand(createVersionCommand())

	attachLoggingHooks(rootCmd)
	return rootCmd
}

// resolveRequestedLogLevel picks the log level requested on the command
// line. An explicit --log-level always wins; --verbose maps to debug.
func resolveRequestedLogLevel(cmd *cobra.Command) string {
	if logLevel != "" {
		return logLevel
	}
	if cmd != nil {
		if flag := cmd.Flags().Lookup("verbose"); flag != nil && flag.Changed {
			if on, err := cmd.Flags().GetBool("verbose"); err == nil && on {
				return "debug"
			}
		}
	}
	return ""
}

// attachLoggingHooks wires configuration and logger setup into every
// subcommand so flags are parsed before the logger is built.
func attachLoggingHooks(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		if cmd.PreRunE == nil {
			cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
				return setupRuntime(cmd)
			}
		}
	}
}

// setupRuntime layers configuration (defaults, config file, environment,
// flags) and installs the global logger.
func setupRuntime(cmd *cobra.Command) error {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	cfg.ApplyEnv()

	if cacheDirFlag != "" {
		cfg.CacheDir = cacheDirFlag
	}
	if platformFlag != "" {
		cfg.Platform = platformFlag
	}
	if linkModeFlag != "" {
		cfg.LinkMode = linkModeFlag
	}
	if cfg.LinkMode != "static" && cfg.LinkMode != "dynamic" {
		return fmt.Errorf("invalid link mode %q (expected static|dynamic)", cfg.LinkMode)
	}

	level := resolveRequestedLogLevel(cmd)
	if level == "" {
		level = config.NewConfigHelpers(cfg).LogLevel()
	}
	cfg.Logging.Level = level

	log, err := logger.New(level)
	if err != nil {
		return err
	}
	logger.Init(log)

	config.GlConfig = cfg
	return nil
}
