package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nlhepler/intel-mkl-tool/internal/fetcher"
	"github.com/nlhepler/intel-mkl-tool/internal/mkl"
	"github.com/nlhepler/intel-mkl-tool/internal/pipeline"
	"github.com/nlhepler/intel-mkl-tool/internal/utils/config"
	"github.com/nlhepler/intel-mkl-tool/internal/utils/logger"
)

// createPrepareCommand creates the prepare subcommand
func createPrepareCommand() *cobra.Command {
	prepareCmd := &cobra.Command{
		Use:   "prepare",
		Short: "Fetch, verify and extract the MKL libraries, then print linker flags",
		Long: `Prepare ensures the cache directory holds all required MKL static
libraries in verified form. When the cache already verifies, no network
access happens at all. On success the linker flags are printed on stdout
in -L/-l form, one line, ready for CGO_LDFLAGS or a Makefile variable.`,
		Args: cobra.NoArgs,
		RunE: executePrepare,
	}

	return prepareCmd
}

// executePrepare handles the prepare command logic
func executePrepare(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	helpers := config.NewConfigHelpers(config.GlConfig)
	cacheDir, err := helpers.CreateCacheDir()
	if err != nil {
		return err
	}
	platformCfg, err := resolvePlatformConfig()
	if err != nil {
		return err
	}

	log.Infof("preparing MKL %s libraries in %s", platformCfg.Platform, cacheDir)

	runner := pipeline.NewRunner(cacheDir, platformCfg,
		mkl.LinkMode(config.GlConfig.LinkMode), fetcher.New())
	directives, err := runner.Run()
	if err != nil {
		return fmt.Errorf("preparing MKL libraries: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), directives.LDFlags())
	return nil
}

// resolvePlatformConfig resolves the active platform configuration from
// the global config, detecting the host platform when none is forced.
func resolvePlatformConfig() (mkl.PlatformConfig, error) {
	var platform mkl.Platform
	var err error

	if config.GlConfig.Platform != "" {
		platform = mkl.Platform(config.GlConfig.Platform)
		if !platform.IsValid() {
			return mkl.PlatformConfig{}, fmt.Errorf("unknown platform %q (expected one of %v)",
				platform, mkl.AllPlatforms)
		}
	} else {
		platform, err = mkl.Detect()
		if err != nil {
			return mkl.PlatformConfig{}, err
		}
	}

	return mkl.Lookup(platform)
}
