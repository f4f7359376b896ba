package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nlhepler/intel-mkl-tool/internal/integrity"
	"github.com/nlhepler/intel-mkl-tool/internal/utils/config"
	"github.com/nlhepler/intel-mkl-tool/internal/utils/logger"
)

// createVerifyCommand creates the verify subcommand
func createVerifyCommand() *cobra.Command {
	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Check whether the cache already holds verified MKL libraries",
		Long: `Verify runs only the integrity gate: every required library file is
checked for presence and content digest. No network access happens. The
exit status reports whether the cache would satisfy a prepare run.`,
		Args: cobra.NoArgs,
		RunE: executeVerify,
	}

	return verifyCmd
}

// executeVerify handles the verify command logic
func executeVerify(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	// verify is a read-only status check: resolve the cache path
	// without creating anything.
	helpers := config.NewConfigHelpers(config.GlConfig)
	cacheDir, err := helpers.CacheDir()
	if err != nil {
		return err
	}
	platformCfg, err := resolvePlatformConfig()
	if err != nil {
		return err
	}

	result, err := integrity.Verify(cacheDir, platformCfg.Members)
	if err != nil {
		return err
	}
	if !result.OK {
		return fmt.Errorf("cache verification failed: %s", result)
	}

	log.Infof("all %d member libraries verified in %s", len(platformCfg.Members), cacheDir)
	return nil
}
