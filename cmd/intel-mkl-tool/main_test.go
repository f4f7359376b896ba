package main

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/nlhepler/intel-mkl-tool/internal/utils/config"
)

func TestResolveRequestedLogLevelPrefersExplicitFlag(t *testing.T) {
	prev := logLevel
	logLevel = "warn"
	t.Cleanup(func() {
		logLevel = prev
	})

	if got := resolveRequestedLogLevel(nil); got != "warn" {
		t.Fatalf("expected explicit log level to win, got %q", got)
	}
}

func TestResolveRequestedLogLevelUsesVerboseFallback(t *testing.T) {
	prev := logLevel
	logLevel = ""
	t.Cleanup(func() {
		logLevel = prev
	})

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Bool("verbose", false, "")
	if err := cmd.Flags().Set("verbose", "true"); err != nil {
		t.Fatalf("set verbose: %v", err)
	}

	if got := resolveRequestedLogLevel(cmd); got != "debug" {
		t.Fatalf("expected verbose flag to set debug level, got %q", got)
	}
}

func TestResolveRequestedLogLevelIgnoresUnsetVerbose(t *testing.T) {
	prev := logLevel
	logLevel = ""
	t.Cleanup(func() {
		logLevel = prev
	})

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Bool("verbose", false, "")

	if got := resolveRequestedLogLevel(cmd); got != "" {
		t.Fatalf("expected empty when verbose not set, got %q", got)
	}
}

func TestAttachLoggingHooksAddsHookToSubcommand(t *testing.T) {
	root := createRootCommand()
	for _, name := range []string{"prepare", "verify"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil {
			t.Fatalf("find %s command: %v", name, err)
		}
		if cmd == nil || cmd.Name() != name {
			t.Fatalf("%s command not registered", name)
		}
		if cmd.PreRunE == nil {
			t.Fatalf("%s command has no setup hook", name)
		}
	}
}

func TestSetupRuntimeRejectsBadLinkMode(t *testing.T) {
	prevLink, prevCfg := linkModeFlag, cfgFile
	linkModeFlag = "shared"
	cfgFile = ""
	t.Cleanup(func() {
		linkModeFlag = prevLink
		cfgFile = prevCfg
	})

	if err := setupRuntime(nil); err == nil {
		t.Fatal("expected error for invalid link mode")
	}
}

func TestSetupRuntimeFallsBackToConfigLogLevel(t *testing.T) {
	prevLevel, prevCfg := logLevel, cfgFile
	logLevel = ""
	cfgFile = ""
	t.Cleanup(func() {
		logLevel = prevLevel
		cfgFile = prevCfg
	})

	if err := setupRuntime(nil); err != nil {
		t.Fatalf("setupRuntime failed: %v", err)
	}
	if got := config.GlConfig.Logging.Level; got != "info" {
		t.Fatalf("expected config log level fallback, got %q", got)
	}
}

func TestSetupRuntimeFlagOverridesConfig(t *testing.T) {
	prevCache, prevCfg := cacheDirFlag, cfgFile
	cacheDirFlag = "/custom/cache"
	cfgFile = ""
	t.Cleanup(func() {
		cacheDirFlag = prevCache
		cfgFile = prevCfg
	})

	if err := setupRuntime(nil); err != nil {
		t.Fatalf("setupRuntime failed: %v", err)
	}
	if config.GlConfig == nil {
		t.Fatal("global config not set")
	}
	if got := config.GlConfig.CacheDir; got != "/custom/cache" {
		t.Fatalf("cacheDir = %q", got)
	}
}
