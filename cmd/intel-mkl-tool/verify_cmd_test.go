package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nlhepler/intel-mkl-tool/internal/utils/config"
)

func TestVerifyDoesNotCreateCacheDir(t *testing.T) {
	prev := config.GlConfig
	t.Cleanup(func() { config.GlConfig = prev })

	missing := filepath.Join(t.TempDir(), "never-created")
	config.GlConfig = &config.GlobalConfig{
		CacheDir: missing,
		Platform: "x86_64-linux",
		LinkMode: "static",
		Logging:  config.LoggingConfig{Level: "info"},
	}

	err := executeVerify(nil, nil)
	if err == nil {
		t.Fatal("expected verification failure for empty cache")
	}
	if _, statErr := os.Stat(missing); !os.IsNotExist(statErr) {
		t.Fatalf("verify created the cache directory (err=%v)", statErr)
	}
}

func TestVerifyFailureNamesFirstMember(t *testing.T) {
	prev := config.GlConfig
	t.Cleanup(func() { config.GlConfig = prev })

	config.GlConfig = &config.GlobalConfig{
		CacheDir: t.TempDir(),
		Platform: "x86_64-linux",
		LinkMode: "static",
		Logging:  config.LoggingConfig{Level: "info"},
	}

	err := executeVerify(nil, nil)
	if err == nil {
		t.Fatal("expected verification failure for empty cache")
	}
	for _, want := range []string{"libmkl_intel_lp64.a", "absent"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error missing %q: %v", want, err)
		}
	}
}
