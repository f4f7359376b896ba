package mkl_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/nlhepler/intel-mkl-tool/internal/mkl"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestLookupTablesAreComplete(t *testing.T) {
	for _, platform := range mkl.AllPlatforms {
		t.Run(platform.String(), func(t *testing.T) {
			cfg, err := mkl.Lookup(platform)
			if err != nil {
				t.Fatalf("Lookup failed: %v", err)
			}

			if cfg.Artifact.Name == "" || cfg.Artifact.URL == "" {
				t.Fatalf("incomplete artifact spec: %+v", cfg.Artifact)
			}
			if !strings.HasSuffix(cfg.Artifact.URL, cfg.Artifact.Name) {
				t.Fatalf("URL %s does not end with archive name %s", cfg.Artifact.URL, cfg.Artifact.Name)
			}
			if !hexDigest.MatchString(cfg.Artifact.MD5) {
				t.Fatalf("archive digest not lowercase hex: %q", cfg.Artifact.MD5)
			}

			if len(cfg.Members) != 3 {
				t.Fatalf("expected 3 members, got %d", len(cfg.Members))
			}
			for _, m := range cfg.Members {
				if !strings.HasPrefix(m.RelPath, cfg.LibDir+"/") {
					t.Fatalf("member %s not under library dir %s", m.RelPath, cfg.LibDir)
				}
				if !hexDigest.MatchString(m.MD5) {
					t.Fatalf("member digest not lowercase hex: %q", m.MD5)
				}
			}

			want := []string{"mkl_intel_lp64", "mkl_sequential", "mkl_core"}
			if len(cfg.Libraries) != len(want) {
				t.Fatalf("expected link names %v, got %v", want, cfg.Libraries)
			}
			for i, lib := range want {
				if cfg.Libraries[i] != lib {
					t.Fatalf("link order wrong: expected %v, got %v", want, cfg.Libraries)
				}
			}
			if cfg.ThreadingShim == "" {
				t.Fatal("missing threading shim name")
			}
		})
	}
}

func TestWindowsUsesNestedLibraryPath(t *testing.T) {
	cfg, err := mkl.Lookup(mkl.PlatformWindows)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if cfg.LibDir != "Library/lib" {
		t.Fatalf("expected Library/lib, got %s", cfg.LibDir)
	}
	for _, m := range cfg.Members {
		if !strings.HasSuffix(m.RelPath, ".lib") {
			t.Fatalf("windows member %s does not use .lib suffix", m.RelPath)
		}
	}
}

func TestUnixUsesStaticArchiveSuffix(t *testing.T) {
	for _, platform := range []mkl.Platform{mkl.PlatformLinux, mkl.PlatformDarwin} {
		cfg, err := mkl.Lookup(platform)
		if err != nil {
			t.Fatalf("Lookup(%s) failed: %v", platform, err)
		}
		if cfg.LibDir != "lib" {
			t.Fatalf("%s: expected lib, got %s", platform, cfg.LibDir)
		}
		for _, m := range cfg.Members {
			if !strings.HasSuffix(m.RelPath, ".a") {
				t.Fatalf("%s member %s does not use .a suffix", platform, m.RelPath)
			}
		}
	}
}

func TestLookupUnknownPlatform(t *testing.T) {
	if _, err := mkl.Lookup(mkl.Platform("riscv64-linux")); err == nil {
		t.Fatal("expected error for unknown platform")
	}
}

func TestDetectReturnsTabledPlatform(t *testing.T) {
	platform, err := mkl.Detect()
	if err != nil {
		t.Skipf("host not supported: %v", err)
	}
	if !platform.IsValid() {
		t.Fatalf("Detect returned platform without a table: %s", platform)
	}
}

func TestIsValid(t *testing.T) {
	if !mkl.PlatformLinux.IsValid() {
		t.Fatal("x86_64-linux should be valid")
	}
	if mkl.Platform("sparc-solaris").IsValid() {
		t.Fatal("unknown platform reported valid")
	}
}
