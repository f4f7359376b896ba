// Package pipeline orchestrates the gate -> fetch -> extract -> re-verify
// sequence that guarantees the MKL libraries are present and trusted in
// the build cache, then derives the linker directives for the calling
// build system. Every failure is fatal; there is no retry and no partial
// result.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nlhepler/intel-mkl-tool/internal/archive"
	"github.com/nlhepler/intel-mkl-tool/internal/fetcher"
	"github.com/nlhepler/intel-mkl-tool/internal/integrity"
	"github.com/nlhepler/intel-mkl-tool/internal/mkl"
	"github.com/nlhepler/intel-mkl-tool/internal/utils/checksum"
	"github.com/nlhepler/intel-mkl-tool/internal/utils/logger"
)

// Directives is what the calling build system consumes: one library
// search path and the logical library names to link, in link order.
type Directives struct {
	SearchPath string
	Libraries  []string
}

// LDFlags renders the directives in -L/-l form, suitable for
// CGO_LDFLAGS or a Makefile variable.
func (d *Directives) LDFlags() string {
	parts := make([]string, 0, len(d.Libraries)+1)
	parts = append(parts, "-L"+d.SearchPath)
	for _, lib := range d.Libraries {
		parts = append(parts, "-l"+lib)
	}
	return strings.Join(parts, " ")
}

// Runner drives the pipeline for one platform's artifact.
type Runner struct {
	cacheDir string
	cfg      mkl.PlatformConfig
	linkMode mkl.LinkMode
	fetcher  *fetcher.Fetcher
}

// NewRunner returns a Runner operating on cacheDir.
func NewRunner(cacheDir string, cfg mkl.PlatformConfig, linkMode mkl.LinkMode, f *fetcher.Fetcher) *Runner {
	return &Runner{
		cacheDir: cacheDir,
		cfg:      cfg,
		linkMode: linkMode,
		fetcher:  f,
	}
}

// Run ensures the cache directory holds all verified member libraries,
// fetching and extracting the artifact when it does not, and returns the
// linker directives. The downloaded archive is transient: it is removed
// once extraction succeeds.
func (r *Runner) Run() (*Directives, error) {
	log := logger.Logger()

	res, err := integrity.Verify(r.cacheDir, r.cfg.Members)
	if err != nil {
		return nil, err
	}

	if res.OK {
		log.Infof("using existing verified libraries in %s", r.cacheDir)
		return r.directives(), nil
	}
	log.Infof("cache not usable (%s), fetching %s", res, r.cfg.Artifact.Name)

	// A failed download leaves a partial file behind; discard it so the
	// cache ends up exactly as it was before the attempt.
	archivePath := filepath.Join(r.cacheDir, r.cfg.Artifact.Name)
	if err := r.fetcher.Fetch(r.cfg.Artifact.URL, archivePath); err != nil {
		os.Remove(archivePath)
		return nil, err
	}

	if err := checksum.Verify(archivePath, r.cfg.Artifact.MD5); err != nil {
		os.Remove(archivePath)
		return nil, fmt.Errorf("downloaded archive failed verification: %w", err)
	}

	if err := archive.Extract(archivePath, r.cfg.Members, r.cacheDir); err != nil {
		return nil, err
	}

	// The archive is transient; a stale leftover copy must never be
	// mistaken for cache state, so a failed delete is fatal too.
	if err := os.Remove(archivePath); err != nil {
		return nil, fmt.Errorf("removing archive %s: %w", archivePath, err)
	}

	res, err = integrity.Verify(r.cacheDir, r.cfg.Members)
	if err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, fmt.Errorf("library verification failed after extraction: %s", res)
	}

	log.Infof("all %d member libraries verified", len(r.cfg.Members))
	return r.directives(), nil
}

func (r *Runner) directives() *Directives {
	libs := make([]string, 0, len(r.cfg.Libraries)+1)
	libs = append(libs, r.cfg.Libraries...)
	if r.linkMode == mkl.LinkDynamic && r.cfg.ThreadingShim != "" {
		libs = append(libs, r.cfg.ThreadingShim)
	}

	return &Directives{
		SearchPath: filepath.Join(r.cacheDir, filepath.FromSlash(r.cfg.LibDir)),
		Libraries:  libs,
	}
}
