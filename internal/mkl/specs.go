// Package mkl holds the per-platform artifact tables for the Intel MKL
// 2020.4 static library packages published on the intel conda channel.
//
// Use `conda search --json --platform 'win-64' mkl-static` to query the
// channel metadata (includes the MD5 sums).
package mkl

import "fmt"

// ArtifactSpec describes one remote archive.
type ArtifactSpec struct {
	Name string // archive file name inside the cache directory
	URL  string // download location
	MD5  string // expected digest of the whole archive, lowercase hex
}

// MemberSpec names one library file inside the archive that extraction is
// allowed to write, together with its expected digest. RelPath always uses
// forward slashes; callers convert when touching the filesystem.
type MemberSpec struct {
	RelPath string
	MD5     string
}

// LinkMode selects how the emitted directives bind the MKL runtime.
type LinkMode string

const (
	LinkStatic  LinkMode = "static"
	LinkDynamic LinkMode = "dynamic"
)

// PlatformConfig bundles everything the pipeline needs for one platform.
type PlatformConfig struct {
	Platform Platform
	Artifact ArtifactSpec
	Members  []MemberSpec

	// LibDir is the library subdirectory inside the cache directory that
	// the search-path directive points at.
	LibDir string

	// Libraries are the logical link names in mandatory order: lp64
	// interface binding, threading layer, core runtime.
	Libraries []string

	// ThreadingShim is linked additionally in dynamic mode.
	ThreadingShim string
}

var platformConfigs = map[Platform]PlatformConfig{
	PlatformLinux: {
		Platform: PlatformLinux,
		Artifact: ArtifactSpec{
			Name: "mkl-static-2020.4-intel_304.tar.bz2",
			URL:  "https://conda.anaconda.org/intel/linux-64/mkl-static-2020.4-intel_304.tar.bz2",
			MD5:  "9f589a1508fb083c3e73427db459ca4c",
		},
		Members: []MemberSpec{
			{RelPath: "lib/libmkl_intel_lp64.a", MD5: "d172b87646b91808662b3f0a78756fcb"},
			{RelPath: "lib/libmkl_sequential.a", MD5: "52bf2a37d9a4a0658eeb5f49d7ee3450"},
			{RelPath: "lib/libmkl_core.a", MD5: "b547c7d388508aa0ddc94011b575dae6"},
		},
		LibDir:        "lib",
		Libraries:     []string{"mkl_intel_lp64", "mkl_sequential", "mkl_core"},
		ThreadingShim: "iomp5",
	},
	PlatformDarwin: {
		Platform: PlatformDarwin,
		Artifact: ArtifactSpec{
			Name: "mkl-static-2020.4-intel_301.tar.bz2",
			URL:  "https://conda.anaconda.org/intel/osx-64/mkl-static-2020.4-intel_301.tar.bz2",
			MD5:  "2f9e1b8b6d6b0903e81a573084e4494f",
		},
		Members: []MemberSpec{
			{RelPath: "lib/libmkl_intel_lp64.a", MD5: "1df8ce64bc167f6c0b79cbe0b0ab0a73"},
			{RelPath: "lib/libmkl_sequential.a", MD5: "a419e750997cd6402825f70a4ac4e71d"},
			{RelPath: "lib/libmkl_core.a", MD5: "972ac88b3fd29160be3e1d812ac31ded"},
		},
		LibDir:        "lib",
		Libraries:     []string{"mkl_intel_lp64", "mkl_sequential", "mkl_core"},
		ThreadingShim: "iomp5",
	},
	PlatformWindows: {
		Platform: PlatformWindows,
		Artifact: ArtifactSpec{
			Name: "mkl-static-2020.4-intel_311.tar.bz2",
			URL:  "https://conda.anaconda.org/intel/win-64/mkl-static-2020.4-intel_311.tar.bz2",
			MD5:  "5ae780c06edd0be62966c6d8ab47d5fb",
		},
		Members: []MemberSpec{
			{RelPath: "Library/lib/mkl_intel_lp64.lib", MD5: "957b1121495c610329a8c11ac9396b53"},
			{RelPath: "Library/lib/mkl_sequential.lib", MD5: "5db30ab35b36b97cda542af8d2f9590a"},
			{RelPath: "Library/lib/mkl_core.lib", MD5: "7f1b4f9797e7894e28b36f10db56db1c"},
		},
		LibDir:        "Library/lib",
		Libraries:     []string{"mkl_intel_lp64", "mkl_sequential", "mkl_core"},
		ThreadingShim: "libiomp5md",
	},
}

// Lookup returns the compiled-in configuration for a platform.
func Lookup(p Platform) (PlatformConfig, error) {
	cfg, ok := platformConfigs[p]
	if !ok {
		return PlatformConfig{}, fmt.Errorf("no MKL artifact table for platform %q", p)
	}
	return cfg, nil
}
