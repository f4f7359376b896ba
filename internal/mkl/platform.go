package mkl

import (
	"fmt"
	"runtime"
)

// Platform identifies one supported target triple.
type Platform string

const (
	PlatformLinux   Platform = "x86_64-linux"
	PlatformDarwin  Platform = "x86_64-darwin"
	PlatformWindows Platform = "x86_64-windows"
)

// AllPlatforms lists every platform with a compiled-in artifact table.
var AllPlatforms = []Platform{
	PlatformLinux,
	PlatformDarwin,
	PlatformWindows,
}

// Detect maps the running toolchain target onto a supported platform.
func Detect() (Platform, error) {
	if runtime.GOARCH != "amd64" {
		return "", fmt.Errorf("unsupported architecture: %s (only amd64 builds of MKL are packaged)", runtime.GOARCH)
	}

	switch runtime.GOOS {
	case "linux":
		return PlatformLinux, nil
	case "darwin":
		return PlatformDarwin, nil
	case "windows":
		return PlatformWindows, nil
	default:
		return "", fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// String returns the platform triple.
func (p Platform) String() string {
	return string(p)
}

// IsValid reports whether the platform has an artifact table.
func (p Platform) IsValid() bool {
	for _, valid := range AllPlatforms {
		if p == valid {
			return true
		}
	}
	return false
}
