// Package checksum computes the content digests used to gate the MKL
// artifact cache. The intel conda channel publishes MD5 sums, so MD5 is
// the digest of record here; it authenticates a pinned download, nothing
// more.
package checksum

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Sum returns the MD5 digest of the file content as lowercase hex.
func Sum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s for checksum: %w", path, err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("reading %s for checksum: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Verify compares the digest of the file at path to the expected value.
func Verify(path, expected string) error {
	actual, err := Sum(path)
	if err != nil {
		return err
	}
	if actual != expected {
		return fmt.Errorf("checksum mismatch for %s: expected %s got %s", path, expected, actual)
	}
	return nil
}
