// Package archive unpacks the MKL conda tarballs. The archives carry far
// more than the libraries the link step needs, so extraction is driven by
// an allow-list: only matching members are ever written to disk.
package archive

import (
	"archive/tar"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"

	"github.com/nlhepler/intel-mkl-tool/internal/mkl"
	"github.com/nlhepler/intel-mkl-tool/internal/utils/logger"
)

// Extract opens archivePath as a compressed tar stream and unpacks every
// entry whose path ends with one of the allow-listed member paths into
// destDir, at the member's declared relative path. Matching is ends-with,
// not exact: conda tarballs are rooted at the package prefix, and nested
// prefixes must still resolve. The first matching member wins.
func Extract(archivePath string, members []mkl.MemberSpec, destDir string) error {
	log := logger.Logger()

	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", archivePath, err)
	}
	defer f.Close()

	raw, err := decompressReader(archivePath, f)
	if err != nil {
		return err
	}

	tr := tar.NewReader(raw)
	extracted := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading archive %s: %w", archivePath, err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		member, ok := matchMember(hdr.Name, members)
		if !ok {
			continue
		}

		target := filepath.Join(destDir, filepath.FromSlash(member.RelPath))
		if err := writeEntry(target, tr, hdr); err != nil {
			return err
		}
		log.Debugf("extracted %s -> %s", hdr.Name, target)
		extracted++
	}

	log.Infof("extracted %d of %d allow-listed members from %s", extracted, len(members), filepath.Base(archivePath))
	return nil
}

// matchMember returns the first allow-list member whose relative path is a
// suffix of the entry name.
func matchMember(entryName string, members []mkl.MemberSpec) (mkl.MemberSpec, bool) {
	name := filepath.ToSlash(entryName)
	for _, m := range members {
		if strings.HasSuffix(name, m.RelPath) {
			return m, true
		}
	}
	return mkl.MemberSpec{}, false
}

func writeEntry(target string, r io.Reader, hdr *tar.Header) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", target, err)
	}

	perm := os.FileMode(0644)
	if hdr.FileInfo().Mode()&0111 != 0 {
		perm = 0755
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", target, err)
	}
	return nil
}

// decompressReader wraps the archive stream with the decompressor implied
// by the file extension.
func decompressReader(archivePath string, f io.Reader) (io.Reader, error) {
	switch {
	case strings.HasSuffix(archivePath, ".bz2"):
		return bzip2.NewReader(f), nil
	case strings.HasSuffix(archivePath, ".xz"):
		r, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening xz stream %s: %w", archivePath, err)
		}
		return r, nil
	case strings.HasSuffix(archivePath, ".gz"), strings.HasSuffix(archivePath, ".tgz"):
		r, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream %s: %w", archivePath, err)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unsupported archive compression: %s", archivePath)
	}
}
