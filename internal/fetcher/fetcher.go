// Package fetcher downloads one remote artifact into the build cache.
// There is deliberately no retry, no mirror fallback and no timeout: this
// runs as a build step, and a failed or hung transfer is a failed build.
package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/nlhepler/intel-mkl-tool/internal/utils/logger"
	"github.com/nlhepler/intel-mkl-tool/internal/utils/network"
)

const userAgent = "intel-mkl-tool/1.0"

// StatusError reports a download that completed the HTTP exchange but did
// not end on status 200.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response code %d for %s", e.Code, e.URL)
}

// Fetcher downloads artifacts over HTTP(S).
type Fetcher struct {
	client *http.Client
}

// New returns a Fetcher backed by the hardened shared HTTP client.
func New() *Fetcher {
	return &Fetcher{client: network.NewSecureHTTPClient()}
}

// NewWithClient returns a Fetcher using the given client. Tests use this
// to point at httptest servers.
func NewWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch streams uri into destPath, truncating any existing file. The
// destination file exists (possibly partially written) even on failure;
// the integrity gate, not the fetcher, decides whether its content is
// usable. Success requires the final status to be exactly 200.
func (f *Fetcher) Fetch(uri, destPath string) error {
	log := logger.Logger()

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", destPath, err)
	}
	defer out.Close()

	req, err := http.NewRequest(http.MethodGet, uri, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", uri, err)
	}
	req.Header.Set("User-Agent", userAgent)

	log.Infof("downloading %s", uri)
	resp, err := f.client.Do(req)
	if err != nil {
		// Exhausted redirects surface as a CheckRedirect error with the
		// last 3xx response attached; report that status, not the
		// redirect policy wording.
		if resp != nil {
			resp.Body.Close()
			return &StatusError{URL: uri, Code: resp.StatusCode}
		}
		return fmt.Errorf("GET %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{URL: uri, Code: resp.StatusCode}
	}

	bar := progressbar.NewOptions64(resp.ContentLength,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowBytes(true),
	)

	if _, err := io.Copy(io.MultiWriter(out, bar), resp.Body); err != nil {
		return fmt.Errorf("writing %s: %w", destPath, err)
	}
	bar.Finish()

	log.Infof("downloaded %s", destPath)
	return nil
}
