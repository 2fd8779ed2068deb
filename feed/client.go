package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/youbike-osm/youbike-osm/internal/logging"
)

// StatusError is returned when the feed answers with a non-2xx status.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.Code, e.URL)
}

// Client fetches the raw station feed.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client whose requests are bounded by timeout.
// A zero timeout means no limit.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTP wraps an existing http.Client.
func NewClientWithHTTP(hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{httpClient: hc}
}

// Fetch returns the body found at source, decoded as UTF-8 whatever the
// declared charset. source is either an http(s) URL or a local file path.
// There is no retry.
func (c *Client) Fetch(ctx context.Context, source string) ([]byte, error) {
	if source == "" {
		return nil, fmt.Errorf("feed source is empty")
	}
	logger := logging.FromContext(ctx)
	start := time.Now()

	var (
		body []byte
		err  error
	)
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		body, err = readFile(source)
	} else {
		body, err = c.get(ctx, source)
	}
	if err != nil {
		return nil, err
	}

	logging.LogOperation(logger, "feed_fetched",
		slog.String("source", source),
		slog.Int("bytes", len(body)),
		slog.Duration("duration", time.Since(start)))
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) (body []byte, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer logging.HandleDeferredError(&err, resp.Body.Close, logging.FromContext(ctx), "close feed body")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, URL: url}
	}
	body, err = DecodeUTF8(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return body, nil
}

func readFile(path string) (body []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return DecodeUTF8(f)
}

// DecodeUTF8 reads r as UTF-8. A leading byte order mark is dropped and
// invalid sequences are replaced with U+FFFD.
func DecodeUTF8(r io.Reader) ([]byte, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return io.ReadAll(transform.NewReader(r, dec))
}
