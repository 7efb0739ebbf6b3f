package isolate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultFetchTimeout bounds each individual cross-scope fetch so one slow
// resource cannot block the others or the session.
const DefaultFetchTimeout = 3 * time.Second

// maxRuleTextSize caps the accepted size of one fetched rule text.
const maxRuleTextSize = 4 << 20

// Fetcher is the privileged proxy capability: fetch a same-semantics
// resource by URL. The context carries the per-request timeout.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher fetches rule texts over plain HTTP. Embedders running next
// to a privileged background process substitute their own Fetcher; this
// one serves headless use.
type HTTPFetcher struct {
	Client *http.Client
}

// Fetch retrieves the text of one stylesheet resource.
func (f HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/css,*/*;q=0.1")
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: status %s", url, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRuleTextSize))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

var _ Fetcher = HTTPFetcher{}
