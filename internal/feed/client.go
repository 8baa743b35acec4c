package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/baula-dev/baula-sync/internal/models"
	"github.com/baula-dev/baula-sync/pkg/config"
	appErrors "github.com/baula-dev/baula-sync/pkg/errors"
)

// Client fetches the raw catalog document for a semester from the university
// information system. It performs no retries; retry policy belongs to the
// scheduler.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a feed client honouring the configured wall-clock budget.
func NewClient(cfg config.FeedConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// FetchCatalog issues a GET against <base URL><semester> and returns the full
// response body. It fails with ErrFeedNotConfigured when no base URL is set
// and with ErrFeedUnavailable on any transport or HTTP failure.
func (c *Client) FetchCatalog(ctx context.Context, semester models.Semester) (string, error) {
	if c.baseURL == "" {
		return "", appErrors.ErrFeedNotConfigured
	}

	url := c.baseURL + semester.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrFeedUnavailable.Code, appErrors.ErrFeedUnavailable.Status, "build feed request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrFeedUnavailable.Code, appErrors.ErrFeedUnavailable.Status, "fetch catalog")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", appErrors.Clone(appErrors.ErrFeedUnavailable, fmt.Sprintf("feed responded with status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrFeedUnavailable.Code, appErrors.ErrFeedUnavailable.Status, "read catalog body")
	}

	return string(body), nil
}
