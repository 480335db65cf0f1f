package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	bferrors "github.com/lepinkainen/bookflow/internal/errors"
)

// Search performs one volume search against the Books API and returns the
// decoded result items, which may be empty. It fetches a single page;
// maxResults is clamped to the API's per-page cap. No retry happens here,
// a failed request surfaces as a RemoteServiceError for the caller.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Volume, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	if maxResults < 1 {
		maxResults = 1
	}
	if maxResults > maxResultsPerPage {
		maxResults = maxResultsPerPage
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("printType", "books")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	endpoint := c.baseURL + "/volumes?" + params.Encode()

	slog.Debug("Fetching volumes from Google Books", "query", query, "max_results", maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, bferrors.WrapRemoteServiceError("failed to build books api request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, bferrors.WrapRemoteServiceError("books api request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = "books api returned non-success status"
		}
		return nil, bferrors.NewRemoteServiceError(resp.StatusCode, msg)
	}

	var result VolumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, bferrors.WrapRemoteServiceError("failed to decode books api response", err)
	}

	slog.Debug("Google Books returned items", "count", len(result.Items), "total_items", result.TotalItems)

	return result.Items, nil
}
