// Package venue is the client for the remote venue/navigation service. It
// owns the two request/response contracts (node catalog, route query) and
// translates transport failures and loose response shapes into typed results.
package venue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/venue-navigator/backend/internal/models"
)

// Client issues requests against the remote venue service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a venue service client. The timeout applies per request;
// no local retry or cancellation is layered on top.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// routeRequest is the POST /api/route body.
type routeRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// routeResponse is the success body of POST /api/route.
type routeResponse struct {
	Route models.Route `json:"route"`
}

// errorResponse is the optional failure body carrying a display message.
type errorResponse struct {
	Detail string `json:"detail"`
}

// ListNodes fetches the full node catalog. On any transport failure,
// non-2xx status or malformed body it returns a KindUnavailable error;
// callers fall back to an empty catalog and surface a retry message.
func (c *Client) ListNodes(ctx context.Context) (models.NodeCatalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/nodes", nil)
	if err != nil {
		return nil, NewUnavailableError("failed to build node catalog request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, NewUnavailableError("node catalog request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewUnavailableError(fmt.Sprintf("node catalog returned HTTP %d", resp.StatusCode), nil)
	}

	var catalog models.NodeCatalog
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, NewUnavailableError("node catalog response was malformed", err)
	}
	if catalog == nil {
		catalog = models.NodeCatalog{}
	}
	return catalog, nil
}

// FindRoute requests a route between two node identifiers. A successful
// response may carry an empty route, meaning no path exists between the
// nodes; that is a valid result, not an error. Both identifiers must be set;
// the session controller validates that before calling.
func (c *Client) FindRoute(ctx context.Context, startID, endID string) (models.Route, error) {
	body, err := json.Marshal(routeRequest{Start: startID, End: endID})
	if err != nil {
		return nil, NewUnavailableError("failed to encode route request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/route", bytes.NewReader(body))
	if err != nil {
		return nil, NewUnavailableError("failed to build route request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, NewUnavailableError("route request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewStatusError(resp.StatusCode, readDetail(resp.Body))
	}

	var rr routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, NewUnavailableError("route response was malformed", err)
	}
	if rr.Route == nil {
		rr.Route = models.Route{}
	}
	return rr.Route, nil
}

// readDetail extracts the optional detail message from a failure body.
// A body that is missing, unparseable or empty yields "".
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64*1024))
	if err != nil {
		return ""
	}

	var er errorResponse
	if err := json.Unmarshal(data, &er); err != nil {
		return ""
	}
	return er.Detail
}
