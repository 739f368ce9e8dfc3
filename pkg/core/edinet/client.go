package edinet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// EDINET API v2 endpoints
	DefaultBaseURL = "https://api.edinet-fsa.go.jp/api/v2"

	// DocTypeAnnualReport is the fixed type code of 有価証券報告書
	// (annual securities report) rows in the day index.
	DocTypeAnnualReport = "120"

	apiKeyHeader = "Ocp-Apim-Subscription-Key"
)

// dayIndexResponse mirrors the documents.json payload.
type dayIndexResponse struct {
	Results []FilingEntry `json:"results"`
}

// Client talks to the EDINET API: the day-indexed filing registry and the
// per-document package download.
type Client struct {
	BaseURL    string
	APIKey     string
	httpClient *http.Client
}

// NewClient creates an EDINET API client. The API key is required by the
// upstream service and sent as a subscription header on every request.
func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		APIKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListDocuments fetches the filing index for one calendar date.
// type=2 requests the metadata listing.
func (c *Client) ListDocuments(ctx context.Context, date time.Time) ([]FilingEntry, error) {
	url := fmt.Sprintf("%s/documents.json?date=%s&type=2", c.BaseURL, date.Format("2006-01-02"))

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("day index request failed for %s: %w", date.Format("2006-01-02"), err)
	}

	var res dayIndexResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to parse day index: %w", err)
	}
	return res.Results, nil
}

// FetchDocumentPackage downloads the compressed filing package for a
// document id. type=1 requests the ZIP with the iXBRL members.
func (c *Client) FetchDocumentPackage(ctx context.Context, docID string) ([]byte, error) {
	url := fmt.Sprintf("%s/documents/%s?type=1", c.BaseURL, docID)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("document package request failed for %s: %w", docID, err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
