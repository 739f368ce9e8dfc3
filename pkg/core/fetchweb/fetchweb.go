// Package fetchweb fetches company web pages that supplement the filing
// data, with a static HTTP path and a headless browser fallback for
// JavaScript-rendered pages.
package fetchweb

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/JapSyu/crawler/pkg/models"
)

const (
	maxAttempts    = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 6 * time.Second
	fetchTimeout   = 30 * time.Second
)

// Fetcher retrieves pages and records them as source pages with a content
// hash so runs can tell whether a page changed.
type Fetcher struct {
	httpClient *http.Client
	UserAgent  string
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: fetchTimeout},
		UserAgent:  "Mozilla/5.0 (compatible; JapSyuCrawler/1.0)",
	}
}

// looksComplete reports whether the body appears to be a fully delivered
// HTML document rather than a truncated or placeholder response.
func looksComplete(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "</html>") || strings.Contains(lower, "<body")
}

// FetchPage retrieves the page at url. The static path is tried first with
// bounded retries; if it never yields a complete document the headless
// browser path renders the page instead.
func (f *Fetcher) FetchPage(ctx context.Context, label, url string) (models.SourcePage, string, error) {
	html, err := f.fetchStatic(ctx, url)
	mode := "static"
	if err != nil {
		log.Printf("WARNING: static fetch failed for %s, falling back to browser: %v", url, err)
		html, err = f.fetchHeadless(ctx, url)
		mode = "headless"
		if err != nil {
			return models.SourcePage{}, "", fmt.Errorf("failed to fetch %s: %w", url, err)
		}
	}

	hash := sha256.Sum256([]byte(strings.TrimSpace(html)))
	page := models.SourcePage{
		Label:       label,
		URL:         url,
		FetchedAt:   time.Now().UTC(),
		ContentHash: hex.EncodeToString(hash[:]),
		FetchMode:   mode,
	}
	return page, html, nil
}

func (f *Fetcher) fetchStatic(ctx context.Context, url string) (string, error) {
	backoff := initialBackoff
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}

		body, err := f.getOnce(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}
		if !looksComplete(body) {
			lastErr = fmt.Errorf("incomplete document from %s", url)
			continue
		}
		return body, nil
	}
	return "", fmt.Errorf("static fetch gave up after %d attempts: %w", maxAttempts, lastErr)
}

func (f *Fetcher) getOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// fetchHeadless renders the page in a headless browser. Requires
// Chrome/Chromium on the host.
func (f *Fetcher) fetchHeadless(ctx context.Context, url string) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, fetchTimeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}
	return html, nil
}
