// Package fetch locates and downloads Daily Price Index bulletins from the
// DA price-monitoring page.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"presyo/internal/config"
)

var bulletinHrefRe = regexp.MustCompile(`(?i)(Daily-Price-Index|DPI).*?\.pdf$`)

type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *RateLimiter
}

// Bulletin is one discovered PDF link.
type Bulletin struct {
	URL         string
	Filename    string
	PublishedAt time.Time
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.FetchTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.FetchRateLimitPS),
	}
}

// FindLatestBulletin scans the price-monitoring page for DPI PDF links and
// returns the one with the newest date in its filename.
func (c *Client) FindLatestBulletin(ctx context.Context, pageURL string) (Bulletin, error) {
	if strings.TrimSpace(pageURL) == "" {
		pageURL = c.cfg.DATargetURL
	}

	body, err := c.get(ctx, pageURL)
	if err != nil {
		return Bulletin{}, fmt.Errorf("fetch price monitoring page: %w", err)
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return Bulletin{}, fmt.Errorf("parse price monitoring page: %w", err)
	}

	var newest Bulletin
	found := false
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !bulletinHrefRe.MatchString(href) {
			return
		}
		parts := strings.Split(href, "/")
		filename := parts[len(parts)-1]
		published, ok := ParseDateFromFilename(filename)
		if !ok {
			return
		}
		if !found || published.After(newest.PublishedAt) {
			newest = Bulletin{
				URL:         c.resolveURL(href),
				Filename:    filename,
				PublishedAt: published,
			}
			found = true
		}
	})

	if !found {
		return Bulletin{}, fmt.Errorf("no dated Daily Price Index links on %s", pageURL)
	}
	return newest, nil
}

// DownloadPDF fetches the bulletin body.
func (c *Client) DownloadPDF(ctx context.Context, bulletinURL string) ([]byte, error) {
	body, err := c.get(ctx, bulletinURL)
	if err != nil {
		return nil, fmt.Errorf("download bulletin: %w", err)
	}
	defer body.Close()
	return io.ReadAll(body)
}

func (c *Client) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	c.limiter.WaitTurn()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.cfg.FetchUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}
	return resp.Body, nil
}

func (c *Client) resolveURL(href string) string {
	base, err := url.Parse(c.cfg.DABaseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
