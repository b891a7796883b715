// Package scraper implements best-effort extraction of vehicle attributes
// from pasted listing URLs (Be Forward, SBT Japan and similar export sites).
// Extraction is heuristic by design: whatever cannot be found is left zero
// and the user fills it in manually.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/common"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/crsp"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/model"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Client fetches listing pages and extracts vehicle attributes.
type Client struct {
	httpClient *http.Client
	retryOpts  common.RetryOptions
}

// NewClient creates a scraper with sensible timeouts.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		retryOpts: common.RetryOptions{
			MaxAttempts:  2,
			InitialDelay: 500 * time.Millisecond,
		},
	}
}

// Scrape fetches the page and extracts whatever vehicle attributes it can.
// It returns common.ErrScrapeFailed (wrapped) when the page cannot be
// fetched and common.ErrNotFound when it yields nothing usable.
func (c *Client) Scrape(ctx context.Context, url string) (*model.ScrapedVehicle, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("%w: %q is not an http(s) URL", common.ErrValidation, url)
	}

	var doc *goquery.Document
	fetch := func() error {
		var err error
		doc, err = c.fetch(ctx, url)
		return err
	}
	if err := common.WithRetry(ctx, fetch, c.retryOpts); err != nil {
		return nil, err
	}

	vehicle := extract(doc)
	vehicle.SourceURL = url

	if vehicle.IsEmpty() {
		return nil, fmt.Errorf("%w: no vehicle details on page", common.ErrNotFound)
	}

	slog.Info("scraped listing",
		"url", url,
		"make", vehicle.Make,
		"year", vehicle.Year,
		"fob", vehicle.FOBValueUSD)
	return &vehicle, nil
}

func (c *Client) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", common.ErrScrapeFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrScrapeFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: %s", common.ErrRateLimit, url)
	}
	if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError {
		// 4xx responses won't improve on a retry
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("%w: unexpected status %d", common.ErrScrapeFailed, resp.StatusCode),
			Retryable: false,
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", common.ErrScrapeFailed, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing HTML: %v", common.ErrScrapeFailed, err)
	}
	return doc, nil
}

var (
	yearRegex = regexp.MustCompile(`\b(20[1-2][0-9])\b`)

	// Listing prices show up as "$12,500", "USD 12,500" or "FOB: 12,500".
	priceRegexes = []*regexp.Regexp{
		regexp.MustCompile(`\$\s*([\d,]+)`),
		regexp.MustCompile(`(?i)usd[\s:]*([\d,]+)`),
		regexp.MustCompile(`(?i)fob[\s:]*([\d,]+)`),
	}

	knownMakes = []string{
		"TOYOTA", "NISSAN", "HONDA", "MAZDA", "SUBARU", "MITSUBISHI",
		"SUZUKI", "AUDI", "BMW", "MERCEDES", "VOLKSWAGEN", "LEXUS",
	}
)

// extract applies the text heuristics to a parsed page. The page title is
// preferred for make/model since listing titles lead with them.
func extract(doc *goquery.Document) model.ScrapedVehicle {
	var vehicle model.ScrapedVehicle

	title := strings.TrimSpace(doc.Find("title").First().Text())
	text := doc.Find("body").Text()
	if text == "" {
		text = title
	}

	if m := yearRegex.FindString(title); m != "" {
		vehicle.Year, _ = strconv.Atoi(m)
	} else if m := yearRegex.FindString(text); m != "" {
		vehicle.Year, _ = strconv.Atoi(m)
	}

	for _, re := range priceRegexes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		if value, err := decimal.NewFromString(raw); err == nil && value.IsPositive() {
			vehicle.FOBValueUSD = value
			break
		}
	}

	upperTitle := strings.ToUpper(title)
	for _, mk := range knownMakes {
		idx := strings.Index(upperTitle, mk)
		if idx == -1 {
			continue
		}
		vehicle.Make = mk
		vehicle.Model = modelAfterMake(title[idx+len(mk):])
		break
	}

	if vehicle.Make != "" || vehicle.Model != "" {
		// Years would otherwise read as displacements, so drop them first.
		vehicle.EngineSizeLiters = crsp.ExtractEngineSize(yearRegex.ReplaceAllString(title, ""))
	}

	return vehicle
}

// modelAfterMake takes the title text following the make and keeps the next
// word-like run as the model name, dropping years and prices.
func modelAfterMake(rest string) string {
	fields := strings.Fields(rest)
	var parts []string
	for _, f := range fields {
		if yearRegex.MatchString(f) || strings.ContainsAny(f, "$|-") {
			break
		}
		parts = append(parts, f)
		if len(parts) == 2 {
			break
		}
	}
	return strings.Join(parts, " ")
}
