// Package crawler declares the browser-crawling collaborator's contract.
// Crawling issuer websites for statement PDFs is explicitly out of scope
// for the reconstruction core (spec.md SS1): the core only ever consumes
// PDF bytes a BrowserCrawler already fetched. ChromeCrawler below is a
// thin, real adapter over the contract - enough to exercise the teacher's
// headless-browser stack - not a general-purpose crawling service.
package crawler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"

	"github.com/eurostatements/statementcore/internal/common"
	"github.com/eurostatements/statementcore/pkg/models"
)

// BrowserCrawler is the contract the reconstruction core's caller fulfills:
// discover companies listed on a market, list the statement PDF URLs a
// company has published, and supply the headers to fetch them with.
type BrowserCrawler interface {
	DiscoverCompanies(ctx context.Context, listingURL string) ([]models.CompanyRef, error)
	StatementURLs(ctx context.Context, company models.CompanyRef) ([]string, error)
	Headers() map[string]string
}

// ChromeCrawler is a minimal BrowserCrawler backed by a single headless
// Chrome instance (navigation) and goquery (link extraction from the
// rendered HTML). It does not implement robots.txt handling, rate
// limiting, pagination, or retries - an orchestrator wraps it with
// internal/collab/retry and whatever scheduling policy it needs.
type ChromeCrawler struct {
	userAgent   string
	navTimeout  time.Duration
	pdfLinkText string
	logger      arbor.ILogger
}

// NewChromeCrawler builds a ChromeCrawler. pdfLinkText filters anchors by a
// case-insensitive substring of their link text or href (e.g. "annual
// report", ".pdf") when listing statement URLs.
func NewChromeCrawler(userAgent string, navTimeout time.Duration, pdfLinkText string, logger arbor.ILogger) *ChromeCrawler {
	return &ChromeCrawler{
		userAgent:   userAgent,
		navTimeout:  navTimeout,
		pdfLinkText: strings.ToLower(pdfLinkText),
		logger:      logger,
	}
}

// Headers returns the fetch headers every statement PDF download should
// carry, so the issuer's server sees the same client that rendered the
// listing page.
func (c *ChromeCrawler) Headers() map[string]string {
	return map[string]string{"User-Agent": c.userAgent}
}

// DiscoverCompanies renders listingURL and extracts one CompanyRef per row
// of a market directory table, matched by the presence of a data-symbol
// attribute - the shape the issuer directory pages in this market expose.
func (c *ChromeCrawler) DiscoverCompanies(ctx context.Context, listingURL string) ([]models.CompanyRef, error) {
	_, isTestURL, warnings, err := common.ValidateSeedURL(listingURL, c.logger)
	if err != nil {
		return nil, fmt.Errorf("crawler: invalid listing URL: %w", err)
	}
	if isTestURL {
		c.logger.Warn().Str("listing_url", listingURL).Strs("warnings", warnings).Msg("crawler: discovering companies from a test URL")
	}

	html, err := c.renderPage(ctx, listingURL)
	if err != nil {
		return nil, fmt.Errorf("crawler: discover companies: %w", err)
	}

	companies, err := parseCompanies(html)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Int("companies", len(companies)).Str("listing_url", listingURL).Msg("crawler: discovered companies")
	return companies, nil
}

// parseCompanies extracts one CompanyRef per element carrying a
// data-symbol attribute - the shape this market's issuer directory pages
// expose for each listed row.
func parseCompanies(html string) ([]models.CompanyRef, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("crawler: parse listing page: %w", err)
	}

	var companies []models.CompanyRef
	doc.Find("[data-symbol]").Each(func(_ int, sel *goquery.Selection) {
		symbol, ok := sel.Attr("data-symbol")
		if !ok || symbol == "" {
			return
		}
		isin, _ := sel.Attr("data-isin")
		market, _ := sel.Attr("data-market")
		infoURL, _ := sel.Attr("href")
		companies = append(companies, models.CompanyRef{
			Symbol:     symbol,
			ISIN:       isin,
			Registrant: strings.TrimSpace(sel.Text()),
			Market:     market,
			InfoURL:    infoURL,
		})
	})
	return companies, nil
}

// StatementURLs renders a company's info page and returns every link whose
// text or href contains the configured statement filter.
func (c *ChromeCrawler) StatementURLs(ctx context.Context, company models.CompanyRef) ([]string, error) {
	if company.InfoURL == "" {
		return nil, fmt.Errorf("crawler: company %s has no info URL", company.Symbol)
	}

	html, err := c.renderPage(ctx, company.InfoURL)
	if err != nil {
		return nil, fmt.Errorf("crawler: statement urls for %s: %w", company.Symbol, err)
	}

	return parseStatementLinks(html, c.pdfLinkText)
}

// parseStatementLinks returns every anchor href whose text or href
// contains filterText (case-insensitive); an empty filterText keeps every
// link.
func parseStatementLinks(html, filterText string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("crawler: parse company page: %w", err)
	}

	var urls []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		text := strings.ToLower(sel.Text())
		if filterText != "" && !strings.Contains(text, filterText) && !strings.Contains(strings.ToLower(href), filterText) {
			return
		}
		urls = append(urls, href)
	})

	return urls, nil
}

func (c *ChromeCrawler) renderPage(ctx context.Context, pageURL string) (string, error) {
	allocatorOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(c.userAgent),
	)
	allocatorCtx, cancelAllocator := chromedp.NewExecAllocator(ctx, allocatorOpts...)
	defer cancelAllocator()

	browserCtx, cancelBrowser := chromedp.NewContext(allocatorCtx)
	defer cancelBrowser()

	timeout := c.navTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	runCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(pageURL),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", pageURL, err)
	}
	return html, nil
}
