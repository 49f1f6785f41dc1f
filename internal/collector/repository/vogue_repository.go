package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"celebrity-trends/internal/collector/config"
	"celebrity-trends/internal/entity"
	"celebrity-trends/pkg/logger"
	"celebrity-trends/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
)

// ArticleSummary is one entry of a listing page.
type ArticleSummary struct {
	Title   string
	RawDate string
	Link    string
	Tag     string
	Author  string
}

// VogueRepository fetches listing pages and article bodies from the source
// site.
type VogueRepository interface {
	FetchListing(ctx context.Context, page int) ([]ArticleSummary, error)
	FetchArticleBody(ctx context.Context, link string) (string, error)
}

// Selector strategies, tried in order; the first one yielding a non-empty
// match wins. The alternates tolerate the site's class-name drift.
var (
	summarySelectors = []string{
		"div.summary-item__content",
		"div[class*='summary-item']",
	}
	titleSelectors = []string{
		".SummaryItemHedBase-hnYOxl",
		"[class*='SummaryItemHed']",
		"h2",
	}
	dateSelectors = []string{
		".summary-item__publish-date",
		"[class*='publish-date']",
	}
	tagSelectors = []string{
		".RubricName-gkORYq",
		"[class*='RubricName']",
	}
	authorSelectors = []string{
		".byline__name",
		"[class*='byline']",
	}
	bodySelectors = []string{
		".body__container p",
		".GalleryPageTextBlock-vtnP p",
		"[class*='GalleryPageTextBlock'] p",
	}
)

type vogueRepository struct {
	cfg    *config.Config
	logger *logger.Logger
	client *http.Client
}

// NewVogueRepository creates a repository over the configured listing site.
func NewVogueRepository(cfg *config.Config, log *logger.Logger) VogueRepository {
	return &vogueRepository{
		cfg:    cfg,
		logger: log,
		client: &http.Client{
			Timeout: cfg.Source.RequestTimeout,
		},
	}
}

// FetchListing retrieves one listing page and extracts its article summaries.
// Summaries missing a required field (title, date or link) are skipped.
func (r *vogueRepository) FetchListing(ctx context.Context, page int) ([]ArticleSummary, error) {
	pageURL := fmt.Sprintf("%s?page=%d", r.cfg.Source.BaseURL, page)
	doc, err := r.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	items := firstNonEmpty(doc, summarySelectors)
	if items == nil {
		return nil, nil
	}

	base, err := url.Parse(r.cfg.Source.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	var summaries []ArticleSummary
	items.Each(func(_ int, s *goquery.Selection) {
		title := firstText(s, titleSelectors)
		rawDate := firstText(s, dateSelectors)
		link := resolveLink(base, s)
		if title == "" || rawDate == "" || link == "" {
			return
		}

		tag := firstText(s, tagSelectors)
		if tag == "" {
			tag = entity.NoBody
		}
		author := firstText(s, authorSelectors)
		if author == "" {
			author = entity.NoBody
		}

		summaries = append(summaries, ArticleSummary{
			Title:   title,
			RawDate: rawDate,
			Link:    link,
			Tag:     tag,
			Author:  author,
		})
	})

	return summaries, nil
}

// FetchArticleBody opens the detail page and extracts the body text through
// the selector fallback chain, last of all through readability. Returns the
// no-body sentinel when nothing could be extracted.
func (r *vogueRepository) FetchArticleBody(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for article: %w", err)
	}
	setBrowserHeaders(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch article, status code: %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read article body: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(raw)))
	if err != nil {
		return "", fmt.Errorf("failed to parse article HTML: %w", err)
	}

	for _, selector := range bodySelectors {
		var parts []string
		doc.Find(selector).Each(func(_ int, p *goquery.Selection) {
			if text := strings.TrimSpace(p.Text()); text != "" {
				parts = append(parts, text)
			}
		})
		if len(parts) > 0 {
			return utils.NormalizeWhitespace(utils.CleanToValidUTF8(strings.Join(parts, " "))), nil
		}
	}

	// None of the selectors matched; let readability take a shot at the
	// full document before giving up.
	if body := r.extractReadable(string(raw)); body != "" {
		return body, nil
	}

	return entity.NoBody, nil
}

func (r *vogueRepository) extractReadable(html string) string {
	doc, err := readability.NewDocument(html)
	if err != nil {
		r.logger.Debug("readability could not parse article", logger.ErrorField(err))
		return ""
	}
	content, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Content()))
	if err != nil {
		return ""
	}
	return utils.NormalizeWhitespace(utils.CleanToValidUTF8(content.Text()))
}

func (r *vogueRepository) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for listing: %w", err)
	}
	setBrowserHeaders(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch listing page, status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}
	return doc, nil
}

func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "es-ES,es;q=0.8,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}

// firstNonEmpty returns the matches of the first selector that finds anything.
func firstNonEmpty(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, selector := range selectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

// firstText returns the normalized text of the first selector matching within s.
func firstText(s *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		if sel := s.Find(selector); sel.Length() > 0 {
			if text := utils.NormalizeWhitespace(sel.First().Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

func resolveLink(base *url.URL, s *goquery.Selection) string {
	href, ok := s.Find("a").First().Attr("href")
	if !ok || href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
