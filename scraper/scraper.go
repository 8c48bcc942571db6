// Package scraper extracts book records from a catalog listing page.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"bookscrape/config"
	"bookscrape/models"
	"bookscrape/parser"

	"github.com/gocolly/colly/v2"
)

const (
	containerSelector = "ol.row"
	entrySelector     = "article.product_pod"
)

// Scraper fetches one catalog listing page and turns its entries into book
// records. Extraction is synchronous; per-run state is reset on every call
// to FetchData, so one scraper can serve repeated runs.
type Scraper struct {
	cfg       *config.Config
	collector *colly.Collector
	Metrics   *Metrics

	books         []models.Book
	containerSeen bool
	extractErr    error
}

// NewScraper builds a scraper for the catalog listing at cfg.BaseURL.
func NewScraper(cfg *config.Config) (*Scraper, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base url must include a host")
	}

	collector := colly.NewCollector(
		colly.AllowedDomains(parsed.Host),
		colly.UserAgent(cfg.UserAgent),
		// the same URL is fetched again on every FetchData call
		colly.AllowURLRevisit(),
	)

	collector.SetRequestTimeout(cfg.Timeout)
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	})

	s := &Scraper{
		cfg:       cfg,
		collector: collector,
		Metrics:   NewMetrics(),
	}
	s.registerHandlers()
	return s, nil
}

// FetchData fetches the configured listing page once and returns its entries
// in document order. An empty catalog yields an empty slice and no error; a
// page whose listing container never appears is reported as unavailable, and
// one malformed entry fails the whole page.
func (s *Scraper) FetchData(ctx context.Context) ([]models.Book, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, ErrSourceUnavailable{Err: err}
	}

	s.books = nil
	s.containerSeen = false
	s.extractErr = nil

	start := time.Now()
	err := s.collector.Visit(s.cfg.BaseURL)
	s.Metrics.ObserveFetchDuration(time.Since(start))

	if err != nil {
		fetchErr := ErrSourceUnavailable{Err: err}
		s.Metrics.IncError(errorTypeLabel(fetchErr))
		return nil, fetchErr
	}
	s.Metrics.IncPage()

	if !s.containerSeen {
		containerErr := ErrSourceUnavailable{
			Err: fmt.Errorf("listing container %q not found at %s", containerSelector, s.cfg.BaseURL),
		}
		s.Metrics.IncError(errorTypeLabel(containerErr))
		return nil, containerErr
	}
	if s.extractErr != nil {
		s.Metrics.IncError(errorTypeLabel(s.extractErr))
		return nil, s.extractErr
	}

	slog.Debug("fetch complete",
		slog.Int("entries", len(s.books)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return s.books, nil
}

// Handlers are registered once; the collector runs them on the calling
// goroutine because the collector is not async.
func (s *Scraper) registerHandlers() {
	s.collector.OnRequest(func(r *colly.Request) {
		slog.Debug("fetching catalog page", slog.String("url", r.URL.String()))
	})

	s.collector.OnHTML(containerSelector, func(e *colly.HTMLElement) {
		s.containerSeen = true
	})

	s.collector.OnHTML(entrySelector, func(e *colly.HTMLElement) {
		if s.extractErr != nil {
			return
		}
		book, err := extractBook(e)
		if err != nil {
			s.extractErr = err
			return
		}
		s.Metrics.IncEntries()
		slog.Debug("extracted entry", slog.String("title", book.Title))
		s.books = append(s.books, book)
	})
}

// extractBook maps one catalog entry onto a record. The title attribute is
// taken verbatim, read straight off the DOM because ChildAttr trims attribute
// values; price, availability and rating go through the parser rules.
func extractBook(e *colly.HTMLElement) (models.Book, error) {
	title, ok := e.DOM.Find("h3 a").Attr("title")
	if !ok || title == "" {
		return models.Book{}, ErrExtraction{Field: "title", Err: fmt.Errorf("title attribute is missing or empty")}
	}

	price, err := parser.ParsePrice(e.ChildText("p.price_color"))
	if err != nil {
		return models.Book{}, ErrExtraction{Field: "price", Err: err}
	}

	availability := parser.NormalizeAvailability(e.ChildText("p.instock.availability"))
	if availability == "" {
		availability = parser.NormalizeAvailability(e.ChildText("p.availability"))
	}
	if availability == "" {
		return models.Book{}, ErrExtraction{Field: "availability", Err: fmt.Errorf("availability text is empty")}
	}

	rating, err := parser.RatingFromClass(e.ChildAttr("p.star-rating", "class"))
	if err != nil {
		return models.Book{}, ErrExtraction{Field: "rating", Err: err}
	}

	return models.Book{
		Title:        title,
		Price:        price,
		Availability: availability,
		Rating:       rating,
	}, nil
}
