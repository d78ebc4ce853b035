// Package scraper fetches scholarship pages and aggregates them into the
// canonical record batch.
package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/beasiswa"
)

// FetcherConfig controls collector behavior.
type FetcherConfig struct {
	UserAgent string
	Timeout   time.Duration
}

// Fetcher fetches scholarship source pages using the Colly collector.
// Fetch failures never propagate: a source that cannot be reached degrades to
// its static fallback record.
type Fetcher struct {
	cfg           FetcherConfig
	baseCollector *colly.Collector
	clock         beasiswa.Clock
	logger        *zap.Logger
}

// NewFetcher builds a Fetcher.
func NewFetcher(cfg FetcherConfig, clock beasiswa.Clock, logger *zap.Logger) *Fetcher {
	c := colly.NewCollector(colly.Async(false))
	c.IgnoreRobotsTxt = true
	return &Fetcher{
		cfg:           cfg,
		baseCollector: c,
		clock:         clock,
		logger:        logger,
	}
}

// Bind ties a Source to this Fetcher as a beasiswa.SourceFetcher.
func (f *Fetcher) Bind(src Source) beasiswa.SourceFetcher {
	return &sourceFetcher{fetcher: f, src: src}
}

// BindAll binds every source in the table.
func (f *Fetcher) BindAll(sources []Source) []beasiswa.SourceFetcher {
	fetchers := make([]beasiswa.SourceFetcher, 0, len(sources))
	for _, src := range sources {
		fetchers = append(fetchers, f.Bind(src))
	}
	return fetchers
}

type sourceFetcher struct {
	fetcher *Fetcher
	src     Source
}

func (s *sourceFetcher) Category() beasiswa.Category {
	return s.src.Category
}

// Fetch tries each candidate URL in order and returns one record: the first
// page that loads, or the fallback when every URL fails.
func (s *sourceFetcher) Fetch(ctx context.Context) []beasiswa.Scholarship {
	for _, url := range s.src.URLs {
		if ctx.Err() != nil {
			break
		}
		if record, ok := s.fetcher.fetchPage(s.src, url); ok {
			return []beasiswa.Scholarship{record}
		}
	}
	s.fetcher.logger.Warn("all fetches failed, using fallback record",
		zap.String("source", s.src.Name))
	return []beasiswa.Scholarship{s.fetcher.fallbackRecord(s.src)}
}

func (f *Fetcher) fetchPage(src Source, url string) (beasiswa.Scholarship, bool) {
	collector := f.baseCollector.Clone()
	collector.IgnoreRobotsTxt = true
	// Clones share the visit store; every run must be able to revisit.
	collector.AllowURLRevisit = true
	if f.cfg.UserAgent != "" {
		collector.UserAgent = f.cfg.UserAgent
	}
	timeout := f.cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	collector.SetRequestTimeout(timeout)

	var (
		title     string
		paragraph string
		fetched   bool
	)
	collector.OnHTML("h1", func(e *colly.HTMLElement) {
		if title == "" {
			title = normalizeText(e.Text)
		}
	})
	collector.OnHTML("p", func(e *colly.HTMLElement) {
		if paragraph == "" {
			paragraph = normalizeText(e.Text)
		}
	})
	collector.OnResponse(func(_ *colly.Response) {
		fetched = true
	})
	collector.OnError(func(_ *colly.Response, err error) {
		f.logger.Warn("fetch failed",
			zap.String("source", src.Name),
			zap.String("url", url),
			zap.Error(err))
	})

	if err := collector.Visit(url); err != nil {
		f.logger.Warn("visit failed",
			zap.String("source", src.Name),
			zap.String("url", url),
			zap.Error(err))
		return beasiswa.Scholarship{}, false
	}
	collector.Wait()
	if !fetched {
		return beasiswa.Scholarship{}, false
	}

	record := f.fallbackRecord(src)
	record.SourceURL = url
	record.RegistrationLink = url
	if title != "" {
		record.Name = title
	}
	if paragraph != "" {
		record.Description = paragraph
	}
	return record, true
}

// fallbackRecord builds the static record for a source. Every required field
// is populated so records are never published with empty values.
func (f *Fetcher) fallbackRecord(src Source) beasiswa.Scholarship {
	url := ""
	if len(src.URLs) > 0 {
		url = src.URLs[0]
	}
	return beasiswa.Scholarship{
		Name:             src.Name,
		Category:         src.Category,
		SourceURL:        url,
		Description:      src.Fallback.Description,
		Requirements:     src.Fallback.Requirements,
		Deadline:         src.Fallback.Deadline,
		RegistrationLink: url,
		UpdatedAt:        f.clock.Now().Format(beasiswa.UpdatedAtLayout),
	}
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
