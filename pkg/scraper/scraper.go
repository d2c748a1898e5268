package scraper

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/gocolly/colly/v2"
	log "github.com/sirupsen/logrus"
)

var ErrFetch = errors.New("failed to fetch page")

const bodyCtxKey = "body"

func NewScraper(opts Options) Scraper {
	options := []colly.CollectorOption{
		colly.UserAgent(opts.UserAgent),
		// product pages are fetched again on every run and may repeat within one
		colly.AllowURLRevisit(),
		// shops answer 404 or 503 with a regular html page, let the extractor decide
		colly.ParseHTTPErrorResponse(),
	}

	if opts.CacheDir != "" {
		options = append(options, colly.CacheDir(opts.CacheDir))
	}

	s := Scraper{
		colly: colly.NewCollector(options...),
	}

	if opts.Timeout > 0 {
		s.colly.SetRequestTimeout(opts.Timeout)
	}

	if opts.Delay > 0 {
		// only fails on an empty glob
		_ = s.colly.Limit(&colly.LimitRule{
			DomainGlob:  "*",
			Parallelism: 1,
			Delay:       opts.Delay,
		})
	}

	s.colly.OnRequest(func(r *colly.Request) {
		log.WithField("url", r.URL.String()).Debug("Visiting page")
	})

	s.colly.OnResponse(func(r *colly.Response) {
		log.WithFields(log.Fields{
			"url":         r.Request.URL.String(),
			"status_code": r.StatusCode,
			"bytes":       len(r.Body),
		}).Debug("Fetched page")
		r.Ctx.Put(bodyCtxKey, string(r.Body))
	})

	return s
}

// Fetch issues a single GET for pageURL and returns the body as text,
// whatever the status code. Nothing is retried.
func (s Scraper) Fetch(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("%s: %v: %w", pageURL, err, ErrFetch)
	}

	ctx := colly.NewContext()
	if err := s.colly.Request("GET", u.String(), nil, ctx, nil); err != nil {
		return "", fmt.Errorf("%s: %v: %w", pageURL, err, ErrFetch)
	}
	s.colly.Wait()

	return ctx.Get(bodyCtxKey), nil
}
