package scraper

import (
	"time"

	"github.com/gocolly/colly/v2"
)

// Scraper downloads product pages one at a time.
type Scraper struct {
	colly *colly.Collector
}

type Options struct {
	UserAgent string
	// CacheDir can be empty to disable caching.
	CacheDir string
	// Timeout of zero leaves requests without a deadline.
	Timeout time.Duration
	// Delay between two requests to the same domain.
	Delay time.Duration
}
