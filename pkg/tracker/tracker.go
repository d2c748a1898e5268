package tracker

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/geniass/price-tracker/pkg/catalog"
	"github.com/geniass/price-tracker/pkg/history"
	"github.com/geniass/price-tracker/pkg/site"
)

type Fetcher interface {
	Fetch(url string) (string, error)
}

type Extractor interface {
	Price(html string, site string) (float64, bool, error)
}

type History interface {
	Seen(product string, day time.Time) (bool, error)
	Append(records []history.Record) ([]history.Record, error)
}

// Tracker runs one pass over a catalog: every product without a price for
// today is fetched, and the prices found are appended to the history at the end.
type Tracker struct {
	Fetcher   Fetcher
	Extractor Extractor
	History   History

	// Strict stops at the first product that fails and appends nothing.
	// Otherwise the failure is logged and the product skipped.
	Strict bool

	// Now defaults to time.Now.
	Now func() time.Time
}

type Summary struct {
	Checked    int
	Duplicates int
	NoPrice    int
	Failed     int
	Appended   []history.Record
}

func (t *Tracker) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t *Tracker) Run(entries []catalog.Entry) (Summary, error) {
	var summary Summary
	today := t.now()

	var fresh []history.Record
	// the same product may be tracked at several shops; only a repeated
	// catalog row is skipped within a run
	visited := map[catalog.Entry]bool{}
	for _, e := range entries {
		summary.Checked++
		logger := log.WithFields(log.Fields{
			"product": e.Product,
			"url":     e.URL,
		})

		seen, err := t.History.Seen(e.Product, today)
		if err != nil {
			return summary, fmt.Errorf("failed to check history for %q: %w", e.Product, err)
		}
		if seen || visited[e] {
			summary.Duplicates++
			logger.Info("Already recorded today, skipping")
			continue
		}

		visited[e] = true

		r, ok, err := t.price(e, today)
		if err != nil {
			if t.Strict {
				return summary, err
			}
			summary.Failed++
			logger.WithError(err).Warn("Skipping product")
			continue
		}
		if !ok {
			summary.NoPrice++
			logger.Info("No price found")
			continue
		}

		logger.WithFields(log.Fields{"site": r.Site, "price": r.Price}).Info("Found price")
		fresh = append(fresh, r)
	}

	appended, err := t.History.Append(fresh)
	if err != nil {
		return summary, err
	}
	summary.Appended = appended
	return summary, nil
}

func (t *Tracker) price(e catalog.Entry, today time.Time) (history.Record, bool, error) {
	siteKey, err := site.Identify(e.URL)
	if err != nil {
		return history.Record{}, false, fmt.Errorf("product %q: %w", e.Product, err)
	}

	html, err := t.Fetcher.Fetch(e.URL)
	if err != nil {
		return history.Record{}, false, fmt.Errorf("product %q: %w", e.Product, err)
	}

	price, ok, err := t.Extractor.Price(html, siteKey)
	if err != nil {
		return history.Record{}, false, fmt.Errorf("product %q: %w", e.Product, err)
	}
	if !ok {
		return history.Record{}, false, nil
	}

	return history.Record{
		Product: e.Product,
		Date:    today,
		Site:    siteKey,
		Price:   price,
	}, true, nil
}
