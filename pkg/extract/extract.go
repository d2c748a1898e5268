package extract

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrSelectorNotFound = errors.New("price element not found")
	ErrMalformedPrice   = errors.New("malformed price")
)

// ExtractFunc reads the raw, not yet normalized price text out of a product
// page. An empty string means the page has no price.
type ExtractFunc func(doc *goquery.Document) (string, error)

// Registry maps a site key (see site.Identify) to the function that knows
// where that site puts its price.
type Registry map[string]ExtractFunc

// Default holds every supported shop.
var Default = Registry{
	"coolblue":    coolblue,
	"alternate":   alternate,
	"bol":         bol,
	"vandenborre": vandenborre,
	"krefel":      krefel,
	"mediamarkt":  mediamarkt,
	"ikea":        ikea,
}

// Register adds or replaces the extraction function for site.
func (r Registry) Register(site string, fn ExtractFunc) {
	r[site] = fn
}

// Sites returns the registered site keys in sorted order.
func (r Registry) Sites() []string {
	sites := make([]string, 0, len(r))
	for s := range r {
		sites = append(sites, s)
	}
	sort.Strings(sites)
	return sites
}

// Price extracts and normalizes the price of a product page.
//
// ok is false without an error when the site is not registered or the price
// element is empty. A missing price element or unparseable price text is an
// error, so the caller decides whether to skip the product or give up.
func (r Registry) Price(html string, site string) (price float64, ok bool, err error) {
	fn, found := r[site]
	if !found {
		return 0, false, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, false, fmt.Errorf("%s: failed to parse html: %w", site, err)
	}

	raw, err := fn(doc)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", site, err)
	}
	if raw == "" {
		return 0, false, nil
	}

	price, err = Normalize(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", site, err)
	}
	return price, true, nil
}

// Price uses the Default registry.
func Price(html string, site string) (float64, bool, error) {
	return Default.Price(html, site)
}

// Normalize turns shop price text into a number: "€ " is dropped, "," becomes
// the decimal point and ".-" becomes ".0". Dots used as thousands separators
// are not understood, "€ 1.234,50" fails with ErrMalformedPrice, as do NaN
// and infinities.
func Normalize(raw string) (float64, error) {
	s := strings.ReplaceAll(raw, "€ ", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, ".-", ".0")
	s = strings.TrimSpace(s)

	price, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %v: %w", raw, err, ErrMalformedPrice)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%q is not a finite number: %w", raw, ErrMalformedPrice)
	}
	return price, nil
}
