package web

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/geniass/price-tracker/pkg/history"
)

const (
	chartWidth   = 960
	chartHeight  = 480
	marginLeft   = 70
	marginRight  = 20
	marginTop    = 20
	marginBottom = 90
	priceTicks   = 5
)

var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

type Point struct {
	X, Y  float64
	Date  string
	Price string
}

// Series is the price line of one product at one shop.
type Series struct {
	Product string
	Site    string
	Color   string
	Points  []Point
}

func (s Series) Label() string {
	return s.Product + " - " + s.Site
}

// Polyline is the value of an svg points attribute.
func (s Series) Polyline() string {
	coords := make([]string, len(s.Points))
	for i, p := range s.Points {
		coords[i] = fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
	}
	return strings.Join(coords, " ")
}

type Tick struct {
	Pos   float64
	Label string
}

// Chart is a price over time plot already laid out in svg coordinates.
type Chart struct {
	Width, Height int
	Left, Right   float64
	Top, Bottom   float64
	DateTicks     []Tick
	PriceTicks    []Tick
	Series        []Series
}

func (c Chart) Empty() bool {
	return len(c.Series) == 0
}

type seriesKey struct {
	product, site string
}

// NewChart draws one line per (product, site) over the dates present in records.
func NewChart(records []history.Record) Chart {
	c := Chart{
		Width:  chartWidth,
		Height: chartHeight,
		Left:   marginLeft,
		Right:  chartWidth - marginRight,
		Top:    marginTop,
		Bottom: chartHeight - marginBottom,
	}
	if len(records) == 0 {
		return c
	}

	dateSet := map[string]struct{}{}
	grouped := map[seriesKey][]history.Record{}
	minPrice, maxPrice := math.Inf(1), math.Inf(-1)
	for _, r := range records {
		dateSet[r.Day()] = struct{}{}
		k := seriesKey{product: r.Product, site: r.Site}
		grouped[k] = append(grouped[k], r)
		minPrice = math.Min(minPrice, r.Price)
		maxPrice = math.Max(maxPrice, r.Price)
	}

	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	if minPrice == maxPrice {
		minPrice--
		maxPrice++
	}

	xOf := func(i int) float64 {
		if len(dates) == 1 {
			return (c.Left + c.Right) / 2
		}
		return c.Left + float64(i)*(c.Right-c.Left)/float64(len(dates)-1)
	}
	yOf := func(price float64) float64 {
		return c.Bottom - (price-minPrice)/(maxPrice-minPrice)*(c.Bottom-c.Top)
	}

	dateIndex := make(map[string]int, len(dates))
	for i, d := range dates {
		dateIndex[d] = i
		c.DateTicks = append(c.DateTicks, Tick{Pos: xOf(i), Label: d})
	}
	for i := 0; i < priceTicks; i++ {
		price := minPrice + float64(i)*(maxPrice-minPrice)/float64(priceTicks-1)
		c.PriceTicks = append(c.PriceTicks, Tick{Pos: yOf(price), Label: fmt.Sprintf("%.2f", price)})
	}

	keys := make([]seriesKey, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].product != keys[j].product {
			return keys[i].product < keys[j].product
		}
		return keys[i].site < keys[j].site
	})

	for i, k := range keys {
		rs := grouped[k]
		sort.SliceStable(rs, func(a, b int) bool { return rs[a].Day() < rs[b].Day() })

		s := Series{Product: k.product, Site: k.site, Color: palette[i%len(palette)]}
		for _, r := range rs {
			s.Points = append(s.Points, Point{
				X:     xOf(dateIndex[r.Day()]),
				Y:     yOf(r.Price),
				Date:  r.Day(),
				Price: history.FormatPrice(r.Price),
			})
		}
		c.Series = append(c.Series, s)
	}
	return c
}
