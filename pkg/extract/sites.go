package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

type selector struct {
	query string
	m     cascadia.Selector
}

func mustSelector(query string) selector {
	return selector{query: query, m: cascadia.MustCompile(query)}
}

var (
	coolblueSel     = mustSelector(".sales-price__current")
	alternateSel    = mustSelector(".price")
	bolWholeSel     = mustSelector(".promo-price")
	bolFractionSel  = mustSelector(".promo-price__fraction")
	vandenborreSel  = mustSelector(".price-content .current")
	krefelSel       = mustSelector(".current-price")
	mediamarktSel   = mustSelector(".price")
	ikeaScreenRdSel = mustSelector(".pip-temp-price__sr-text")
)

func first(doc *goquery.Document, s selector) (*goquery.Selection, error) {
	sel := doc.FindMatcher(s.m).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%q: %w", s.query, ErrSelectorNotFound)
	}
	return sel, nil
}

func firstText(doc *goquery.Document, s selector) (string, error) {
	sel, err := first(doc, s)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(sel.Text()), nil
}

// coolblue and mediamarkt show round prices as "299,-"
func wholeEuros(s string) string {
	return strings.ReplaceAll(s, ",-", ",00")
}

func coolblue(doc *goquery.Document) (string, error) {
	s, err := firstText(doc, coolblueSel)
	return wholeEuros(s), err
}

func alternate(doc *goquery.Document) (string, error) {
	return firstText(doc, alternateSel)
}

// bol renders <span class="promo-price">49<sup class="promo-price__fraction">99</sup></span>.
func bol(doc *goquery.Document) (string, error) {
	whole, err := first(doc, bolWholeSel)
	if err != nil {
		return "", err
	}
	wholePart := whole.Contents().First()
	if wholePart.Length() == 0 {
		return "", fmt.Errorf("%q is empty: %w", bolWholeSel.query, ErrSelectorNotFound)
	}

	fraction, err := firstText(doc, bolFractionSel)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(wholePart.Text()) + "," + fraction, nil
}

func vandenborre(doc *goquery.Document) (string, error) {
	return firstText(doc, vandenborreSel)
}

func krefel(doc *goquery.Document) (string, error) {
	return firstText(doc, krefelSel)
}

func mediamarkt(doc *goquery.Document) (string, error) {
	s, err := firstText(doc, mediamarktSel)
	return wholeEuros(s), err
}

// ikea only has a plain text price in its screen reader label, "Price € 79.99".
func ikea(doc *goquery.Document) (string, error) {
	s, err := firstText(doc, ikeaScreenRdSel)
	return strings.ReplaceAll(s, "Price ", ""), err
}
