package site

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnrecognizedURL = errors.New("url has no www. host prefix")

// Identify returns the site key of a product URL: the label right after
// "www.", lowercased. "https://www.coolblue.nl/product/1" gives "coolblue".
func Identify(url string) (string, error) {
	_, rest, found := strings.Cut(url, "www.")
	if !found {
		return "", fmt.Errorf("can't identify site of %q: %w", url, ErrUnrecognizedURL)
	}
	key, _, _ := strings.Cut(rest, ".")
	return strings.ToLower(key), nil
}
