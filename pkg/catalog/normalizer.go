package catalog

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	descriptionLimit  = 200
	ellipsis          = "..."
	currencyPrefix    = "R$ "
	minTitleLength    = 4 // shorter titles are junk records
	productPathPrefix = "/products/"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Normalize converts one raw feed record into a Product.
// Returns false when the record must be dropped entirely.
func Normalize(rec FeedRecord, baseURL string, now time.Time) (Product, bool) {
	title := strings.TrimSpace(rec.Title)
	if utf8.RuneCountInString(title) < minTitleLength {
		return Product{}, false
	}

	product := Product{
		ID:          rec.ID,
		Title:       title,
		Price:       formatPriceRange(rec.Variants),
		Vendor:      rec.Vendor,
		Image:       firstImage(rec.Images),
		Link:        strings.TrimSuffix(baseURL, "/") + productPathPrefix + rec.Handle,
		Description: sanitizeDescription(rec.BodyHTML),
		Available:   anyAvailable(rec.Variants),
		ExtractedAt: now,
	}

	return product, true
}

// formatPriceRange collapses all variant prices into a single display
// string: empty when no variant parses, one value when all prices are
// equal, "min - max" otherwise.
func formatPriceRange(variants []FeedVariant) string {
	var low, high decimal.Decimal
	found := false

	for _, v := range variants {
		price, err := decimal.NewFromString(strings.TrimSpace(v.Price))
		if err != nil {
			// a single broken variant must not kill the record
			continue
		}

		if !found {
			low, high = price, price
			found = true
			continue
		}

		if price.LessThan(low) {
			low = price
		}
		if price.GreaterThan(high) {
			high = price
		}
	}

	if !found {
		return ""
	}

	if low.Equal(high) {
		return currencyPrefix + formatAmount(low)
	}

	return currencyPrefix + formatAmount(low) + " - " + currencyPrefix + formatAmount(high)
}

// formatAmount renders a decimal with two places and a comma separator
func formatAmount(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// sanitizeDescription strips markup with a permissive tag scan.
// HTML entities are intentionally left as-is. The trailing ellipsis is
// appended whenever the source description was non-empty, even when the
// text fits the limit - downstream consumers rely on that exact shape.
func sanitizeDescription(html string) string {
	if html == "" {
		return ""
	}

	text := strings.TrimSpace(tagPattern.ReplaceAllString(html, ""))
	runes := []rune(text)
	if len(runes) > descriptionLimit {
		text = string(runes[:descriptionLimit])
	}

	return text + ellipsis
}

func firstImage(images []FeedImage) string {
	if len(images) == 0 {
		return ""
	}

	return images[0].Src
}

func anyAvailable(variants []FeedVariant) bool {
	for _, v := range variants {
		if v.Available {
			return true
		}
	}

	return false
}
