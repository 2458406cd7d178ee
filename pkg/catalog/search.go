package catalog

import "strings"

// Search filters products by a case-insensitive substring match against
// title or description. A blank term returns the input unchanged. Order
// is always preserved.
func Search(products []Product, term string) []Product {
	term = strings.TrimSpace(term)
	if term == "" {
		return products
	}

	needle := strings.ToLower(term)
	matched := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			matched = append(matched, p)
		}
	}

	return matched
}

// Limit truncates to the first n products. Negative n means no limit.
func Limit(products []Product, n int) []Product {
	if n < 0 || n >= len(products) {
		return products
	}

	return products[:n]
}
