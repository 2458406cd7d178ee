package catalog

import (
	"encoding/json"
	"time"
)

// FeedRecord is one raw product entry from the upstream merchant feed.
// The shape follows the public Shopify products.json endpoint.
type FeedRecord struct {
	ID       json.RawMessage `json:"id"` // number or string upstream, kept verbatim
	Title    string          `json:"title"`
	Vendor   string          `json:"vendor"`
	Handle   string          `json:"handle"`
	BodyHTML string          `json:"body_html"`
	Variants []FeedVariant   `json:"variants"`
	Images   []FeedImage     `json:"images"`
}

type FeedVariant struct {
	Price     string `json:"price"`
	Available bool   `json:"available"`
}

type FeedImage struct {
	Src string `json:"src"`
}

// Product is the canonical normalized entity. Instances are created only
// during a catalog refresh and never mutated afterwards.
type Product struct {
	ID          json.RawMessage `json:"id"`
	Title       string          `json:"title"`
	Price       string          `json:"price"`
	Vendor      string          `json:"vendor"`
	Image       string          `json:"image"`
	Link        string          `json:"link"`
	Description string          `json:"description"`
	Available   bool            `json:"available"`
	ExtractedAt time.Time       `json:"extractedAt"`
}
