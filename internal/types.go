package internal

// Origin marks whether a commodity is locally produced or imported, as
// declared by the bulletin's category section.
type Origin string

const (
	OriginLocal    Origin = "Local"
	OriginImported Origin = "Imported"
)

// PriceRecord is one normalized price observation from a bulletin. Price is
// nil when the bulletin lists the commodity without an available quote.
type PriceRecord struct {
	Category      string   `json:"category"`
	Commodity     string   `json:"commodity"`
	Specification *string  `json:"specification"`
	Origin        Origin   `json:"origin"`
	Unit          string   `json:"unit"`
	Price         *float64 `json:"price"`
}

// ParseResult is the full output of parsing one bulletin document.
type ParseResult struct {
	CoveredMarkets []string      `json:"covered_markets"`
	Records        []PriceRecord `json:"price_data"`
}

type BulletinStatus string

const (
	BulletinFetched   BulletinStatus = "fetched"
	BulletinProcessed BulletinStatus = "processed"
	BulletinFailed    BulletinStatus = "failed"
)

type BulletinRow struct {
	ID          int
	URL         string
	Filename    string
	PublishedAt *string
	Hash        string
	Status      string
	FetchedAt   string
}

// ScrapePayload is the message published for downstream consumers after a
// bulletin is processed.
type ScrapePayload struct {
	Status         string        `json:"status"`
	DateProcessed  *string       `json:"date_processed"`
	OriginalURL    string        `json:"original_url"`
	CoveredMarkets []string      `json:"covered_markets"`
	PriceData      []PriceRecord `json:"price_data"`
}

// ScrapeRequest is the message that asks the worker to scrape a page.
// TargetURL may be empty, in which case the configured monitoring page is
// used.
type ScrapeRequest struct {
	TargetURL string `json:"target_url"`
}

type RecordExportRow struct {
	RecordNo      int
	Category      string
	Commodity     string
	Specification *string
	Origin        string
	Unit          string
	Price         *float64
}
