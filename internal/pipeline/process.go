package pipeline

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"presyo/internal"
	"presyo/internal/config"
	"presyo/internal/fetch"
	"presyo/internal/parser"
	"presyo/internal/storage"
)

// ProcessingService drives one bulletin end to end: discover, download,
// extract, parse, persist. The parser core stays pure; everything stateful
// lives here.
type ProcessingService struct {
	db     *storage.DB
	cfg    config.Config
	client *fetch.Client
}

func NewProcessingService(db *storage.DB, cfg config.Config) *ProcessingService {
	return &ProcessingService{db: db, cfg: cfg, client: fetch.NewClient(cfg)}
}

type ProcessResult struct {
	BulletinID int
	Payload    internal.ScrapePayload
}

// ScrapeLatest locates the newest bulletin on the monitoring page (or the
// page given in the request) and processes it.
func (s *ProcessingService) ScrapeLatest(ctx context.Context, pageURL string) (ProcessResult, error) {
	bulletin, err := s.client.FindLatestBulletin(ctx, pageURL)
	if err != nil {
		return ProcessResult{}, err
	}

	blob, err := s.client.DownloadPDF(ctx, bulletin.URL)
	if err != nil {
		return ProcessResult{}, err
	}

	published := bulletin.PublishedAt.Format("2006-01-02")
	return s.processPDF(bulletin.URL, bulletin.Filename, &published, blob)
}

// ProcessUpload parses a manually supplied bulletin PDF.
func (s *ProcessingService) ProcessUpload(filename string, blob []byte) (ProcessResult, error) {
	return s.processPDF("manual:"+filename, filename, nil, blob)
}

func (s *ProcessingService) processPDF(sourceURL, filename string, published *string, blob []byte) (ProcessResult, error) {
	start := time.Now()

	hash := sha256.Sum256(blob)
	bulletinID, err := s.db.UpsertBulletin(sourceURL, filename, published, hex.EncodeToString(hash[:]))
	if err != nil {
		return ProcessResult{}, err
	}

	text, err := ExtractPDFText(blob)
	if err != nil {
		_ = s.db.UpdateBulletinStatus(bulletinID, string(internal.BulletinFailed))
		return ProcessResult{}, err
	}

	extractMs := float64(time.Since(start).Milliseconds())
	parseStart := time.Now()
	result := parser.Parse(text)

	if err := s.db.ReplaceRecords(bulletinID, result.Records); err != nil {
		return ProcessResult{}, err
	}
	if err := s.db.UpdateBulletinStatus(bulletinID, string(internal.BulletinProcessed)); err != nil {
		return ProcessResult{}, err
	}
	_ = s.db.InsertRun(traceID(), bulletinID,
		map[string]float64{
			"extractMs": extractMs,
			"parseMs":   float64(time.Since(parseStart).Milliseconds()),
			"totalMs":   float64(time.Since(start).Milliseconds()),
		},
		map[string]int{
			"records": len(result.Records),
			"markets": len(result.CoveredMarkets),
		})

	payload := internal.ScrapePayload{
		Status:         "SUCCESS",
		DateProcessed:  published,
		OriginalURL:    sourceURL,
		CoveredMarkets: result.CoveredMarkets,
		PriceData:      result.Records,
	}
	return ProcessResult{BulletinID: bulletinID, Payload: payload}, nil
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
