package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"presyo/internal"
	"presyo/internal/config"
	"presyo/internal/storage"
)

func TestSmokeRecordsToXLSX(t *testing.T) {
	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	id, err := db.UpsertBulletin("https://da.test/bulletin.pdf", "bulletin.pdf", nil, "hash-smoke")
	if err != nil {
		t.Fatal(err)
	}

	spec := "Large"
	price := 250.0
	records := []internal.PriceRecord{
		{Category: "FISH PRODUCTS", Commodity: "Bangus Large", Specification: &spec, Origin: internal.OriginLocal, Unit: "kg", Price: &price},
		{Category: "LOWLAND VEGETABLES", Commodity: "Ampalaya", Origin: internal.OriginLocal, Unit: "kg", Price: nil},
	}
	if err := db.ReplaceRecords(id, records); err != nil {
		t.Fatal(err)
	}

	rows, err := db.GetExportRows(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d export rows", len(rows))
	}

	out := filepath.Join(tmp, "records.xlsx")
	if err := ExportRecordsToXLSX(rows, out); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}
}

func TestProcessUploadRejectsNonPDF(t *testing.T) {
	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	cfg, _ := config.Load()
	cfg.DBPath = filepath.Join(tmp, "app.db")

	svc := NewProcessingService(db, cfg)
	if _, err := svc.ProcessUpload("garbage.pdf", []byte("not a pdf")); err == nil {
		t.Fatal("expected error for non-PDF upload")
	}

	bulletins, err := db.ListBulletins(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(bulletins) != 1 {
		t.Fatalf("got %d bulletins", len(bulletins))
	}
	if bulletins[0].Status != "failed" {
		t.Fatalf("status=%q", bulletins[0].Status)
	}
}
