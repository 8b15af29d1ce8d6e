package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"presyo/internal/config"
	"presyo/internal/parser"
	"presyo/internal/pipeline"
	"presyo/internal/server"
	"presyo/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "scrape:latest":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		pageURL := fs.String("url", cfg.DATargetURL, "monitoring page URL")
		_ = fs.Parse(os.Args[2:])
		svc := pipeline.NewProcessingService(db, cfg)
		result, err := svc.ScrapeLatest(context.Background(), *pageURL)
		must(err)
		fmt.Printf("scrape done bulletin=%d records=%d markets=%d\n",
			result.BulletinID, len(result.Payload.PriceData), len(result.Payload.CoveredMarkets))
	case "parse:file":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "path to a bulletin PDF")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		blob, err := os.ReadFile(*input)
		must(err)
		svc := pipeline.NewProcessingService(db, cfg)
		result, err := svc.ProcessUpload(filepath.Base(*input), blob)
		must(err)
		fmt.Printf("parse done bulletin=%d records=%d markets=%d\n",
			result.BulletinID, len(result.Payload.PriceData), len(result.Payload.CoveredMarkets))
	case "parse:text":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "path to extracted bulletin text")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		text, err := os.ReadFile(*input)
		must(err)
		result := parser.Parse(string(text))
		for _, rec := range result.Records {
			spec := ""
			if rec.Specification != nil {
				spec = *rec.Specification
			}
			price := "n/a"
			if rec.Price != nil {
				price = fmt.Sprintf("%.2f", *rec.Price)
			}
			fmt.Printf("%-22s %-28s %-30s %-8s %-6s %s\n",
				rec.Category, rec.Commodity, spec, rec.Origin, rec.Unit, price)
		}
		fmt.Printf("parsed records=%d markets=%d\n", len(result.Records), len(result.CoveredMarkets))
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		bulletinID := fs.Int("bulletinId", 0, "internal bulletin id")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if *bulletinID == 0 || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--bulletinId and --out are required"))
		}
		rows, err := db.GetExportRows(*bulletinID)
		must(err)
		if len(rows) == 0 {
			must(fmt.Errorf("no records for bulletinId=%d", *bulletinID))
		}
		must(pipeline.ExportRecordsToXLSX(rows, *out))
		fmt.Printf("exported %d rows to %s\n", len(rows), *out)
	case "serve":
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		svc := pipeline.NewProcessingService(db, cfg)
		srv := server.New(cfg, db, svc, logger)
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		must(srv.Run(ctx))
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: presyo <command>")
	fmt.Println("commands:")
	fmt.Println("  scrape:latest [--url=https://www.da.gov.ph/price-monitoring/]")
	fmt.Println("  parse:file --input=./bulletin.pdf")
	fmt.Println("  parse:text --input=./bulletin.txt")
	fmt.Println("  export:xlsx --bulletinId=1 --out=./out/records.xlsx")
	fmt.Println("  serve")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
