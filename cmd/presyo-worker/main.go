package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"presyo/internal/config"
	"presyo/internal/pipeline"
	"presyo/internal/queue"
	"presyo/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	svc := pipeline.NewProcessingService(db, cfg)
	worker := queue.NewWorker(cfg, svc)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	must(worker.Run(ctx))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
