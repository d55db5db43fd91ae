package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"exercisekb/catalog"
	"exercisekb/internal/config"
	"exercisekb/pipeline"
	"exercisekb/quality"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	dbPath := flag.String("db", cfg.DatabasePath, "Path to the catalog database")
	out := flag.String("out", "name_proposals.json", "Path to the generated proposals file")
	difficulty := flag.Bool("difficulty", false, "Also propose difficulty level changes")
	apply := flag.String("apply", "", "Apply a previously reviewed proposals file instead of generating one")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	store, err := catalog.NewStore(*dbPath)
	if err != nil {
		log.Fatalf("failed to open catalog: %v", err)
	}
	defer store.Close()

	started := time.Now()
	ctx := context.Background()

	if *apply != "" {
		proposals, err := pipeline.LoadProposals(*apply)
		if err != nil {
			log.Fatalf("failed to load proposals: %v", err)
		}
		applied, err := store.ApplyProposals(ctx, proposals)
		if err != nil {
			log.Fatalf("failed to apply proposals: %v", err)
		}
		fmt.Println("\n--- Name Standardization (apply) ---")
		fmt.Printf("Proposals File: %s\n", *apply)
		fmt.Printf("Loaded Proposals: %d\n", len(proposals))
		fmt.Printf("Applied Updates: %d\n", applied)
		fmt.Printf("Duration: %s\n", time.Since(started).Round(time.Millisecond))
		return
	}

	records, err := store.LoadSnapshot(ctx)
	if err != nil {
		log.Fatalf("failed to load catalog snapshot: %v", err)
	}

	proposals := pipeline.NameProposals(records)
	if *difficulty {
		proposals = append(proposals, pipeline.DifficultyProposals(records, quality.NewAnalyzer())...)
	}

	if err := pipeline.SaveProposals(*out, proposals); err != nil {
		log.Fatalf("failed to save proposals: %v", err)
	}

	fmt.Println("\n--- Name Standardization ---")
	fmt.Printf("Total Records: %d\n", len(records))
	fmt.Printf("Proposals Generated: %d\n", len(proposals))
	fmt.Printf("Proposals File: %s\n", *out)
	fmt.Println("Applied Updates: 0 (review the file, then re-run with -apply)")
	fmt.Printf("Duration: %s\n", time.Since(started).Round(time.Millisecond))
}
