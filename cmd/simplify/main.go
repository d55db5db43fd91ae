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
	out := flag.String("out", "technique_proposals.json", "Path to the generated proposals file")
	descriptions := flag.Bool("descriptions", false, "Also propose rewrites of generic descriptions")
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
		fmt.Println("\n--- Technique Simplification (apply) ---")
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

	proposals := pipeline.SimplifyProposals(records, quality.NewSimplifier())
	if *descriptions {
		proposals = append(proposals, pipeline.DescriptionProposals(records, quality.NewAnalyzer())...)
	}

	if err := pipeline.SaveProposals(*out, proposals); err != nil {
		log.Fatalf("failed to save proposals: %v", err)
	}

	fmt.Println("\n--- Technique Simplification ---")
	fmt.Printf("Total Records: %d\n", len(records))
	fmt.Printf("Proposals Generated: %d\n", len(proposals))
	fmt.Printf("Proposals File: %s\n", *out)
	fmt.Println("Applied Updates: 0 (review the file, then re-run with -apply)")
	fmt.Printf("Duration: %s\n", time.Since(started).Round(time.Millisecond))
}
