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
	"exercisekb/normalization"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	dbPath := flag.String("db", cfg.DatabasePath, "Path to the catalog database")
	apply := flag.Bool("apply", false, "Apply the resolutions instead of printing them")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	store, err := catalog.NewStore(*dbPath)
	if err != nil {
		log.Fatalf("failed to open catalog: %v", err)
	}
	defer store.Close()

	started := time.Now()
	ctx := context.Background()

	records, err := store.LoadSnapshot(ctx)
	if err != nil {
		log.Fatalf("failed to load catalog snapshot: %v", err)
	}

	analyzer := normalization.NewDuplicateAnalyzer(cfg.DescSimilarityThreshold, cfg.TechSimilarityThreshold)
	resolutions := analyzer.ResolveNameDuplicates(records, cfg.NameMergeThreshold, cfg.NameDeleteThreshold)

	var deactivate, remove []string
	for _, r := range resolutions {
		fmt.Printf("%-10s %.2f keep %q drop %q (%s)\n", r.Action, r.Similarity, r.KeepName, r.DropName, r.Reason)
		if r.Action == normalization.ResolutionDelete {
			remove = append(remove, r.DropID)
		} else {
			deactivate = append(deactivate, r.DropID)
		}
	}

	if *apply {
		if err := store.ApplyResolutions(ctx, deactivate, remove); err != nil {
			log.Fatalf("failed to apply resolutions: %v", err)
		}
	}

	fmt.Println("\n--- Duplicate Resolution ---")
	fmt.Printf("Total Records: %d\n", len(records))
	fmt.Printf("Resolutions: %d\n", len(resolutions))
	fmt.Printf(" - Deactivations: %d\n", len(deactivate))
	fmt.Printf(" - Deletions: %d\n", len(remove))
	if *apply {
		fmt.Println("Applied: yes")
	} else {
		fmt.Println("Applied: no (dry run, re-run with -apply)")
	}
	fmt.Printf("Duration: %s\n", time.Since(started).Round(time.Millisecond))
}
