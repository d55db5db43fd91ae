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
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	dbPath := flag.String("db", cfg.DatabasePath, "Path to the catalog database")
	format := flag.String("format", cfg.ReportFormat, "Report format: json, csv or excel")
	out := flag.String("out", cfg.ReportPath, "Path to the report file")
	workers := flag.Int("workers", cfg.AnalyzeWorkers, "Number of analysis workers (muscle-group partitions)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	reportFormat, err := pipeline.ParseFormat(*format)
	if err != nil {
		log.Fatalf("invalid report format: %v", err)
	}

	store, err := catalog.NewStore(*dbPath)
	if err != nil {
		log.Fatalf("failed to open catalog: %v", err)
	}
	defer store.Close()

	started := time.Now()
	records, err := store.LoadSnapshot(context.Background())
	if err != nil {
		log.Fatalf("failed to load catalog snapshot: %v", err)
	}

	analyzer := pipeline.NewAnalyzer(pipeline.Options{
		DescThreshold:   cfg.DescSimilarityThreshold,
		TechThreshold:   cfg.TechSimilarityThreshold,
		NameThreshold:   cfg.NameDuplicateThreshold,
		MergeThreshold:  cfg.NameMergeThreshold,
		DeleteThreshold: cfg.NameDeleteThreshold,
		Workers:         *workers,
	})
	report := analyzer.Analyze(records)

	if err := pipeline.NewExporter(report).Export(*out, reportFormat); err != nil {
		log.Fatalf("failed to export report: %v", err)
	}

	fmt.Println("\n--- Exercise Catalog Analysis ---")
	fmt.Printf("Run ID: %s\n", report.RunID)
	fmt.Printf("Total Records: %d\n", report.Summary.TotalRecords)
	fmt.Printf("Active Records: %d\n", report.Summary.ActiveRecords)
	fmt.Printf("Generic Descriptions: %d\n", report.Summary.GenericDescriptions)
	fmt.Printf("Duplicate Clusters: %d\n", report.Summary.DuplicateClusters)
	fmt.Printf("Name Duplicates: %d\n", report.Summary.NameDuplicates)
	fmt.Printf("Equipment Variants: %d\n", report.Summary.EquipmentVariants)
	fmt.Printf("Field Problems: %d\n", report.Summary.FieldProblems)
	fmt.Printf("Difficulty Suggestions: %d\n", report.Summary.DifficultyChanges)
	fmt.Printf("Problematic Records: %d\n", report.Summary.ProblematicRecords)
	fmt.Printf("Report: %s (%s)\n", *out, reportFormat)
	fmt.Printf("Duration: %s\n", time.Since(started).Round(time.Millisecond))
}
