package config

import (
	"log/slog"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() вернул ошибку: %v", err)
	}

	if cfg.DatabasePath != "catalog.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "catalog.db")
	}
	if cfg.DescSimilarityThreshold != 0.7 {
		t.Errorf("DescSimilarityThreshold = %g, want 0.7", cfg.DescSimilarityThreshold)
	}
	if cfg.TechSimilarityThreshold != 0.8 {
		t.Errorf("TechSimilarityThreshold = %g, want 0.8", cfg.TechSimilarityThreshold)
	}
	if cfg.NameDeleteThreshold != 0.99 {
		t.Errorf("NameDeleteThreshold = %g, want 0.99", cfg.NameDeleteThreshold)
	}
	if cfg.AnalyzeWorkers != 1 {
		t.Errorf("AnalyzeWorkers = %d, want 1", cfg.AnalyzeWorkers)
	}
	if cfg.ReportFormat != "json" {
		t.Errorf("ReportFormat = %q, want json", cfg.ReportFormat)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("DESC_SIMILARITY_THRESHOLD", "0.75")
	t.Setenv("ANALYZE_WORKERS", "4")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() вернул ошибку: %v", err)
	}

	if cfg.DatabasePath != "/tmp/test.db" {
		t.Errorf("DatabasePath = %q, want /tmp/test.db", cfg.DatabasePath)
	}
	if cfg.DescSimilarityThreshold != 0.75 {
		t.Errorf("DescSimilarityThreshold = %g, want 0.75", cfg.DescSimilarityThreshold)
	}
	if cfg.AnalyzeWorkers != 4 {
		t.Errorf("AnalyzeWorkers = %d, want 4", cfg.AnalyzeWorkers)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", cfg.SlogLevel())
	}
}

// TestLoadConfigInvalidValue нечисловое значение откатывается к умолчанию
func TestLoadConfigInvalidValue(t *testing.T) {
	t.Setenv("ANALYZE_WORKERS", "many")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() вернул ошибку: %v", err)
	}
	if cfg.AnalyzeWorkers != 1 {
		t.Errorf("AnalyzeWorkers = %d, want 1", cfg.AnalyzeWorkers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "валидная конфигурация",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "порог вне диапазона",
			mutate:  func(c *Config) { c.DescSimilarityThreshold = 1.5 },
			wantErr: true,
		},
		{
			name:    "порог удаления ниже порога слияния",
			mutate:  func(c *Config) { c.NameDeleteThreshold = 0.5 },
			wantErr: true,
		},
		{
			name:    "пустой путь к базе",
			mutate:  func(c *Config) { c.DatabasePath = "" },
			wantErr: true,
		},
		{
			name:    "неизвестный формат отчёта",
			mutate:  func(c *Config) { c.ReportFormat = "pdf" },
			wantErr: true,
		},
		{
			name:    "неизвестный уровень логирования",
			mutate:  func(c *Config) { c.LogLevel = "trace" },
			wantErr: true,
		},
		{
			name:    "отрицательное число воркеров",
			mutate:  func(c *Config) { c.AnalyzeWorkers = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				DatabasePath:            "catalog.db",
				DescSimilarityThreshold: 0.7,
				TechSimilarityThreshold: 0.8,
				NameDuplicateThreshold:  0.7,
				NameMergeThreshold:      0.9,
				NameDeleteThreshold:     0.99,
				AnalyzeWorkers:          1,
				ReportFormat:            "json",
				ReportPath:              "report.json",
				LogLevel:                "info",
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("ожидалась ошибка валидации")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("неожиданная ошибка: %v", err)
			}
		})
	}
}
