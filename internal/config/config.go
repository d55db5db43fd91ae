package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config конфигурация батч-пайплайна каталога упражнений
type Config struct {
	// База каталога
	DatabasePath string `json:"database_path"`

	// Пороги сходства
	DescSimilarityThreshold float64 `json:"desc_similarity_threshold"`
	TechSimilarityThreshold float64 `json:"tech_similarity_threshold"`
	NameDuplicateThreshold  float64 `json:"name_duplicate_threshold"`
	NameMergeThreshold      float64 `json:"name_merge_threshold"`
	NameDeleteThreshold     float64 `json:"name_delete_threshold"`

	// Параллелизм анализа: число воркеров по мышечным группам
	AnalyzeWorkers int `json:"analyze_workers"`

	// Отчёт
	ReportFormat string `json:"report_format"`
	ReportPath   string `json:"report_path"`

	// Логирование
	LogLevel string `json:"log_level"`
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	config := &Config{
		DatabasePath:            getEnv("DATABASE_PATH", "catalog.db"),
		DescSimilarityThreshold: getEnvFloat("DESC_SIMILARITY_THRESHOLD", 0.7),
		TechSimilarityThreshold: getEnvFloat("TECH_SIMILARITY_THRESHOLD", 0.8),
		NameDuplicateThreshold:  getEnvFloat("NAME_DUPLICATE_THRESHOLD", 0.7),
		NameMergeThreshold:      getEnvFloat("NAME_MERGE_THRESHOLD", 0.9),
		NameDeleteThreshold:     getEnvFloat("NAME_DELETE_THRESHOLD", 0.99),
		AnalyzeWorkers:          getEnvInt("ANALYZE_WORKERS", 1),
		ReportFormat:            getEnv("REPORT_FORMAT", "json"),
		ReportPath:              getEnv("REPORT_PATH", "catalog_report.json"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is required")
	}

	thresholds := map[string]float64{
		"DESC_SIMILARITY_THRESHOLD": c.DescSimilarityThreshold,
		"TECH_SIMILARITY_THRESHOLD": c.TechSimilarityThreshold,
		"NAME_DUPLICATE_THRESHOLD":  c.NameDuplicateThreshold,
		"NAME_MERGE_THRESHOLD":      c.NameMergeThreshold,
		"NAME_DELETE_THRESHOLD":     c.NameDeleteThreshold,
	}
	for name, value := range thresholds {
		if value < 0 || value > 1 {
			return fmt.Errorf("%s must be in [0,1], got %g", name, value)
		}
	}
	if c.NameMergeThreshold < c.NameDuplicateThreshold {
		return fmt.Errorf("NAME_MERGE_THRESHOLD must not be lower than NAME_DUPLICATE_THRESHOLD")
	}
	if c.NameDeleteThreshold < c.NameMergeThreshold {
		return fmt.Errorf("NAME_DELETE_THRESHOLD must not be lower than NAME_MERGE_THRESHOLD")
	}

	if c.AnalyzeWorkers < 0 {
		return fmt.Errorf("ANALYZE_WORKERS must not be negative")
	}

	switch strings.ToLower(c.ReportFormat) {
	case "json", "csv", "excel", "xlsx":
	default:
		return fmt.Errorf("unknown report format %q", c.ReportFormat)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// SlogLevel переводит текстовый уровень логирования в slog.Level
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat получает переменную окружения как float64 или возвращает значение по умолчанию
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
