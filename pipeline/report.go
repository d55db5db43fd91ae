package pipeline

import (
	"time"

	"exercisekb/catalog"
	"exercisekb/normalization"
	"exercisekb/quality"
)

// GenericFinding запись с шаблонным описанием
type GenericFinding struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FieldFinding проблема качества одного текстового поля записи
type FieldFinding struct {
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Field string             `json:"field"`
	Score quality.FieldScore `json:"score"`
}

// DifficultySuggestion рекомендация по смене уровня сложности
type DifficultySuggestion struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	Current   catalog.DifficultyLevel `json:"current"`
	Suggested catalog.DifficultyLevel `json:"suggested"`
}

// Summary агрегированные счётчики запуска для сводки в консоли
type Summary struct {
	TotalRecords        int `json:"total_records"`
	ActiveRecords       int `json:"active_records"`
	GenericDescriptions int `json:"generic_descriptions"`
	DuplicateClusters   int `json:"duplicate_clusters"`
	NameDuplicates      int `json:"name_duplicates"`
	EquipmentVariants   int `json:"equipment_variants"`
	FieldProblems       int `json:"field_problems"`
	DifficultyChanges   int `json:"difficulty_changes"`
	ProblematicRecords  int `json:"problematic_records"`
}

// Report полный результат одного запуска анализа каталога.
// Отчёт самодостаточен: содержит всё, что нужно для ручного разбора
// без повторного обращения к каталогу.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	GenericDescriptions   []GenericFinding                    `json:"generic_descriptions,omitempty"`
	Clusters              []normalization.DuplicateCluster    `json:"duplicate_clusters,omitempty"`
	NameDuplicates        []normalization.RecordPair          `json:"name_duplicates,omitempty"`
	EquipmentVariants     []normalization.RecordPair          `json:"equipment_variants,omitempty"`
	FieldProblems         []FieldFinding                      `json:"field_problems,omitempty"`
	DifficultySuggestions []DifficultySuggestion              `json:"difficulty_suggestions,omitempty"`
	ValidationFindings    []quality.ValidationResult          `json:"validation_findings,omitempty"`
	Resolutions           []normalization.DuplicateResolution `json:"resolutions,omitempty"`

	Summary Summary `json:"summary"`
}
