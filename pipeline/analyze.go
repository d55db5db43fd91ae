package pipeline

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"exercisekb/catalog"
	"exercisekb/normalization"
	"exercisekb/quality"
)

// Options пороги и параметры запуска анализа
type Options struct {
	// DescThreshold порог сходства описаний для кластеризации
	DescThreshold float64
	// TechThreshold порог сходства техники для кластеризации
	TechThreshold float64
	// NameThreshold порог сходства имён для отчёта о дубликатах
	NameThreshold float64
	// MergeThreshold порог, с которого пара имён получает решение
	MergeThreshold float64
	// DeleteThreshold порог физического удаления точной копии
	DeleteThreshold float64
	// Workers число воркеров; 0 и 1 означают последовательный запуск
	Workers int
}

// Analyzer батч-анализатор каталога. Собирает все проверки над одним
// неизменяемым снапшотом; сам снапшот никогда не мутируется.
type Analyzer struct {
	opts       Options
	duplicates *normalization.DuplicateAnalyzer
	quality    *quality.Analyzer
	validator  *quality.Validator
	logger     *slog.Logger
}

// NewAnalyzer создает новый батч-анализатор каталога
func NewAnalyzer(opts Options) *Analyzer {
	return &Analyzer{
		opts:       opts,
		duplicates: normalization.NewDuplicateAnalyzer(opts.DescThreshold, opts.TechThreshold),
		quality:    quality.NewAnalyzer(),
		validator:  quality.NewValidator(),
		logger:     slog.Default().With("component", "pipeline_analyzer"),
	}
}

// groupResult результат анализа одной мышечной группы
type groupResult struct {
	clusters    []normalization.DuplicateCluster
	generics    []GenericFinding
	fields      []FieldFinding
	suggestions []DifficultySuggestion
	validations []quality.ValidationResult
}

// Analyze выполняет полный анализ снапшота каталога и строит отчёт.
// Кластеры никогда не пересекают мышечные группы, поэтому работа
// разбивается по группам и при Workers > 1 выполняется параллельно
// без какой-либо синхронизации между группами. Результат детерминирован
// независимо от числа воркеров.
func (a *Analyzer) Analyze(records []*catalog.ExerciseRecord) *Report {
	started := time.Now()

	groups := make(map[string][]*catalog.ExerciseRecord)
	for _, rec := range records {
		groups[rec.PrimaryMuscleGroup] = append(groups[rec.PrimaryMuscleGroup], rec)
	}
	groupNames := make([]string, 0, len(groups))
	for name := range groups {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	results := make(map[string]*groupResult, len(groupNames))
	if a.opts.Workers > 1 {
		var mu sync.Mutex
		var wg sync.WaitGroup
		jobs := make(chan string, len(groupNames))

		for w := 0; w < a.opts.Workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for name := range jobs {
					res := a.analyzeGroup(groups[name])
					mu.Lock()
					results[name] = res
					mu.Unlock()
				}
			}()
		}
		for _, name := range groupNames {
			jobs <- name
		}
		close(jobs)
		wg.Wait()
	} else {
		for _, name := range groupNames {
			results[name] = a.analyzeGroup(groups[name])
		}
	}

	report := &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
	}
	for _, name := range groupNames {
		res := results[name]
		report.Clusters = append(report.Clusters, res.clusters...)
		report.GenericDescriptions = append(report.GenericDescriptions, res.generics...)
		report.FieldProblems = append(report.FieldProblems, res.fields...)
		report.DifficultySuggestions = append(report.DifficultySuggestions, res.suggestions...)
		report.ValidationFindings = append(report.ValidationFindings, res.validations...)
	}

	// Сравнение имён идёт поверх групп и остаётся последовательным
	report.NameDuplicates = a.duplicates.NamePairs(records, a.opts.NameThreshold)
	report.EquipmentVariants = a.duplicates.EquipmentVariantPairs(records)
	report.Resolutions = a.duplicates.ResolveNameDuplicates(records, a.opts.MergeThreshold, a.opts.DeleteThreshold)

	report.Summary = a.summarize(records, report)
	a.logger.Info("Catalog analysis complete",
		"records", len(records),
		"groups", len(groupNames),
		"clusters", len(report.Clusters),
		"duration", time.Since(started).Round(time.Millisecond))
	return report
}

// analyzeGroup анализирует записи одной мышечной группы
func (a *Analyzer) analyzeGroup(records []*catalog.ExerciseRecord) *groupResult {
	res := &groupResult{
		clusters: a.duplicates.Cluster(records),
	}

	for _, rec := range records {
		if a.quality.IsGenericDescription(rec.Description) {
			res.generics = append(res.generics, GenericFinding{
				ID:          rec.ID,
				Name:        rec.Name,
				Description: rec.Description,
			})
		}

		res.fields = appendFieldFinding(res.fields, rec, "description", a.quality.ScoreDescription(rec.Description))
		res.fields = appendFieldFinding(res.fields, rec, "technique", a.quality.ScoreTechnique(rec.TechniqueText))
		res.fields = appendFieldFinding(res.fields, rec, "mistakes", a.quality.ScoreCommonMistakes(rec.CommonMistakes))

		if suggested := a.quality.SuggestDifficulty(rec.Name, rec.TechniqueText, rec.DifficultyLevel); suggested != "" {
			res.suggestions = append(res.suggestions, DifficultySuggestion{
				ID:        rec.ID,
				Name:      rec.Name,
				Current:   rec.DifficultyLevel,
				Suggested: suggested,
			})
		}

		if validation := a.validator.ValidateRecord(rec); validation.Problematic {
			res.validations = append(res.validations, validation)
		}
	}
	return res
}

// appendFieldFinding добавляет поле в отчёт, если его качество ниже хорошего
func appendFieldFinding(findings []FieldFinding, rec *catalog.ExerciseRecord, field string, score quality.FieldScore) []FieldFinding {
	if score.Quality == quality.QualityGood {
		return findings
	}
	return append(findings, FieldFinding{ID: rec.ID, Name: rec.Name, Field: field, Score: score})
}

// summarize собирает агрегированные счётчики отчёта
func (a *Analyzer) summarize(records []*catalog.ExerciseRecord, report *Report) Summary {
	active := 0
	for _, rec := range records {
		if rec.Active {
			active++
		}
	}
	return Summary{
		TotalRecords:        len(records),
		ActiveRecords:       active,
		GenericDescriptions: len(report.GenericDescriptions),
		DuplicateClusters:   len(report.Clusters),
		NameDuplicates:      len(report.NameDuplicates),
		EquipmentVariants:   len(report.EquipmentVariants),
		FieldProblems:       len(report.FieldProblems),
		DifficultyChanges:   len(report.DifficultySuggestions),
		ProblematicRecords:  len(report.ValidationFindings),
	}
}
