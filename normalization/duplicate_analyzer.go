package normalization

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"exercisekb/catalog"
)

// DuplicateAnalyzer ищет кластеры дубликатов и пары похожих имён в каталоге.
// Анализ чисто вычислительный: записи не изменяются.
type DuplicateAnalyzer struct {
	descThreshold float64
	techThreshold float64
	logger        *slog.Logger
}

// NewDuplicateAnalyzer создает новый анализатор дубликатов с порогами сходства
// описаний и техники выполнения
func NewDuplicateAnalyzer(descThreshold, techThreshold float64) *DuplicateAnalyzer {
	return &DuplicateAnalyzer{
		descThreshold: descThreshold,
		techThreshold: techThreshold,
		logger:        slog.Default().With("component", "duplicate_analyzer"),
	}
}

// ClusterMember участник кластера дубликатов
type ClusterMember struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// DuplicateCluster группа записей, предположительно описывающих одно упражнение
type DuplicateCluster struct {
	GroupID     string          `json:"group_id"`
	MuscleGroup string          `json:"muscle_group"`
	Axis        string          `json:"axis"`
	Score       float64         `json:"score"`
	Members     []ClusterMember `json:"members"`
}

// RecordPair пара записей с похожими именами
type RecordPair struct {
	FirstID    string  `json:"first_id"`
	FirstName  string  `json:"first_name"`
	SecondID   string  `json:"second_id"`
	SecondName string  `json:"second_name"`
	Score      float64 `json:"score"`
}

// DuplicateResolution решение по паре почти идентичных записей:
// какую оставить и что сделать с проигравшей
type DuplicateResolution struct {
	KeepID     string  `json:"keep_id"`
	KeepName   string  `json:"keep_name"`
	DropID     string  `json:"drop_id"`
	DropName   string  `json:"drop_name"`
	Action     string  `json:"action"`
	Similarity float64 `json:"similarity"`
	Reason     string  `json:"reason"`
}

// Действия над проигравшей записью
const (
	ResolutionDeactivate = "deactivate"
	ResolutionDelete     = "delete"
)

// Оси сходства кластера
const (
	AxisDescription = "description"
	AxisTechnique   = "technique"
)

// Cluster группирует записи в непересекающиеся кластеры дубликатов.
// Жадный проход по отсортированному списку: каждая ещё не обработанная
// запись становится затравкой, к ней присоединяются записи той же
// мышечной группы с достаточным сходством описания или техники и
// совместимым оборудованием. Кластеры из одной записи отбрасываются.
func (a *DuplicateAnalyzer) Cluster(records []*catalog.ExerciseRecord) []DuplicateCluster {
	sorted := sortedByName(records)
	processed := make([]bool, len(sorted))

	var clusters []DuplicateCluster
	for i, seed := range sorted {
		if processed[i] {
			continue
		}
		processed[i] = true

		members := []ClusterMember{memberOf(seed)}
		var descTotal, techTotal float64
		var descCount, techCount int

		for j := i + 1; j < len(sorted); j++ {
			if processed[j] {
				continue
			}
			candidate := sorted[j]
			if candidate.PrimaryMuscleGroup != seed.PrimaryMuscleGroup {
				continue
			}

			descSim := TokenSimilarity(seed.Description, candidate.Description)
			techSim := TokenSimilarity(seed.TechniqueText, candidate.TechniqueText)
			matchDesc := descSim >= a.descThreshold
			matchTech := techSim >= a.techThreshold
			if !matchDesc && !matchTech {
				continue
			}
			if !CompatibleEquipment(seed.Equipment, candidate.Equipment) {
				continue
			}

			processed[j] = true
			members = append(members, memberOf(candidate))
			if matchTech {
				techTotal += techSim
				techCount++
			}
			if matchDesc {
				descTotal += descSim
				descCount++
			}
		}

		if len(members) < 2 {
			continue
		}

		// Совпадение по технике — более сильный сигнал, чем по описанию
		axis := AxisDescription
		score := descTotal / float64(descCount)
		if techCount > 0 {
			axis = AxisTechnique
			score = techTotal / float64(techCount)
		}

		clusters = append(clusters, DuplicateCluster{
			GroupID:     uuid.New().String(),
			MuscleGroup: seed.PrimaryMuscleGroup,
			Axis:        axis,
			Score:       score,
			Members:     members,
		})
	}

	a.logger.Info("Clustered duplicates", "records", len(records), "clusters", len(clusters))
	return clusters
}

// NamePairs возвращает все пары записей, имена которых похожи не меньше
// порога. Сравнение идёт поверх мышечных групп: одноимённые упражнения
// нередко заведены в разных группах.
func (a *DuplicateAnalyzer) NamePairs(records []*catalog.ExerciseRecord, threshold float64) []RecordPair {
	sorted := sortedByName(records)

	var pairs []RecordPair
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			score := NameSimilarity(sorted[i].Name, sorted[j].Name)
			if score < threshold {
				continue
			}
			pairs = append(pairs, RecordPair{
				FirstID:    sorted[i].ID,
				FirstName:  sorted[i].Name,
				SecondID:   sorted[j].ID,
				SecondName: sorted[j].Name,
				Score:      score,
			})
		}
	}
	return pairs
}

// EquipmentVariantPairs находит пары записей одной мышечной группы с почти
// одинаковым содержанием, но разным оборудованием. Такие пары — легитимные
// вариации (жим гантелями против жима штангой), их нельзя схлопывать.
func (a *DuplicateAnalyzer) EquipmentVariantPairs(records []*catalog.ExerciseRecord) []RecordPair {
	sorted := sortedByName(records)

	var pairs []RecordPair
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			first, second := sorted[i], sorted[j]
			if first.PrimaryMuscleGroup != second.PrimaryMuscleGroup {
				continue
			}

			descSim := TokenSimilarity(first.Description, second.Description)
			techSim := TokenSimilarity(first.TechniqueText, second.TechniqueText)
			if descSim < a.descThreshold && techSim < a.techThreshold {
				continue
			}
			if equipmentKey(first.Equipment) == equipmentKey(second.Equipment) {
				continue
			}

			score := descSim
			if techSim > score {
				score = techSim
			}
			pairs = append(pairs, RecordPair{
				FirstID:    first.ID,
				FirstName:  first.Name,
				SecondID:   second.ID,
				SecondName: second.Name,
				Score:      score,
			})
		}
	}
	return pairs
}

// ResolveNameDuplicates строит решения по парам с именами, похожими не
// меньше mergeThreshold. Оставляется запись, на которую ссылаются планы,
// затем активная, затем более полная. Физическое удаление разрешено только
// для практически точных копий без ссылок из планов; иначе деактивация.
func (a *DuplicateAnalyzer) ResolveNameDuplicates(records []*catalog.ExerciseRecord, mergeThreshold, deleteThreshold float64) []DuplicateResolution {
	sorted := sortedByName(records)
	dropped := make(map[string]bool)

	var resolutions []DuplicateResolution
	for i := 0; i < len(sorted); i++ {
		if dropped[sorted[i].ID] {
			continue
		}
		for j := i + 1; j < len(sorted); j++ {
			if dropped[sorted[i].ID] {
				break
			}
			if dropped[sorted[j].ID] {
				continue
			}

			score := NameSimilarity(sorted[i].Name, sorted[j].Name)
			if score < mergeThreshold {
				continue
			}

			keep, drop, reason := pickSurvivor(sorted[i], sorted[j])

			action := ResolutionDeactivate
			if score >= deleteThreshold && drop.PlanRefs == 0 {
				action = ResolutionDelete
			}

			dropped[drop.ID] = true
			resolutions = append(resolutions, DuplicateResolution{
				KeepID:     keep.ID,
				KeepName:   keep.Name,
				DropID:     drop.ID,
				DropName:   drop.Name,
				Action:     action,
				Similarity: score,
				Reason:     reason,
			})
		}
	}

	a.logger.Info("Resolved name duplicates", "resolutions", len(resolutions))
	return resolutions
}

// pickSurvivor выбирает выжившую запись пары по приоритету:
// ссылки из планов, активность, полнота содержимого
func pickSurvivor(a, b *catalog.ExerciseRecord) (keep, drop *catalog.ExerciseRecord, reason string) {
	switch {
	case a.PlanRefs > 0 && b.PlanRefs == 0:
		return a, b, "referenced by workout plans"
	case b.PlanRefs > 0 && a.PlanRefs == 0:
		return b, a, "referenced by workout plans"
	case a.Active && !b.Active:
		return a, b, "active record preferred"
	case b.Active && !a.Active:
		return b, a, "active record preferred"
	case a.Completeness() >= b.Completeness():
		return a, b, "more complete content"
	default:
		return b, a, "more complete content"
	}
}

// memberOf формирует участника кластера из записи каталога
func memberOf(rec *catalog.ExerciseRecord) ClusterMember {
	return ClusterMember{ID: rec.ID, Name: rec.Name, Active: rec.Active}
}

// sortedByName возвращает копию списка, отсортированную по имени и
// идентификатору. Детерминированный порядок делает результат жадного
// прохода воспроизводимым от запуска к запуску.
func sortedByName(records []*catalog.ExerciseRecord) []*catalog.ExerciseRecord {
	sorted := make([]*catalog.ExerciseRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		ni := strings.ToLower(sorted[i].Name)
		nj := strings.ToLower(sorted[j].Name)
		if ni != nj {
			return ni < nj
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// equipmentKey канонический ключ набора оборудования для сравнения
func equipmentKey(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	normalized := make([]string, 0, len(labels))
	for _, l := range labels {
		normalized = append(normalized, Normalize(l))
	}
	sort.Strings(normalized)
	return strings.Join(normalized, "|")
}
