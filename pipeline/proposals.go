package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"exercisekb/catalog"
	"exercisekb/normalization"
	"exercisekb/quality"
)

// Формирование предложений изменений. Анализ никогда не пишет в каталог
// напрямую: каждая трансформация выдаёт список предложений, который
// сохраняется в файл, проходит ручную проверку и применяется отдельным
// явным шагом. Предложение создаётся только когда after отличается
// от before.

// proposalFile формат файла предложений на диске
type proposalFile struct {
	GeneratedAt time.Time               `json:"generated_at"`
	Total       int                     `json:"total"`
	Proposals   []catalog.FieldProposal `json:"proposals"`
}

// SimplifyProposals строит предложения по упрощению текстов техники
func SimplifyProposals(records []*catalog.ExerciseRecord, simplifier *quality.Simplifier) []catalog.FieldProposal {
	var proposals []catalog.FieldProposal
	for _, rec := range records {
		after := simplifier.Simplify(rec.TechniqueText, rec.Name, rec.Equipment)
		if after == rec.TechniqueText {
			continue
		}
		proposals = append(proposals, catalog.FieldProposal{
			ID:     rec.ID,
			Name:   rec.Name,
			Field:  catalog.FieldTechniqueText,
			Before: rec.TechniqueText,
			After:  after,
		})
	}
	return proposals
}

// NameProposals строит предложения по стандартизации имён
func NameProposals(records []*catalog.ExerciseRecord) []catalog.FieldProposal {
	var proposals []catalog.FieldProposal
	for _, rec := range records {
		after := normalization.CleanName(rec.Name)
		if after == rec.Name || after == "" {
			continue
		}
		proposals = append(proposals, catalog.FieldProposal{
			ID:     rec.ID,
			Name:   rec.Name,
			Field:  catalog.FieldName,
			Before: rec.Name,
			After:  after,
		})
	}
	return proposals
}

// DescriptionProposals строит предложения по улучшению описаний
func DescriptionProposals(records []*catalog.ExerciseRecord, analyzer *quality.Analyzer) []catalog.FieldProposal {
	var proposals []catalog.FieldProposal
	for _, rec := range records {
		after, changed := analyzer.ImproveDescription(rec)
		if !changed {
			continue
		}
		proposals = append(proposals, catalog.FieldProposal{
			ID:     rec.ID,
			Name:   rec.Name,
			Field:  catalog.FieldDescription,
			Before: rec.Description,
			After:  after,
		})
	}
	return proposals
}

// DifficultyProposals строит предложения по смене уровня сложности
func DifficultyProposals(records []*catalog.ExerciseRecord, analyzer *quality.Analyzer) []catalog.FieldProposal {
	var proposals []catalog.FieldProposal
	for _, rec := range records {
		suggested := analyzer.SuggestDifficulty(rec.Name, rec.TechniqueText, rec.DifficultyLevel)
		if suggested == "" {
			continue
		}
		proposals = append(proposals, catalog.FieldProposal{
			ID:     rec.ID,
			Name:   rec.Name,
			Field:  catalog.FieldDifficultyLevel,
			Before: string(rec.DifficultyLevel),
			After:  string(suggested),
		})
	}
	return proposals
}

// SaveProposals сохраняет предложения в JSON-файл для ручной проверки
func SaveProposals(path string, proposals []catalog.FieldProposal) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create proposals file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(proposalFile{
		GeneratedAt: time.Now().UTC(),
		Total:       len(proposals),
		Proposals:   proposals,
	}); err != nil {
		return fmt.Errorf("failed to encode proposals: %w", err)
	}
	return nil
}

// LoadProposals загружает предложения из JSON-файла перед применением
func LoadProposals(path string) ([]catalog.FieldProposal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read proposals file: %w", err)
	}

	var pf proposalFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse proposals file: %w", err)
	}

	for _, p := range pf.Proposals {
		if p.ID == "" {
			return nil, fmt.Errorf("proposals file contains an entry without an id")
		}
		if !p.Field.IsValid() {
			return nil, fmt.Errorf("proposal for %s targets unknown field %q", p.ID, p.Field)
		}
	}
	return pf.Proposals, nil
}
