package pipeline

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exercisekb/catalog"
)

func testOptions(workers int) Options {
	return Options{
		DescThreshold:   0.7,
		TechThreshold:   0.8,
		NameThreshold:   0.7,
		MergeThreshold:  0.9,
		DeleteThreshold: 0.99,
		Workers:         workers,
	}
}

const chestDescription = "Lie on the flat bench, lower the barbell to the chest, then press upward until the arms are fully extended."
const chestDescriptionVariant = "Lie on the flat bench, lower the barbell to the chest, then press upward until the arms are extended."

func chestRecord(id, name, description string, equipment []string) *catalog.ExerciseRecord {
	return &catalog.ExerciseRecord{
		ID:                 id,
		Name:               name,
		PrimaryMuscleGroup: "Chest",
		Description:        description,
		CommonMistakes:     []string{"Bouncing the bar off the chest", "Flaring the elbows"},
		Equipment:          equipment,
		DifficultyLevel:    catalog.DifficultyIntermediate,
		Active:             true,
	}
}

// TestAnalyzeEndToEnd два жима с почти одинаковыми описаниями образуют
// один кластер по оси описания, тренажерная запись остаётся вне его
func TestAnalyzeEndToEnd(t *testing.T) {
	records := []*catalog.ExerciseRecord{
		chestRecord("1", "Bench Press", chestDescription, []string{"Barbell", "Bench"}),
		chestRecord("2", "Barbell Bench Press", chestDescriptionVariant, []string{"Barbell", "Bench"}),
		chestRecord("3", "Pec Deck", "Squeeze the handles together in front of the torso while seated upright.", []string{"Machine"}),
	}

	report := NewAnalyzer(testOptions(1)).Analyze(records)

	require.Len(t, report.Clusters, 1)
	cluster := report.Clusters[0]
	assert.Equal(t, "description", cluster.Axis)
	assert.GreaterOrEqual(t, cluster.Score, 0.7)
	require.Len(t, cluster.Members, 2)
	for _, m := range cluster.Members {
		assert.NotEqual(t, "3", m.ID)
	}

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 3, report.Summary.TotalRecords)
	assert.Equal(t, 3, report.Summary.ActiveRecords)
	assert.Equal(t, 1, report.Summary.DuplicateClusters)
}

// TestAnalyzeDeterministicAcrossWorkers число воркеров не влияет
// на содержание отчёта
func TestAnalyzeDeterministicAcrossWorkers(t *testing.T) {
	gofakeit.Seed(42)

	groups := []string{"Chest", "Back", "Legs", "Shoulders", "Biceps"}
	var records []*catalog.ExerciseRecord
	for i := 0; i < 60; i++ {
		records = append(records, &catalog.ExerciseRecord{
			ID:                 fmt.Sprintf("rec-%03d", i),
			Name:               fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), gofakeit.NounConcrete()),
			PrimaryMuscleGroup: groups[i%len(groups)],
			Description:        gofakeit.Sentence(12),
			TechniqueText:      gofakeit.Sentence(20),
			Equipment:          []string{gofakeit.RandomString([]string{"Barbell", "Dumbbell", "Machine", "Bodyweight"})},
			DifficultyLevel:    catalog.DifficultyIntermediate,
			Active:             true,
		})
	}
	// Гарантированная пара дубликатов в одной группе
	records = append(records,
		chestRecord("dup-1", "Incline Press", chestDescription, []string{"Barbell"}),
		chestRecord("dup-2", "Incline Barbell Press", chestDescriptionVariant, []string{"Barbell"}),
	)

	serial := NewAnalyzer(testOptions(1)).Analyze(records)
	parallel := NewAnalyzer(testOptions(4)).Analyze(records)

	require.Equal(t, len(serial.Clusters), len(parallel.Clusters))
	for i := range serial.Clusters {
		assert.Equal(t, serial.Clusters[i].MuscleGroup, parallel.Clusters[i].MuscleGroup)
		assert.Equal(t, serial.Clusters[i].Axis, parallel.Clusters[i].Axis)
		assert.Equal(t, serial.Clusters[i].Members, parallel.Clusters[i].Members)
	}
	assert.Equal(t, serial.GenericDescriptions, parallel.GenericDescriptions)
	assert.Equal(t, serial.FieldProblems, parallel.FieldProblems)
	assert.Equal(t, serial.NameDuplicates, parallel.NameDuplicates)
	assert.Equal(t, serial.Summary, parallel.Summary)
}

func TestAnalyzeReportsGenericDescriptions(t *testing.T) {
	records := []*catalog.ExerciseRecord{
		chestRecord("1", "Cable Crossover", "Exercise for strengthening the chest.", []string{"Cable"}),
	}

	report := NewAnalyzer(testOptions(1)).Analyze(records)
	require.Len(t, report.GenericDescriptions, 1)
	assert.Equal(t, "1", report.GenericDescriptions[0].ID)
	assert.Equal(t, 1, report.Summary.GenericDescriptions)
}

// TestAnalyzeEmptySnapshot пустой снапшот даёт пустой отчёт без паники
func TestAnalyzeEmptySnapshot(t *testing.T) {
	report := NewAnalyzer(testOptions(1)).Analyze(nil)
	assert.Equal(t, 0, report.Summary.TotalRecords)
	assert.Empty(t, report.Clusters)
	assert.NotEmpty(t, report.RunID)
}
