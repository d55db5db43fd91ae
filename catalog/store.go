package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Store обертка для работы с базой каталога упражнений.
// Пайплайн читает один неизменяемый снапшот и применяет принятые
// предложения одной транзакцией; частичной записи не бывает.
type Store struct {
	conn   *sql.DB
	logger *slog.Logger
}

const exercisesSchema = `
CREATE TABLE IF NOT EXISTS exercises (
	id                   TEXT PRIMARY KEY,
	name                 TEXT NOT NULL,
	primary_muscle_group TEXT NOT NULL,
	synergist_muscles    TEXT NOT NULL DEFAULT '[]',
	description          TEXT NOT NULL DEFAULT '',
	technique_text       TEXT NOT NULL DEFAULT '',
	common_mistakes      TEXT NOT NULL DEFAULT '[]',
	equipment            TEXT NOT NULL DEFAULT '[]',
	difficulty_level     TEXT NOT NULL DEFAULT 'Beginner',
	active               INTEGER NOT NULL DEFAULT 1,
	plan_refs            INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_exercises_muscle_group ON exercises(primary_muscle_group);
CREATE INDEX IF NOT EXISTS idx_exercises_name ON exercises(name);
`

// NewStore открывает подключение к базе каталога и создает схему при необходимости
func NewStore(dbPath string) (*Store, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	// Для in-memory SQLite нужно ровно одно соединение, иначе каждое новое
	// соединение получает пустую БД без схемы.
	if isInMemory(dbPath) {
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping catalog database: %w", err)
	}

	store := &Store{
		conn:   conn,
		logger: slog.Default().With("component", "catalog_store"),
	}

	if _, err := conn.Exec(exercisesSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create exercises schema: %w", err)
	}

	return store, nil
}

// isInMemory определяет, что путь относится к in-memory SQLite
func isInMemory(dbPath string) bool {
	if dbPath == ":memory:" {
		return true
	}
	return strings.HasPrefix(dbPath, "file:") && strings.Contains(dbPath, "mode=memory")
}

// Close закрывает подключение к базе
func (s *Store) Close() error {
	return s.conn.Close()
}

// LoadSnapshot загружает полный снапшот каталога, отсортированный по имени.
// Неактивные записи включаются всегда: исторически деактивированные
// дубликаты должны попадать в анализ.
func (s *Store) LoadSnapshot(ctx context.Context) ([]*ExerciseRecord, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, name, primary_muscle_group, synergist_muscles, description,
		       technique_text, common_mistakes, equipment, difficulty_level,
		       active, plan_refs
		FROM exercises
		ORDER BY name COLLATE NOCASE ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query exercises: %w", err)
	}
	defer rows.Close()

	var records []*ExerciseRecord
	for rows.Next() {
		var (
			rec                          ExerciseRecord
			synergists, mistakes, equip  string
			active                       int
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.PrimaryMuscleGroup,
			&synergists, &rec.Description, &rec.TechniqueText, &mistakes,
			&equip, &rec.DifficultyLevel, &active, &rec.PlanRefs); err != nil {
			return nil, fmt.Errorf("failed to scan exercise row: %w", err)
		}
		rec.Active = active != 0
		rec.SynergistMuscles = decodeStrings(synergists)
		rec.CommonMistakes = decodeStrings(mistakes)
		rec.Equipment = decodeStrings(equip)
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exercise rows: %w", err)
	}

	s.logger.Info("Loaded catalog snapshot", "records", len(records))
	return records, nil
}

// Insert добавляет запись в каталог (используется сидированием и тестами)
func (s *Store) Insert(ctx context.Context, rec *ExerciseRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("exercise id is required")
	}
	if rec.Name == "" {
		return fmt.Errorf("exercise name is required")
	}

	active := 0
	if rec.Active {
		active = 1
	}

	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO exercises (id, name, primary_muscle_group, synergist_muscles,
			description, technique_text, common_mistakes, equipment,
			difficulty_level, active, plan_refs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.PrimaryMuscleGroup, encodeStrings(rec.SynergistMuscles),
		rec.Description, rec.TechniqueText, encodeStrings(rec.CommonMistakes),
		encodeStrings(rec.Equipment), string(rec.DifficultyLevel), active, rec.PlanRefs)
	if err != nil {
		return fmt.Errorf("failed to insert exercise %s: %w", rec.ID, err)
	}
	return nil
}

// ApplyProposals применяет принятые предложения одной транзакцией.
// Каждое предложение пишет ровно одно разрешённое поле; неизвестное поле —
// ошибка всей партии. Повторное применение того же набора идемпотентно.
func (s *Store) ApplyProposals(ctx context.Context, proposals []FieldProposal) (int, error) {
	if len(proposals) == 0 {
		return 0, nil
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin write-back transaction: %w", err)
	}
	defer tx.Rollback()

	applied := 0
	for _, p := range proposals {
		if !p.Field.IsValid() {
			return 0, fmt.Errorf("proposal for %s targets unknown field %q", p.ID, p.Field)
		}
		if p.Field == FieldDifficultyLevel && !DifficultyLevel(p.After).IsValid() {
			return 0, fmt.Errorf("proposal for %s carries invalid difficulty %q", p.ID, p.After)
		}

		// Имя поля подставляется из валидированного словаря, не из входа
		query := fmt.Sprintf("UPDATE exercises SET %s = ? WHERE id = ?", string(p.Field))
		res, err := tx.ExecContext(ctx, query, p.After, p.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to apply proposal for %s: %w", p.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			applied++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit write-back: %w", err)
	}

	s.logger.Info("Applied proposals", "total", len(proposals), "applied", applied)
	return applied, nil
}

// ApplyResolutions применяет решения по дубликатам: деактивация проигравших
// записей и удаление точных копий. Одна транзакция на весь набор.
func (s *Store) ApplyResolutions(ctx context.Context, deactivate, remove []string) error {
	if len(deactivate) == 0 && len(remove) == 0 {
		return nil
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin resolution transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range deactivate {
		if _, err := tx.ExecContext(ctx, "UPDATE exercises SET active = 0 WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to deactivate exercise %s: %w", id, err)
		}
	}
	for _, id := range remove {
		if _, err := tx.ExecContext(ctx, "DELETE FROM exercises WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete exercise %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit resolutions: %w", err)
	}

	s.logger.Info("Applied duplicate resolutions", "deactivated", len(deactivate), "deleted", len(remove))
	return nil
}

// Count возвращает количество записей в каталоге
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM exercises").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count exercises: %w", err)
	}
	return n, nil
}

// Get возвращает одну запись по идентификатору
func (s *Store) Get(ctx context.Context, id string) (*ExerciseRecord, error) {
	row := s.conn.QueryRowContext(ctx, `
		SELECT id, name, primary_muscle_group, synergist_muscles, description,
		       technique_text, common_mistakes, equipment, difficulty_level,
		       active, plan_refs
		FROM exercises WHERE id = ?`, id)

	var (
		rec                         ExerciseRecord
		synergists, mistakes, equip string
		active                      int
	)
	if err := row.Scan(&rec.ID, &rec.Name, &rec.PrimaryMuscleGroup,
		&synergists, &rec.Description, &rec.TechniqueText, &mistakes,
		&equip, &rec.DifficultyLevel, &active, &rec.PlanRefs); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("exercise %s not found", id)
		}
		return nil, fmt.Errorf("failed to load exercise %s: %w", id, err)
	}
	rec.Active = active != 0
	rec.SynergistMuscles = decodeStrings(synergists)
	rec.CommonMistakes = decodeStrings(mistakes)
	rec.Equipment = decodeStrings(equip)
	return &rec, nil
}

// encodeStrings сериализует список строк в JSON для хранения в колонке
func encodeStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// decodeStrings разбирает JSON-колонку со списком строк; мусор трактуется
// как пустой список, а не как ошибка загрузки
func decodeStrings(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}
