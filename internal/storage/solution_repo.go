package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"exsolver/internal/models"
	"exsolver/internal/util"

	"github.com/jackc/pgx/v5"
)

const solutionsSchema = `
CREATE TABLE IF NOT EXISTS exercise_solutions (
  solution_id   UUID PRIMARY KEY,
  exercise_id   TEXT,
  title         TEXT,
  problem_text  TEXT NOT NULL,
  solution_text TEXT NOT NULL,
  confidence    DOUBLE PRECISION NOT NULL,
  diagnostic    TEXT NOT NULL,
  examples_used JSONB NOT NULL DEFAULT '[]'::jsonb,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS exercise_solutions_exercise_idx ON exercise_solutions (exercise_id);
CREATE INDEX IF NOT EXISTS exercise_solutions_created_idx ON exercise_solutions (created_at DESC)`

const defaultListLimit = 50

type SolutionRepo struct {
	db *DB
}

func NewSolutionRepo(db *DB) *SolutionRepo {
	return &SolutionRepo{db: db}
}

func (r *SolutionRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Pool.Exec(ctx, solutionsSchema); err != nil {
		return fmt.Errorf("ensure solutions schema: %w", err)
	}
	return nil
}

// Insert stores s and returns it with CreatedAt set by the database.
func (r *SolutionRepo) Insert(ctx context.Context, s models.Solution) (models.Solution, error) {
	used := s.ExamplesUsed
	if used == nil {
		used = []models.ExampleUse{}
	}
	payload, err := json.Marshal(used)
	if err != nil {
		return models.Solution{}, fmt.Errorf("marshal examples used: %w", err)
	}
	err = r.db.Pool.QueryRow(ctx, `
INSERT INTO exercise_solutions (solution_id, exercise_id, title, problem_text, solution_text, confidence, diagnostic, examples_used)
VALUES ($1::uuid, NULLIF($2,''), NULLIF($3,''), $4, $5, $6, $7, $8::jsonb)
RETURNING created_at`,
		s.SolutionID, s.ExerciseID, s.Title, s.ProblemText, s.SolutionText, s.Confidence, s.Diagnostic, payload,
	).Scan(&s.CreatedAt)
	if err != nil {
		return models.Solution{}, fmt.Errorf("insert solution: %w", err)
	}
	s.ExamplesUsed = used
	return s, nil
}

func (r *SolutionRepo) Get(ctx context.Context, solutionID string) (models.Solution, error) {
	row := r.db.Pool.QueryRow(ctx, `
SELECT solution_id::text, COALESCE(exercise_id,''), COALESCE(title,''), problem_text, solution_text,
       confidence, diagnostic, examples_used, created_at
FROM exercise_solutions
WHERE solution_id::text=$1`, solutionID)
	s, err := scanSolution(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Solution{}, fmt.Errorf("solution %s: %w", solutionID, util.ErrSolutionNotFound)
	}
	if err != nil {
		return models.Solution{}, fmt.Errorf("get solution: %w", err)
	}
	return s, nil
}

// List returns the most recent solutions first. A non-positive limit means 50.
func (r *SolutionRepo) List(ctx context.Context, limit int) ([]models.Solution, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := r.db.Pool.Query(ctx, `
SELECT solution_id::text, COALESCE(exercise_id,''), COALESCE(title,''), problem_text, solution_text,
       confidence, diagnostic, examples_used, created_at
FROM exercise_solutions
ORDER BY created_at DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list solutions: %w", err)
	}
	defer rows.Close()

	out := make([]models.Solution, 0)
	for rows.Next() {
		s, err := scanSolution(rows)
		if err != nil {
			return nil, fmt.Errorf("scan solution: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate solutions: %w", err)
	}
	return out, nil
}

func scanSolution(row pgx.Row) (models.Solution, error) {
	var (
		s    models.Solution
		used []byte
	)
	if err := row.Scan(&s.SolutionID, &s.ExerciseID, &s.Title, &s.ProblemText, &s.SolutionText,
		&s.Confidence, &s.Diagnostic, &used, &s.CreatedAt); err != nil {
		return models.Solution{}, err
	}
	s.ExamplesUsed = []models.ExampleUse{}
	if len(used) > 0 {
		if err := json.Unmarshal(used, &s.ExamplesUsed); err != nil {
			return models.Solution{}, fmt.Errorf("decode examples used: %w", err)
		}
	}
	return s, nil
}
