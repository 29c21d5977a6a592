package storage

import (
	"context"
	"os"
	"testing"

	"exsolver/internal/models"
	"exsolver/internal/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a disposable database named by EXSOLVER_TEST_POSTGRES_URL.
func testDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("EXSOLVER_TEST_POSTGRES_URL")
	if dsn == "" {
		t.Skip("EXSOLVER_TEST_POSTGRES_URL not set")
	}
	db, err := NewDB(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestSolutionRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSolutionRepo(testDB(t))
	require.NoError(t, repo.EnsureSchema(ctx))

	in := models.Solution{
		SolutionID:   uuid.NewString(),
		ExerciseID:   "ex-42",
		ProblemText:  "Achat de marchandises pour 250 000.",
		SolutionText: "Débit 60100 : 250 000",
		Confidence:   0.82,
		Diagnostic:   "Forte similarité avec les exemples connus.",
		ExamplesUsed: []models.ExampleUse{{ID: "achat.pdf", Similarity: 0.91, Category: "journal_entry"}},
	}
	saved, err := repo.Insert(ctx, in)
	require.NoError(t, err)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := repo.Get(ctx, in.SolutionID)
	require.NoError(t, err)
	assert.Equal(t, in.ExamplesUsed, got.ExamplesUsed)
	assert.Equal(t, in.SolutionText, got.SolutionText)
	assert.Empty(t, got.Title)

	list, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, list)
}

func TestSolutionRepoGetMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewSolutionRepo(testDB(t))
	require.NoError(t, repo.EnsureSchema(ctx))

	_, err := repo.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, util.ErrSolutionNotFound)
}
