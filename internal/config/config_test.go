package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"EXSOLVER_TOP_N", "EXSOLVER_MIN_SIMILARITY", "EXSOLVER_WATCH_EXAMPLES", "EXSOLVER_EXAMPLES_DIR"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, 0.2, cfg.MinSimilarity)
	assert.True(t, cfg.WatchExamples)
	assert.Equal(t, "./examples", cfg.ExamplesDir)
	assert.Equal(t, "exsolver", cfg.TemporalTaskQueue)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EXSOLVER_TOP_N", "3")
	t.Setenv("EXSOLVER_MIN_SIMILARITY", "0.35")
	t.Setenv("EXSOLVER_WATCH_EXAMPLES", "false")
	t.Setenv("EXSOLVER_MAX_UPLOAD_MB", "2")

	cfg := Load()
	assert.Equal(t, 3, cfg.TopN)
	assert.Equal(t, 0.35, cfg.MinSimilarity)
	assert.False(t, cfg.WatchExamples)
	assert.Equal(t, int64(2<<20), cfg.MaxUploadBytes())
}

func TestLoadMalformedFallsBack(t *testing.T) {
	t.Setenv("EXSOLVER_TOP_N", "five")
	t.Setenv("EXSOLVER_MIN_SIMILARITY", "low")
	t.Setenv("EXSOLVER_WATCH_EXAMPLES", "maybe")

	cfg := Load()
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, 0.2, cfg.MinSimilarity)
	assert.True(t, cfg.WatchExamples)
}
