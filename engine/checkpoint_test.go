package engine

import (
	"path/filepath"
	"testing"

	"github.com/cainem/hilldescent-go/grid"
	"github.com/cainem/hilldescent-go/objective"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkpointTestConfig() *Config {
	return &Config{
		PopulationSize: 24,
		TargetRegions:  4,
		WorldSeed:      3,
		ParamRange:     []grid.Bounds{{Lo: -3, Hi: 3}},
		NumWorkers:     1,
	}
}

func TestSaveLoadCheckpointRoundTrip(t *testing.T) {
	e := NewEngine(checkpointTestConfig(), objective.Sphere{})
	e.RunID = "test-run-id"
	for i := 0; i < 5; i++ {
		e.TrainingRun(NoneData{FloorValue: 0})
	}

	path := filepath.Join(t.TempDir(), "checkpoint.json")
	require.NoError(t, e.SaveCheckpoint(path))

	loaded, err := LoadCheckpoint(path)
	require.NoError(t, err)
	assert.Equal(t, e.RunID, loaded.RunID)
	assert.Equal(t, e.Epoch, loaded.Epoch)
	assert.Equal(t, e.Pool.Len(), len(loaded.Organisms))
	assert.Equal(t, e.HasBest, loaded.HasBest)
	assert.Equal(t, e.BestScore, loaded.BestScore)
}

func TestResumeFromCheckpointPreservesGeneticState(t *testing.T) {
	e := NewEngine(checkpointTestConfig(), objective.Sphere{})
	for i := 0; i < 5; i++ {
		e.TrainingRun(NoneData{FloorValue: 0})
	}
	wantBest := e.GetBestScore()
	wantOrganismCount := e.Pool.Len()

	path := filepath.Join(t.TempDir(), "checkpoint.json")
	require.NoError(t, e.SaveCheckpoint(path))

	resumed, err := ResumeFromCheckpoint(path, objective.Sphere{})
	require.NoError(t, err)

	assert.Equal(t, e.Epoch, resumed.Epoch)
	assert.Equal(t, wantOrganismCount, resumed.Pool.Len())
	assert.Equal(t, wantBest, resumed.GetBestScore())
	assert.Equal(t, e.GetBestParams(), resumed.GetBestParams())

	for _, id := range e.Pool.IDs() {
		orig := e.Pool.Get(id)
		restored := resumed.Pool.Get(id)
		require.NotNil(t, restored)
		assert.Equal(t, orig.Phenotype.Expressed, restored.Phenotype.Expressed)
		assert.Equal(t, orig.Phenotype.ExpressedHash, restored.Phenotype.ExpressedHash)
		assert.Equal(t, orig.Age, restored.Age)
		assert.Equal(t, orig.Score, restored.Score)
	}
}

func TestResumeFromCheckpointContinuesTraining(t *testing.T) {
	e := NewEngine(checkpointTestConfig(), objective.Sphere{})
	for i := 0; i < 3; i++ {
		e.TrainingRun(NoneData{FloorValue: 0})
	}

	path := filepath.Join(t.TempDir(), "checkpoint.json")
	require.NoError(t, e.SaveCheckpoint(path))

	resumed, err := ResumeFromCheckpoint(path, objective.Sphere{})
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		resumed.TrainingRun(NoneData{FloorValue: 0})
	})
	assert.Equal(t, e.Epoch+1, resumed.Epoch)
}

func TestResumeFromCheckpointAvoidsOrganismIDCollision(t *testing.T) {
	e := NewEngine(checkpointTestConfig(), objective.Sphere{})
	for i := 0; i < 3; i++ {
		e.TrainingRun(NoneData{FloorValue: 0})
	}

	path := filepath.Join(t.TempDir(), "checkpoint.json")
	require.NoError(t, e.SaveCheckpoint(path))

	resumed, err := ResumeFromCheckpoint(path, objective.Sphere{})
	require.NoError(t, err)

	var maxExisting uint64
	existingIDs := make(map[uint64]bool)
	for _, id := range resumed.Pool.IDs() {
		existingIDs[id] = true
		if id > maxExisting {
			maxExisting = id
		}
	}

	resumed.TrainingRun(NoneData{FloorValue: 0})
	for _, id := range resumed.Pool.IDs() {
		if !existingIDs[id] {
			assert.Greater(t, id, maxExisting)
		}
	}
}

func TestLoadCheckpointErrorsOnMissingFile(t *testing.T) {
	_, err := LoadCheckpoint(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestAutoCheckpointerRespectsInterval(t *testing.T) {
	e := NewEngine(checkpointTestConfig(), objective.Sphere{})
	path := filepath.Join(t.TempDir(), "auto.json")
	ac := NewAutoCheckpointer(e, path, 3)

	assert.False(t, ac.ShouldSave(0))
	assert.False(t, ac.ShouldSave(1))
	assert.False(t, ac.ShouldSave(2))
	assert.True(t, ac.ShouldSave(3))

	require.NoError(t, ac.Save(3))
	assert.Equal(t, 3, ac.LastSaved)
	assert.False(t, ac.ShouldSave(3))
}

func TestAutoCheckpointerDisabledWithNonPositiveInterval(t *testing.T) {
	e := NewEngine(checkpointTestConfig(), objective.Sphere{})
	ac := NewAutoCheckpointer(e, filepath.Join(t.TempDir(), "auto.json"), 0)
	assert.False(t, ac.ShouldSave(10))
}

func TestAutoCheckpointerSaveFinalAlwaysWrites(t *testing.T) {
	e := NewEngine(checkpointTestConfig(), objective.Sphere{})
	path := filepath.Join(t.TempDir(), "final.json")
	ac := NewAutoCheckpointer(e, path, 0)
	require.NoError(t, ac.SaveFinal())

	_, err := LoadCheckpoint(path)
	require.NoError(t, err)
}
