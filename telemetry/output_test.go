package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/baldhumanity/neat-mario/agent"
	"github.com/baldhumanity/neat-mario/episode"
	"github.com/baldhumanity/neat-mario/neat"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	assert.Nil(t, om)

	assert.NoError(t, om.WriteConfig(neat.DefaultConfig()))
	assert.NoError(t, om.WriteGeneration(neat.GenerationStats{}))
	assert.NoError(t, om.WriteEpisode(agent.FitnessReport{}))
	om.GenerationEnd(neat.GenerationStats{})
	assert.NoError(t, om.Close())
	assert.Empty(t, om.RunID())
}

func TestWriteConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	require.NoError(t, err)
	defer om.Close()

	cfg := neat.DefaultConfig()
	require.NoError(t, om.WriteConfig(cfg))

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	var loaded neat.Config
	require.NoError(t, yaml.Unmarshal(data, &loaded))
	assert.Equal(t, *cfg, loaded)
}

func TestGenerationAndEpisodeRows(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	require.NoError(t, err)
	_, err = uuid.Parse(om.RunID())
	require.NoError(t, err)

	om.GenerationEnd(neat.GenerationStats{Generation: 1, Species: 2, Population: 300, MaxFitness: 42})
	om.GenerationEnd(neat.GenerationStats{Generation: 2, Species: 3, Population: 310, MaxFitness: 57.5})
	om.EpisodeEnd(agent.FitnessReport{
		Episode:    1,
		Cursor:     neat.Cursor{Species: 1, Individual: 4},
		SpeciesID:  7,
		Outcome:    episode.Dead,
		RawFitness: 120,
		Fitness:    6,
		Ticks:      300,
	})
	require.NoError(t, om.Close())

	f, err := os.Open(filepath.Join(dir, "generations.csv"))
	require.NoError(t, err)
	defer f.Close()
	var generations []*GenerationRecord
	require.NoError(t, gocsv.UnmarshalFile(f, &generations))
	require.Len(t, generations, 2)
	assert.Equal(t, om.RunID(), generations[0].RunID)
	assert.Equal(t, 2, generations[1].Generation)
	assert.Equal(t, 310, generations[1].Population)
	assert.InDelta(t, 57.5, generations[1].MaxFitness, 1e-9)

	f2, err := os.Open(filepath.Join(dir, "episodes.csv"))
	require.NoError(t, err)
	defer f2.Close()
	var episodes []*EpisodeRecord
	require.NoError(t, gocsv.UnmarshalFile(f2, &episodes))
	require.Len(t, episodes, 1)
	assert.Equal(t, "dead", episodes[0].Outcome)
	assert.Equal(t, 4, episodes[0].Individual)
	assert.Equal(t, 7, episodes[0].SpeciesID)
	assert.InDelta(t, 6.0, episodes[0].Fitness, 1e-9)
}
