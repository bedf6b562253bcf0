package neat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, 300, config.Population.DesiredPopulation)
	assert.Equal(t, 30, config.Population.MaxSpecies)
	assert.Equal(t, 15, config.Population.KeptSpecies)
	assert.Equal(t, 15, config.Population.MaxStaleness)
	assert.Equal(t, 3.0, config.Speciation.CompatibilityThreshold)
	assert.Equal(t, 0.2, config.Mutation.MutationRate)
	assert.Equal(t, 2*time.Second, config.Episode.StuckTimeout)
	assert.Equal(t, 20*time.Second, config.Episode.FinishTimeout)
}

func TestParseConfigOverridesDefaults(t *testing.T) {
	data := []byte(`
[Population]
desired_population = 150
fitness_sharing = false

[Mutation]
mutation_rate = 0.5

[Episode]
stuck_timeout = 1500ms
`)
	config, err := ParseConfig(data)
	require.NoError(t, err)
	assert.Equal(t, 150, config.Population.DesiredPopulation)
	assert.False(t, config.Population.FitnessSharing)
	assert.Equal(t, 0.5, config.Mutation.MutationRate)
	assert.Equal(t, 1500*time.Millisecond, config.Episode.StuckTimeout)

	// Untouched keys keep their defaults.
	assert.Equal(t, 30, config.Population.MaxSpecies)
	assert.Equal(t, 0.4, config.Speciation.DisjointCoefficient)
	assert.Equal(t, 20*time.Second, config.Episode.FinishTimeout)
}

func TestParseConfigValidates(t *testing.T) {
	cases := map[string]string{
		"kept above max":   "[Population]\nmax_species = 10\nkept_species = 12\n",
		"bad rate":         "[Mutation]\nmutation_rate = 1.5\n",
		"zero threshold":   "[Speciation]\ncompatibility_threshold = 0\n",
		"zero timeout":     "[Episode]\nfinish_timeout = 0s\n",
		"negative timeout": "[Episode]\nstuck_timeout = -5s\n",
		"bad duration":     "[Episode]\nstuck_timeout = soon\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(data))
			assert.ErrorContains(t, err, "config error")
		})
	}
}

func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig("../examples/sidescroller/config.ini")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)

	_, err = LoadConfig("does-not-exist.ini")
	assert.Error(t, err)
}
