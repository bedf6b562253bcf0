package neat

import (
	"fmt"
	"time"

	"gopkg.in/ini.v1"
)

// Config stores the configuration parameters for the evolution engine.
type Config struct {
	Population PopulationConfig `yaml:"population"`
	Speciation SpeciationConfig `yaml:"speciation"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Episode    EpisodeConfig    `yaml:"episode"`
}

// PopulationConfig holds parameters of the generation transition.
type PopulationConfig struct {
	DesiredPopulation int  `ini:"desired_population" yaml:"desired_population"` // Soft target for between-species crossover
	MaxSpecies        int  `ini:"max_species" yaml:"max_species"`               // Weak species are pruned above this count
	KeptSpecies       int  `ini:"kept_species" yaml:"kept_species"`             // Species kept after weak pruning
	MaxStaleness      int  `ini:"max_staleness" yaml:"max_staleness"`           // Generations without improvement before removal
	FitnessSharing    bool `ini:"fitness_sharing" yaml:"fitness_sharing"`       // Divide fitness by the size of large species
	SharingMinSize    int  `ini:"sharing_min_size" yaml:"sharing_min_size"`     // Species smaller than this are not shared
}

// SpeciationConfig holds the compatibility distance parameters.
type SpeciationConfig struct {
	CompatibilityThreshold float64 `ini:"compatibility_threshold" yaml:"compatibility_threshold"`
	DisjointCoefficient    float64 `ini:"disjoint_coefficient" yaml:"disjoint_coefficient"`
	WeightCoefficient      float64 `ini:"weight_coefficient" yaml:"weight_coefficient"`
	SmallGenomeSize        int     `ini:"small_genome_size" yaml:"small_genome_size"` // N is floored to 1 below this gene count
}

// MutationConfig holds parameters of the mutation pass.
type MutationConfig struct {
	MutationRate float64 `ini:"mutation_rate" yaml:"mutation_rate"` // Probability that a genome is mutated once per generation
	WeightRange  float64 `ini:"weight_range" yaml:"weight_range"`   // New weights are drawn from [-WeightRange, WeightRange)
	MaxAttempts  int     `ini:"max_attempts" yaml:"max_attempts"`   // Attempts to place a new connection before giving up
}

// EpisodeConfig holds the per-trial timeouts.
type EpisodeConfig struct {
	StuckTimeout  time.Duration `ini:"stuck_timeout" yaml:"stuck_timeout"`
	FinishTimeout time.Duration `ini:"finish_timeout" yaml:"finish_timeout"`
}

// DefaultConfig returns the configuration the engine was tuned with.
func DefaultConfig() *Config {
	return &Config{
		Population: PopulationConfig{
			DesiredPopulation: 300,
			MaxSpecies:        30,
			KeptSpecies:       15,
			MaxStaleness:      15,
			FitnessSharing:    true,
			SharingMinSize:    20,
		},
		Speciation: SpeciationConfig{
			CompatibilityThreshold: 3.0,
			DisjointCoefficient:    0.4,
			WeightCoefficient:      0.1,
			SmallGenomeSize:        20,
		},
		Mutation: MutationConfig{
			MutationRate: 0.2,
			WeightRange:  2.0,
			MaxAttempts:  20,
		},
		Episode: EpisodeConfig{
			StuckTimeout:  2 * time.Second,
			FinishTimeout: 20 * time.Second,
		},
	}
}

// LoadConfig loads configuration parameters from an INI file.
// Keys missing from the file keep their DefaultConfig values.
func LoadConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}
	return parseConfig(cfg)
}

// ParseConfig reads configuration from raw INI bytes.
func ParseConfig(data []byte) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return parseConfig(cfg)
}

func parseConfig(cfg *ini.File) (*Config, error) {
	config := DefaultConfig()

	if err := cfg.Section("Population").MapTo(&config.Population); err != nil {
		return nil, fmt.Errorf("failed to map [Population] section: %w", err)
	}
	if err := cfg.Section("Speciation").MapTo(&config.Speciation); err != nil {
		return nil, fmt.Errorf("failed to map [Speciation] section: %w", err)
	}
	if err := cfg.Section("Mutation").MapTo(&config.Mutation); err != nil {
		return nil, fmt.Errorf("failed to map [Mutation] section: %w", err)
	}
	episode := cfg.Section("Episode")
	if err := episode.MapTo(&config.Episode); err != nil {
		return nil, fmt.Errorf("failed to map [Episode] section: %w", err)
	}
	// MapTo skips durations that are not positive; read them directly so
	// Validate sees what the file says.
	for name, field := range map[string]*time.Duration{
		"stuck_timeout":  &config.Episode.StuckTimeout,
		"finish_timeout": &config.Episode.FinishTimeout,
	} {
		if !episode.HasKey(name) {
			continue
		}
		d, err := episode.Key(name).Duration()
		if err != nil {
			return nil, fmt.Errorf("config error: %s: %w", name, err)
		}
		*field = d
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration values for consistency.
func (c *Config) Validate() error {
	if c.Population.DesiredPopulation <= 0 {
		return fmt.Errorf("config error: desired_population must be positive")
	}
	if c.Population.MaxSpecies <= 0 {
		return fmt.Errorf("config error: max_species must be positive")
	}
	if c.Population.KeptSpecies <= 0 || c.Population.KeptSpecies > c.Population.MaxSpecies {
		return fmt.Errorf("config error: kept_species must be between 1 and max_species")
	}
	if c.Population.MaxStaleness <= 0 {
		return fmt.Errorf("config error: max_staleness must be positive")
	}
	if c.Population.SharingMinSize <= 0 {
		return fmt.Errorf("config error: sharing_min_size must be positive")
	}
	if c.Speciation.CompatibilityThreshold <= 0 {
		return fmt.Errorf("config error: compatibility_threshold must be positive")
	}
	if c.Speciation.DisjointCoefficient < 0 {
		return fmt.Errorf("config error: disjoint_coefficient cannot be negative")
	}
	if c.Speciation.WeightCoefficient < 0 {
		return fmt.Errorf("config error: weight_coefficient cannot be negative")
	}
	if c.Mutation.MutationRate < 0 || c.Mutation.MutationRate > 1 {
		return fmt.Errorf("config error: mutation_rate must be between 0 and 1")
	}
	if c.Mutation.WeightRange <= 0 {
		return fmt.Errorf("config error: weight_range must be positive")
	}
	if c.Mutation.MaxAttempts <= 0 {
		return fmt.Errorf("config error: max_attempts must be positive")
	}
	if c.Episode.StuckTimeout <= 0 || c.Episode.FinishTimeout <= 0 {
		return fmt.Errorf("config error: episode timeouts must be positive")
	}
	return nil
}
