package neat

import (
	"math"
	"sort"
)

// Species represents a group of genetically similar genomes.
type Species struct {
	ID         int       // Unique identifier, never reused.
	Members    []*Genome // Kept fitness-descending between generations.
	Staleness  int       // Generations since TopFitness last improved.
	TopFitness float64   // Best fitness any member of this species ever reached.
}

// NewSpecies creates a species founded by a single genome.
func NewSpecies(id int, founder *Genome) *Species {
	return &Species{
		ID:      id,
		Members: []*Genome{founder},
	}
}

// Size returns the number of members.
func (s *Species) Size() int {
	return len(s.Members)
}

// Sort orders members by fitness, fittest first. Equal fitnesses keep their order.
func (s *Species) Sort() {
	sort.SliceStable(s.Members, func(i, j int) bool {
		return s.Members[i].Fitness > s.Members[j].Fitness
	})
}

// Representative returns the fittest member, the genome new candidates are compared against.
func (s *Species) Representative() *Genome {
	var best *Genome
	for _, g := range s.Members {
		if best == nil || g.Fitness > best.Fitness {
			best = g
		}
	}
	return best
}

// BestFitness returns the fitness of the fittest member, or -Inf for an empty species.
func (s *Species) BestFitness() float64 {
	if rep := s.Representative(); rep != nil {
		return rep.Fitness
	}
	return math.Inf(-1)
}

// GetFitnesses returns a slice containing the fitness values of all members.
func (s *Species) GetFitnesses() []float64 {
	fitnesses := make([]float64, 0, len(s.Members))
	for _, g := range s.Members {
		fitnesses = append(fitnesses, g.Fitness)
	}
	return fitnesses
}

// SameSpecies reports whether two genomes are within the compatibility threshold.
func SameSpecies(a, b *Genome, config *SpeciationConfig) bool {
	return a.Distance(b, config) < config.CompatibilityThreshold
}

// --------------------------- SpeciesSet ---------------------------

// SpeciesSet manages the ordered collection of species within a population.
type SpeciesSet struct {
	Species []*Species
	Config  *SpeciationConfig
}

// NewSpeciesSet creates an empty species set.
func NewSpeciesSet(config *SpeciationConfig) *SpeciesSet {
	return &SpeciesSet{Config: config}
}

// AddToPool places a genome in the first species whose representative is
// compatible with it, scanning species in order. When none is, a new species
// is appended with an id one above the largest existing id.
func (ss *SpeciesSet) AddToPool(g *Genome) *Species {
	for _, s := range ss.Species {
		rep := s.Representative()
		if rep != nil && SameSpecies(rep, g, ss.Config) {
			s.Members = append(s.Members, g)
			return s
		}
	}

	s := NewSpecies(ss.nextID(), g)
	ss.Species = append(ss.Species, s)
	return s
}

func (ss *SpeciesSet) nextID() int {
	if len(ss.Species) == 0 {
		return 0
	}
	maxID := ss.Species[0].ID
	for _, s := range ss.Species[1:] {
		if s.ID > maxID {
			maxID = s.ID
		}
	}
	return maxID + 1
}

// Population returns the total number of genomes across all species.
func (ss *SpeciesSet) Population() int {
	total := 0
	for _, s := range ss.Species {
		total += s.Size()
	}
	return total
}

// Genomes returns every genome in species order.
func (ss *SpeciesSet) Genomes() []*Genome {
	genomes := make([]*Genome, 0, ss.Population())
	for _, s := range ss.Species {
		genomes = append(genomes, s.Members...)
	}
	return genomes
}

// MaxInnovation returns the highest innovation number of any gene in the set.
func (ss *SpeciesSet) MaxInnovation() int {
	maxInnovation := 0
	for _, s := range ss.Species {
		for _, g := range s.Members {
			maxInnovation = max(maxInnovation, g.MaxInnovation())
		}
	}
	return maxInnovation
}

// GetSpecies returns the species with the given id.
func (ss *SpeciesSet) GetSpecies(id int) (*Species, bool) {
	for _, s := range ss.Species {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}
