package neat

// Reproduction handles culling, crossover and the mutation pass of a generation transition.
type Reproduction struct {
	Config *Config
	Rand   Rand
}

// NewReproduction creates a new reproduction manager.
func NewReproduction(config *Config, rng Rand) *Reproduction {
	return &Reproduction{Config: config, Rand: rng}
}

// CreateSeedPopulation builds the initial species set: two species (ids 0 and
// 1) with one minimal genome each, founded from innovation counters 0 and 3.
func (r *Reproduction) CreateSeedPopulation(speciesSet *SpeciesSet, numInputs, numOutputs int) {
	for id, innovation := range []int{0, 3} {
		g := NewGenome(numInputs, numOutputs, innovation, r.Rand)
		speciesSet.Species = append(speciesSet.Species, NewSpecies(id, g))
	}
}

// Cull truncates each species to its fittest half, always keeping at least
// the fittest member. Members must already be sorted fittest first.
func (r *Reproduction) Cull(speciesSet *SpeciesSet) {
	for _, sp := range speciesSet.Species {
		keep := max(len(sp.Members)/2, 1)
		if keep < len(sp.Members) {
			sp.Members = sp.Members[:keep]
		}
	}
}

// CrossoverWithinSpecies breeds, in every species with at least two members,
// as many children as the species currently has members. Each child comes from
// two distinct randomly chosen members and joins the same species.
func (r *Reproduction) CrossoverWithinSpecies(speciesSet *SpeciesSet) int {
	born := 0
	for _, sp := range speciesSet.Species {
		size := len(sp.Members)
		if size < 2 {
			continue
		}
		children := make([]*Genome, 0, size)
		for i := 0; i < size; i++ {
			p1, p2 := r.distinctPair(size)
			children = append(children, Crossover(sp.Members[p1], sp.Members[p2], r.Rand))
		}
		sp.Members = append(sp.Members, children...)
		born += len(children)
	}
	return born
}

// CrossoverBetweenSpecies fills the population up to DesiredPopulation with
// children of two members drawn from two distinct random species. Children are
// placed with AddToPool and may found new species. When the population is
// already at or above the target no child is produced.
func (r *Reproduction) CrossoverBetweenSpecies(speciesSet *SpeciesSet) int {
	childrenNeeded := r.Config.Population.DesiredPopulation - speciesSet.Population()
	if childrenNeeded <= 0 || len(speciesSet.Species) == 0 {
		return 0
	}

	// Parents are drawn from the species as they are now, not including this pass' children.
	parents := append([]*Species(nil), speciesSet.Species...)
	for i := 0; i < childrenNeeded; i++ {
		var p1, p2 *Genome
		if len(parents) >= 2 {
			s1, s2 := r.distinctPair(len(parents))
			p1 = r.randomMember(parents[s1])
			p2 = r.randomMember(parents[s2])
		} else {
			// A lone species breeds with itself.
			p1 = r.randomMember(parents[0])
			p2 = r.randomMember(parents[0])
		}
		speciesSet.AddToPool(Crossover(p1, p2, r.Rand))
	}
	return childrenNeeded
}

// MutatePass mutates each genome with probability MutationRate, threading a
// single innovation counter through the whole pass so new innovation numbers
// stay unique. Returns the counter after the pass and the number of genomes mutated.
func (r *Reproduction) MutatePass(speciesSet *SpeciesSet, innovation int) (int, int) {
	mutated := 0
	for _, sp := range speciesSet.Species {
		for _, g := range sp.Members {
			if r.Rand.Float64() < r.Config.Mutation.MutationRate {
				innovation = g.Mutate(innovation, &r.Config.Mutation, r.Rand)
				mutated++
			}
		}
	}
	return innovation, mutated
}

// distinctPair returns two different indices in [0, n). n must be at least 2.
func (r *Reproduction) distinctPair(n int) (int, int) {
	i := r.Rand.Intn(n)
	j := r.Rand.Intn(n - 1)
	if j >= i {
		j++
	}
	return i, j
}

func (r *Reproduction) randomMember(sp *Species) *Genome {
	return sp.Members[r.Rand.Intn(len(sp.Members))]
}
