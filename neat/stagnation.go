package neat

import "sort"

// Stagnation manages the detection and removal of stale and weak species.
type Stagnation struct {
	Config *PopulationConfig
}

// NewStagnation creates a new stagnation manager.
func NewStagnation(config *PopulationConfig) *Stagnation {
	return &Stagnation{Config: config}
}

// StagnationInfo holds the results of the stagnation update for a single species.
type StagnationInfo struct {
	SpeciesID  int
	Species    *Species
	IsStagnant bool
}

// Update refreshes each species' staleness counter and top-fitness mark and
// flags species that have gone MaxStaleness generations without improving.
//
// Members must already be sorted fittest first. A species whose top fitness
// or fittest member matches maxFitness is never flagged, so the species
// holding the global best always survives.
func (s *Stagnation) Update(speciesSet *SpeciesSet, maxFitness float64) []StagnationInfo {
	result := make([]StagnationInfo, 0, len(speciesSet.Species))
	for _, sp := range speciesSet.Species {
		if len(sp.Members) == 0 {
			result = append(result, StagnationInfo{SpeciesID: sp.ID, Species: sp, IsStagnant: true})
			continue
		}

		currentTop := sp.Members[0].Fitness
		if currentTop > sp.TopFitness {
			sp.TopFitness = currentTop
			sp.Staleness = 0
		} else {
			sp.Staleness++
		}

		holdsBest := sp.TopFitness == maxFitness || currentTop == maxFitness
		result = append(result, StagnationInfo{
			SpeciesID:  sp.ID,
			Species:    sp,
			IsStagnant: sp.Staleness >= s.Config.MaxStaleness && !holdsBest,
		})
	}
	return result
}

// RemoveStale drops every species Update flagged as stagnant and returns the removed ones.
func (s *Stagnation) RemoveStale(speciesSet *SpeciesSet, maxFitness float64) []*Species {
	var kept, removed []*Species
	for _, info := range s.Update(speciesSet, maxFitness) {
		if info.IsStagnant {
			removed = append(removed, info.Species)
			logger().Debug("species removed due to stagnation",
				"species", info.SpeciesID, "staleness", info.Species.Staleness)
			continue
		}
		kept = append(kept, info.Species)
	}
	speciesSet.Species = kept
	return removed
}

// RemoveWeak keeps only the KeptSpecies species with the fittest best members
// once the species count exceeds MaxSpecies. The surviving species are left
// ordered by their best member, fittest first.
func (s *Stagnation) RemoveWeak(speciesSet *SpeciesSet) []*Species {
	if len(speciesSet.Species) <= s.Config.MaxSpecies {
		return nil
	}
	sort.SliceStable(speciesSet.Species, func(i, j int) bool {
		return speciesSet.Species[i].BestFitness() > speciesSet.Species[j].BestFitness()
	})
	removed := append([]*Species(nil), speciesSet.Species[s.Config.KeptSpecies:]...)
	speciesSet.Species = speciesSet.Species[:s.Config.KeptSpecies]
	logger().Debug("weak species removed", "removed", len(removed), "kept", len(speciesSet.Species))
	return removed
}
