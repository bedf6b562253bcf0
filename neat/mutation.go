package neat

import "errors"

// Mutate applies exactly one mutation operator, chosen uniformly among
// add-connection, add-node and change-weight.
//
// innovation is the current global maximum innovation number; the returned
// value is the counter after any genes this mutation created. An operator that
// finds nothing to act on leaves the genome unchanged.
func (g *Genome) Mutate(innovation int, config *MutationConfig, rng Rand) int {
	var err error
	switch rng.Intn(3) {
	case 0:
		innovation = g.MutateAddConnection(innovation, config.MaxAttempts, rng)
	case 1:
		innovation, err = g.MutateAddNode(innovation, rng)
	default:
		err = g.MutateWeight(config.WeightRange, rng)
	}
	// A genome with nothing enabled is left untouched.
	if err != nil && !errors.Is(err, ErrNoEnabledGene) {
		logger().Warn("mutation failed", "error", err)
	}
	return innovation
}

// MutateAddConnection appends a new enabled gene of weight 1.0 between a random
// non-output source and a random output or hidden destination.
//
// A hidden destination must come after the source in node order, and the new
// gene must not close a cycle through enabled genes. Candidates violating
// either rule are re-rolled; after maxAttempts rejected candidates the genome
// is left unchanged. Returns the advanced innovation counter.
func (g *Genome) MutateAddConnection(innovation, maxAttempts int, rng Rand) int {
	outStart, outEnd := g.OutputRange()

	// Sources: inputs followed by hidden nodes, skipping the output range.
	numSources := len(g.Nodes) - g.NumOutputs
	numDestinations := len(g.Nodes) - outStart
	if numSources <= 0 || numDestinations <= 0 {
		return innovation
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		source := rng.Intn(numSources)
		if source >= outStart {
			source += outEnd - outStart
		}

		destination := outStart + rng.Intn(numDestinations)
		for destination >= outEnd && destination <= source {
			destination = outStart + rng.Intn(numDestinations)
		}

		if createsCycle(g, source, destination) {
			continue
		}

		innovation++
		g.Genes = append(g.Genes, Gene{
			In:         source,
			Out:        destination,
			Weight:     1.0,
			Enabled:    true,
			Innovation: innovation,
		})
		return innovation
	}
	return innovation
}

// MutateAddNode splits a random enabled gene: the gene is disabled, a hidden
// node is appended, and two genes of weight 1.0 route the old connection
// through the new node. Returns the innovation counter advanced by two.
func (g *Genome) MutateAddNode(innovation int, rng Rand) (int, error) {
	enabled := g.enabledGenes()
	if len(enabled) == 0 {
		return innovation, ErrNoEnabledGene
	}

	split := &g.Genes[enabled[rng.Intn(len(enabled))]]
	split.Enabled = false
	in, out := split.In, split.Out

	g.Nodes = append(g.Nodes, NodeGene{Kind: HiddenNode})
	newNode := len(g.Nodes) - 1

	g.Genes = append(g.Genes,
		Gene{In: in, Out: newNode, Weight: 1.0, Enabled: true, Innovation: innovation + 1},
		Gene{In: newNode, Out: out, Weight: 1.0, Enabled: true, Innovation: innovation + 2},
	)
	return innovation + 2, nil
}

// MutateWeight assigns a random enabled gene a new weight drawn uniformly
// from [-weightRange, weightRange).
func (g *Genome) MutateWeight(weightRange float64, rng Rand) error {
	enabled := g.enabledGenes()
	if len(enabled) == 0 {
		return ErrNoEnabledGene
	}
	gene := &g.Genes[enabled[rng.Intn(len(enabled))]]
	gene.Weight = (rng.Float64()*2 - 1) * weightRange
	return nil
}
