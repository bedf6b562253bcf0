package neat

import (
	"fmt"
	"math"
	"strings"
)

// Genome represents an individual controller in the population.
// Nodes and Genes are append-only: nodes are never removed and genes are only
// ever disabled, so node indices and innovation numbers stay valid for the
// lifetime of the lineage.
type Genome struct {
	Nodes      []NodeGene // Layout: [Inputs][Outputs][Hidden...]
	Genes      []Gene     // In creation order
	Fitness    float64    // Fitness score of the genome, recomputed once per episode.
	NumInputs  int
	NumOutputs int
}

// NewGenome creates a minimal genome with numInputs input nodes, numOutputs
// output nodes and two random input->output genes of weight 1.0.
//
// The new genes take innovation numbers innovation+1 and innovation+2. The
// caller owns the shared counter and must advance it by two afterwards.
func NewGenome(numInputs, numOutputs, innovation int, rng Rand) *Genome {
	g := &Genome{
		Nodes:      make([]NodeGene, 0, numInputs+numOutputs),
		Genes:      make([]Gene, 0, 2),
		NumInputs:  numInputs,
		NumOutputs: numOutputs,
	}
	for i := 0; i < numInputs; i++ {
		g.Nodes = append(g.Nodes, NodeGene{Kind: InputNode})
	}
	for i := 0; i < numOutputs; i++ {
		g.Nodes = append(g.Nodes, NodeGene{Kind: OutputNode})
	}

	for i := 1; i <= 2; i++ {
		g.Genes = append(g.Genes, Gene{
			In:         rng.Intn(numInputs),
			Out:        numInputs + rng.Intn(numOutputs),
			Weight:     1.0,
			Enabled:    true,
			Innovation: innovation + i,
		})
	}
	return g
}

// Copy creates a deep copy of the genome.
func (g *Genome) Copy() *Genome {
	return &Genome{
		Nodes:      append([]NodeGene(nil), g.Nodes...),
		Genes:      append([]Gene(nil), g.Genes...),
		Fitness:    g.Fitness,
		NumInputs:  g.NumInputs,
		NumOutputs: g.NumOutputs,
	}
}

// OutputRange returns the half-open index range [start, end) of the output nodes.
func (g *Genome) OutputRange() (int, int) {
	return g.NumInputs, g.NumInputs + g.NumOutputs
}

// MaxInnovation returns the highest innovation number carried by the genome, or 0.
func (g *Genome) MaxInnovation() int {
	maxInnovation := 0
	for _, gene := range g.Genes {
		if gene.Innovation > maxInnovation {
			maxInnovation = gene.Innovation
		}
	}
	return maxInnovation
}

// enabledGenes returns the indices of all enabled genes.
func (g *Genome) enabledGenes() []int {
	enabled := make([]int, 0, len(g.Genes))
	for i, gene := range g.Genes {
		if gene.Enabled {
			enabled = append(enabled, i)
		}
	}
	return enabled
}

// String returns a compact multi-line description of the genome.
func (g *Genome) String() string {
	var sb strings.Builder
	hidden := len(g.Nodes) - g.NumInputs - g.NumOutputs
	fmt.Fprintf(&sb, "Genome(Fitness: %.3f, Inputs: %d, Outputs: %d, Hidden: %d, Genes: %d)",
		g.Fitness, g.NumInputs, g.NumOutputs, hidden, len(g.Genes))
	for _, gene := range g.Genes {
		sb.WriteString("\n  ")
		sb.WriteString(gene.String())
	}
	return sb.String()
}

// Crossover creates a child genome by combining genes from two parents.
//
// The fitter parent (a on ties) passes on its full node list and every gene it
// carries. For innovations present in both parents the weight and enabled flag
// come from a parent chosen 50/50. Innovations only the weaker parent carries
// are discarded. The child's fitness starts at zero.
func Crossover(a, b *Genome, rng Rand) *Genome {
	fitter, weaker := a, b
	if b.Fitness > a.Fitness {
		fitter, weaker = b, a
	}

	weakerGenes := make(map[int]Gene, len(weaker.Genes))
	for _, gene := range weaker.Genes {
		weakerGenes[gene.Innovation] = gene
	}

	child := &Genome{
		Nodes:      append([]NodeGene(nil), fitter.Nodes...),
		Genes:      make([]Gene, 0, len(fitter.Genes)),
		NumInputs:  fitter.NumInputs,
		NumOutputs: fitter.NumOutputs,
	}
	for _, gene := range fitter.Genes {
		inherited := gene
		if other, matching := weakerGenes[gene.Innovation]; matching && rng.Float64() < 0.5 {
			// Endpoints stay the fitter parent's so the child only references its nodes.
			inherited.Weight = other.Weight
			inherited.Enabled = other.Enabled
		}
		child.Genes = append(child.Genes, inherited)
	}
	return child
}

// Distance calculates the compatibility distance between this genome and another.
//
// N is the larger gene count, floored to 1 for small genomes. The weight term
// averages |w1-w2| over the union of both innovation sets, a gene missing from
// one genome counting with weight 0.
func (g *Genome) Distance(other *Genome, config *SpeciationConfig) float64 {
	weights1 := make(map[int]float64, len(g.Genes))
	for _, gene := range g.Genes {
		weights1[gene.Innovation] = gene.Weight
	}
	weights2 := make(map[int]float64, len(other.Genes))
	for _, gene := range other.Genes {
		weights2[gene.Innovation] = gene.Weight
	}

	disjointCount := 0
	weightDiffSum := 0.0
	unionSize := 0

	// Walk the gene slices so the sum is accumulated in a fixed order.
	seen := make(map[int]bool, len(weights1)+len(weights2))
	for _, gene := range g.Genes {
		if seen[gene.Innovation] {
			continue
		}
		seen[gene.Innovation] = true
		w2, exists := weights2[gene.Innovation]
		if !exists {
			disjointCount++
		}
		weightDiffSum += math.Abs(weights1[gene.Innovation] - w2)
		unionSize++
	}
	for _, gene := range other.Genes {
		if seen[gene.Innovation] {
			continue
		}
		seen[gene.Innovation] = true
		disjointCount++
		weightDiffSum += math.Abs(weights2[gene.Innovation])
		unionSize++
	}

	N := float64(max(len(g.Genes), len(other.Genes)))
	if N < float64(config.SmallGenomeSize) {
		N = 1.0
	}

	averageWeightDiff := 0.0
	if unionSize > 0 {
		averageWeightDiff = weightDiffSum / float64(unionSize)
	}

	return config.DisjointCoefficient*float64(disjointCount)/N +
		config.WeightCoefficient*averageWeightDiff
}

// createsCycle reports whether an enabled gene inNode->outNode would close a
// cycle through the genome's enabled genes.
func createsCycle(genome *Genome, inNode, outNode int) bool {
	if inNode == outNode {
		return true
	}

	// Check if outNode can reach inNode through existing enabled genes.
	visited := make(map[int]bool)
	queue := []int{outNode}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == inNode {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true

		for _, gene := range genome.Genes {
			if gene.Enabled && gene.In == current {
				queue = append(queue, gene.Out)
			}
		}
	}

	return false
}
