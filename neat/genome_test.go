package neat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

// genomeWith builds a genome whose genes carry the given innovation numbers,
// all from input 0 to the first output with the given weight.
func genomeWith(weight float64, innovations ...int) *Genome {
	g := &Genome{
		Nodes:      []NodeGene{{Kind: InputNode}, {Kind: InputNode}, {Kind: OutputNode}, {Kind: OutputNode}},
		NumInputs:  2,
		NumOutputs: 2,
	}
	for _, innovation := range innovations {
		g.Genes = append(g.Genes, Gene{In: 0, Out: 2, Weight: weight, Enabled: true, Innovation: innovation})
	}
	return g
}

func TestNewGenome(t *testing.T) {
	g := NewGenome(169, 2, 10, newTestRand())

	require.Len(t, g.Nodes, 171)
	for i := 0; i < 169; i++ {
		assert.Equal(t, InputNode, g.Nodes[i].Kind)
	}
	assert.Equal(t, OutputNode, g.Nodes[169].Kind)
	assert.Equal(t, OutputNode, g.Nodes[170].Kind)

	require.Len(t, g.Genes, 2)
	for i, gene := range g.Genes {
		assert.Equal(t, 11+i, gene.Innovation)
		assert.Equal(t, 1.0, gene.Weight)
		assert.True(t, gene.Enabled)
		assert.GreaterOrEqual(t, gene.In, 0)
		assert.Less(t, gene.In, 169)
		assert.GreaterOrEqual(t, gene.Out, 169)
		assert.Less(t, gene.Out, 171)
	}
	assert.Equal(t, 0.0, g.Fitness)
	assert.Equal(t, 12, g.MaxInnovation())
}

func TestCopyIsDeep(t *testing.T) {
	g := NewGenome(4, 2, 0, newTestRand())
	c := g.Copy()
	c.Genes[0].Weight = -1
	c.Nodes = append(c.Nodes, NodeGene{Kind: HiddenNode})

	assert.Equal(t, 1.0, g.Genes[0].Weight)
	assert.Len(t, g.Nodes, 6)
}

func TestCrossoverKeepsFitterInnovations(t *testing.T) {
	rng := newTestRand()
	fitter := genomeWith(1.0, 1, 2, 3)
	fitter.Fitness = 10
	weaker := genomeWith(-1.0, 2, 3, 4)
	weaker.Nodes = append(weaker.Nodes, NodeGene{Kind: HiddenNode})
	weaker.Genes = append(weaker.Genes, Gene{In: 0, Out: 4, Weight: 1, Enabled: true, Innovation: 5})
	weaker.Fitness = 1

	for i := 0; i < 50; i++ {
		// Argument order must not matter when fitness differs.
		a, b := fitter, weaker
		if i%2 == 1 {
			a, b = weaker, fitter
		}
		child := Crossover(a, b, rng)

		innovations := make([]int, 0, len(child.Genes))
		for _, gene := range child.Genes {
			innovations = append(innovations, gene.Innovation)
			assert.Less(t, gene.In, len(fitter.Nodes))
			assert.Less(t, gene.Out, len(fitter.Nodes))
		}
		assert.Equal(t, []int{1, 2, 3}, innovations)
		assert.Len(t, child.Nodes, len(fitter.Nodes))
		assert.Equal(t, 0.0, child.Fitness)
		// Disjoint genes always come from the fitter parent.
		assert.Equal(t, 1.0, child.Genes[0].Weight)
	}
}

func TestCrossoverMatchingGenesFromBothParents(t *testing.T) {
	rng := newTestRand()
	a := genomeWith(1.0, 1)
	a.Fitness = 2
	b := genomeWith(-1.0, 1)
	b.Genes[0].Enabled = false

	seen := map[float64]int{}
	for i := 0; i < 200; i++ {
		child := Crossover(a, b, rng)
		gene := child.Genes[0]
		seen[gene.Weight]++
		// Weight and enabled flag travel together.
		assert.Equal(t, gene.Weight == 1.0, gene.Enabled)
	}
	assert.Greater(t, seen[1.0], 0)
	assert.Greater(t, seen[-1.0], 0)
}

func TestCrossoverTieFavoursFirst(t *testing.T) {
	a := genomeWith(1.0, 1, 2)
	b := genomeWith(1.0, 1, 3)
	b.Nodes = append(b.Nodes, NodeGene{Kind: HiddenNode})

	child := Crossover(a, b, newTestRand())
	assert.Len(t, child.Nodes, len(a.Nodes))
	require.Len(t, child.Genes, 2)
	assert.Equal(t, 2, child.Genes[1].Innovation)
}

func TestDistanceToSelfIsZero(t *testing.T) {
	rng := newTestRand()
	config := DefaultConfig()
	g := NewGenome(10, 2, 0, rng)
	innovation := 2
	for i := 0; i < 40; i++ {
		innovation = g.Mutate(innovation, &config.Mutation, rng)
		assert.Equal(t, 0.0, g.Distance(g, &config.Speciation))
		assert.Equal(t, 0.0, g.Distance(g.Copy(), &config.Speciation))
	}
}

func TestDistanceSmallGenomes(t *testing.T) {
	config := DefaultConfig().Speciation
	a := genomeWith(1.0, 1, 2)
	b := genomeWith(1.0, 2, 3)
	b.Genes[0].Weight = 0.5

	// Disjoint {1, 3}; weight diffs over the union {1, 2, 3}: 1, 0.5, 1.
	// Fewer than 20 genes, so N = 1.
	want := 0.4*2 + 0.1*(2.5/3)
	assert.InDelta(t, want, a.Distance(b, &config), 1e-12)
	assert.InDelta(t, want, b.Distance(a, &config), 1e-12)
}

func TestDistanceLargeGenomes(t *testing.T) {
	config := DefaultConfig().Speciation
	innovations := make([]int, 0, 20)
	for i := 1; i <= 19; i++ {
		innovations = append(innovations, i)
	}
	a := genomeWith(1.0, append(innovations, 20)...)
	b := genomeWith(1.0, append(innovations, 21)...)

	want := 0.4*2/20 + 0.1*(2.0/21)
	assert.InDelta(t, want, a.Distance(b, &config), 1e-12)
	assert.True(t, SameSpecies(a, b, &config))
}

func TestDistanceIsStable(t *testing.T) {
	config := DefaultConfig().Speciation
	a := genomeWith(0.0)
	b := genomeWith(0.0)
	for i := 1; i <= 60; i++ {
		w := float64(i) * 0.1037
		if i%3 != 0 {
			a.Genes = append(a.Genes, Gene{In: 0, Out: 2, Weight: w, Enabled: true, Innovation: i})
		}
		if i%4 != 0 {
			b.Genes = append(b.Genes, Gene{In: 1, Out: 3, Weight: -w / 7, Enabled: true, Innovation: i})
		}
	}

	wantAB := a.Distance(b, &config)
	wantBA := b.Distance(a, &config)
	assert.Greater(t, wantAB, 0.0)
	for i := 0; i < 200; i++ {
		require.Equal(t, wantAB, a.Distance(b, &config))
		require.Equal(t, wantBA, b.Distance(a, &config))
	}
}

func TestGenomeString(t *testing.T) {
	g := genomeWith(0.5, 7)
	s := g.String()
	assert.Contains(t, s, "Genes: 1")
	assert.Contains(t, s, "#7 0->2")
}
