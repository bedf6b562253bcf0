package nn

import (
	"fmt"

	"github.com/baldhumanity/neat-mario/neat"
)

// Link is an enabled gene as seen from its destination node.
type Link struct {
	From   int
	Weight float64
}

// FeedForwardNetwork is the phenotype of a genome, ready to be activated.
//
// Nodes are evaluated in two passes: every hidden node in increasing index
// order, then the output nodes. A hidden node therefore sees the final value
// of lower-indexed hidden nodes and 0 from any higher-indexed one.
type FeedForwardNetwork struct {
	NumInputs   int
	OutputStart int
	OutputEnd   int
	NumNodes    int
	Incoming    map[int][]Link // Enabled genes grouped by destination node.
}

// CreateFeedForwardNetwork builds a runnable network from a genome.
func CreateFeedForwardNetwork(g *neat.Genome) *FeedForwardNetwork {
	outStart, outEnd := g.OutputRange()
	net := &FeedForwardNetwork{
		NumInputs:   g.NumInputs,
		OutputStart: outStart,
		OutputEnd:   outEnd,
		NumNodes:    len(g.Nodes),
		Incoming:    make(map[int][]Link),
	}
	for _, gene := range g.Genes {
		if !gene.Enabled {
			continue
		}
		net.Incoming[gene.Out] = append(net.Incoming[gene.Out], Link{From: gene.In, Weight: gene.Weight})
	}
	return net
}

// Activate computes the output activations for a slice of input values.
// The input slice must match the number of input nodes.
func (net *FeedForwardNetwork) Activate(inputs []float64) ([]float64, error) {
	if len(inputs) != net.NumInputs {
		return nil, fmt.Errorf("%w: got %d inputs, network has %d input nodes", neat.ErrInputSize, len(inputs), net.NumInputs)
	}

	activations := make([]float64, net.NumNodes)
	copy(activations, inputs)

	// Hidden nodes first, then outputs.
	for node := net.OutputEnd; node < net.NumNodes; node++ {
		net.activateNode(activations, node)
	}
	for node := net.OutputStart; node < net.OutputEnd; node++ {
		net.activateNode(activations, node)
	}

	outputs := make([]float64, net.OutputEnd-net.OutputStart)
	copy(outputs, activations[net.OutputStart:net.OutputEnd])
	return outputs, nil
}

// activateNode sums the weighted activations feeding node and applies the
// sigmoid. A node without enabled incoming genes keeps activation 0.
func (net *FeedForwardNetwork) activateNode(activations []float64, node int) {
	genes, ok := net.Incoming[node]
	if !ok {
		return
	}
	sum := 0.0
	for _, in := range genes {
		sum += activations[in.From] * in.Weight
	}
	activations[node] = Sigmoid(sum)
}

// Evaluate activates g's network once and returns its first two output activations.
func Evaluate(g *neat.Genome, inputs []float64) (float64, float64, error) {
	if g.NumOutputs < 2 {
		return 0, 0, fmt.Errorf("evaluate needs two output nodes, genome has %d", g.NumOutputs)
	}
	outputs, err := CreateFeedForwardNetwork(g).Activate(inputs)
	if err != nil {
		return 0, 0, err
	}
	return outputs[0], outputs[1], nil
}
