package neat

import "fmt"

// NodeKind defines the role of a node in the network.
type NodeKind int

const (
	InputNode NodeKind = iota
	OutputNode
	HiddenNode
)

func (k NodeKind) String() string {
	switch k {
	case InputNode:
		return "input"
	case OutputNode:
		return "output"
	case HiddenNode:
		return "hidden"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// --------------------------- NodeGene ---------------------------

// NodeGene represents a node (neuron) in the genome.
// A node is identified by its index in Genome.Nodes, which never changes.
type NodeGene struct {
	Kind NodeKind
}

// String returns a string representation of the NodeGene.
func (ng NodeGene) String() string {
	return fmt.Sprintf("NodeGene(%s)", ng.Kind)
}

// --------------------------- Gene ---------------------------

// Gene represents a connection (synapse) between two nodes of the genome.
// In and Out are node indices; Innovation is the global historical marking
// assigned when the gene was first created.
type Gene struct {
	In         int
	Out        int
	Weight     float64
	Enabled    bool
	Innovation int
}

// String returns a string representation of the Gene.
func (g Gene) String() string {
	return fmt.Sprintf("Gene(#%d %d->%d, Weight: %.3f, Enabled: %t)",
		g.Innovation, g.In, g.Out, g.Weight, g.Enabled)
}
