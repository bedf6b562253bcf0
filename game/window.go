package game

// Tile classifies one cell of the tile window.
type Tile uint8

const (
	Nothing Tile = iota
	Block
	Enemy
	Agent
)

func (t Tile) String() string {
	switch t {
	case Nothing:
		return "nothing"
	case Block:
		return "block"
	case Enemy:
		return "enemy"
	case Agent:
		return "agent"
	default:
		return "unknown"
	}
}

// Input returns the network input value of the tile.
func (t Tile) Input() float64 {
	switch t {
	case Block:
		return 1.0
	case Enemy:
		return -1.0
	default:
		return 0.0
	}
}

// ViewSize is how many blocks the agent sees to each side.
const ViewSize = 6

// WindowSize is the side length of the tile window.
const WindowSize = 2*ViewSize + 1

// InputSize is the length of the flattened tile window.
const InputSize = WindowSize * WindowSize

// AgentRow and AgentCol locate the agent's own cell in the window.
const (
	AgentRow = ViewSize + 1
	AgentCol = ViewSize
)

// TileWindow is the WindowSize x WindowSize grid of blocks around the agent, row-major.
type TileWindow [WindowSize][WindowSize]Tile

// ExtractWindow builds the tile window for a snapshot. Each cell samples the
// block grid, enemies inside the window overwrite their cell, and the agent's
// own cell is written last.
func ExtractWindow(s *Snapshot) TileWindow {
	var w TileWindow
	for i := -ViewSize; i <= ViewSize; i++ {
		y := s.Agent.Y + i*BlockSize - BlockSize
		for j := -ViewSize; j <= ViewSize; j++ {
			x := s.Agent.X + j*BlockSize + BlockSize/2
			if s.Tiles.Solid(x, y) {
				w[i+ViewSize][j+ViewSize] = Block
			}
		}
	}

	for n, e := range s.Enemies {
		if n >= MaxEnemies {
			break
		}
		i := (e.Y-s.Agent.Y)/BlockSize + ViewSize
		j := (e.X-s.Agent.X)/BlockSize + ViewSize
		if i >= 0 && i < WindowSize && j >= 0 && j < WindowSize {
			w[i][j] = Enemy
		}
	}

	w[AgentRow][AgentCol] = Agent
	return w
}

// Inputs flattens the window row by row into network inputs.
func (w *TileWindow) Inputs() []float64 {
	inputs := make([]float64, 0, InputSize)
	for _, row := range w {
		for _, t := range row {
			inputs = append(inputs, t.Input())
		}
	}
	return inputs
}

// Rows returns the window as integer tile codes, the shape the dashboard renders.
func (w *TileWindow) Rows() [][]int {
	rows := make([][]int, WindowSize)
	for i, row := range w {
		rows[i] = make([]int, WindowSize)
		for j, t := range row {
			rows[i][j] = int(t)
		}
	}
	return rows
}
