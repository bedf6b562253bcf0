// Package game defines the per-frame world state consumed from the game
// environment and the tile window the controller network sees.
package game

import "fmt"

// Tile grid geometry. The level is kept as two pages of 13 rows by 16
// columns of 16x16 pixel blocks; the page used for a column alternates every
// 256 pixels of world x. The top row of the grid sits at world y = 32.
const (
	TilePages  = 2
	TileRows   = 13
	TileCols   = 16
	BlockSize  = 16
	PageWidth  = TileCols * BlockSize
	GridTopY   = 32
	MaxEnemies = 5
)

// TileGrid is the level's block occupancy. A non-zero entry is a solid block.
type TileGrid [TilePages][TileRows][TileCols]uint8

// Solid reports whether the block covering world position (x, y) is solid.
// Positions above or below the grid are empty.
func (tg *TileGrid) Solid(x, y int) bool {
	row := (y - GridTopY) / BlockSize
	if y < GridTopY || row >= TileRows {
		return false
	}
	if x < 0 {
		return false
	}
	col := (x % PageWidth) / BlockSize
	page := (x / PageWidth) % TilePages
	return tg[page][row][col] != 0
}

// Set marks the block covering world position (x, y) as solid or empty.
// Positions outside the grid rows are ignored.
func (tg *TileGrid) Set(x, y int, solid bool) {
	row := (y - GridTopY) / BlockSize
	if y < GridTopY || row >= TileRows || x < 0 {
		return
	}
	col := (x % PageWidth) / BlockSize
	page := (x / PageWidth) % TilePages
	var v uint8
	if solid {
		v = 1
	}
	tg[page][row][col] = v
}

// Point is a position in world pixels.
type Point struct {
	X int
	Y int
}

// Snapshot is the world state read from the game once per frame.
type Snapshot struct {
	Agent   Point    // Agent position in world pixels.
	ScrollX int      // Screen-relative scroll offset.
	Lives   int      // Remaining lives.
	Level   int      // Current level id.
	Tiles   TileGrid // Block occupancy around the agent.
	Enemies []Point  // Active enemies, at most MaxEnemies.
}

// String returns a one-line description of the snapshot, without the grid.
func (s Snapshot) String() string {
	return fmt.Sprintf("Agent coords: (%d, %d). Lives: %d. Scroll X: %d. Level: %d. Enemies: %d",
		s.Agent.X, s.Agent.Y, s.Lives, s.ScrollX, s.Level, len(s.Enemies))
}
