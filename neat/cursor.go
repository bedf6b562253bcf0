package neat

import "fmt"

// Cursor names the genome currently on trial by its species and member index.
type Cursor struct {
	Species    int
	Individual int
}

// String returns the cursor as (species, individual).
func (c Cursor) String() string {
	return fmt.Sprintf("(%d, %d)", c.Species, c.Individual)
}

// next returns the position after c in species order. wrapped is true when c
// addressed the last member of the last species; the returned cursor is then
// the first position.
func (c Cursor) next(speciesSet *SpeciesSet) (next Cursor, wrapped bool) {
	if c.Individual+1 < speciesSet.Species[c.Species].Size() {
		return Cursor{Species: c.Species, Individual: c.Individual + 1}, false
	}
	if c.Species+1 < len(speciesSet.Species) {
		return Cursor{Species: c.Species + 1}, false
	}
	return Cursor{}, true
}

// valid reports whether c addresses an existing genome.
func (c Cursor) valid(speciesSet *SpeciesSet) bool {
	return c.Species >= 0 && c.Species < len(speciesSet.Species) &&
		c.Individual >= 0 && c.Individual < speciesSet.Species[c.Species].Size()
}
