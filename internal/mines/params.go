package mines

import (
	"fmt"
	"math"
	"strings"
)

// Params describe the shape of a board. Density is the fraction of cells
// that hold a mine and must lie strictly between 0 and 1.
type Params struct {
	Rows    int     `schema:"rows" mapstructure:"rows"`
	Cols    int     `schema:"cols" mapstructure:"cols"`
	Density float64 `schema:"density" mapstructure:"density"`
}

// MaxCells bounds rows*cols so that a board always fits in memory and its
// size never overflows an int.
const MaxCells = 1 << 22

func (p Params) Unpack() (rows, cols int, density float64) {
	return p.Rows, p.Cols, p.Density
}

func (p Params) Validate() error {
	if p.Rows < 1 {
		return fmt.Errorf("%w: rows must be at least 1 (rows = %d)", ErrInvalidConfiguration, p.Rows)
	}
	if p.Cols < 1 {
		return fmt.Errorf("%w: cols must be at least 1 (cols = %d)", ErrInvalidConfiguration, p.Cols)
	}
	if p.Rows > MaxCells/p.Cols {
		return fmt.Errorf(
			"%w: board must have at most %d cells (rows = %d, cols = %d)",
			ErrInvalidConfiguration, MaxCells, p.Rows, p.Cols,
		)
	}
	if math.IsNaN(p.Density) || p.Density <= 0 || p.Density >= 1 {
		return fmt.Errorf("%w: density must be in (0, 1) (density = %v)", ErrInvalidConfiguration, p.Density)
	}
	return nil
}

// Size is the total number of cells.
func (p Params) Size() int {
	return p.Rows * p.Cols
}

// MineCount is floor(rows*cols*density), capped so that at least one cell
// stays safe.
func (p Params) MineCount() int {
	n := int(math.Floor(float64(p.Size()) * p.Density))
	return max(0, min(n, p.Size()-1))
}

func (p Params) InBounds(row, col int) bool {
	return 0 <= row && row < p.Rows && 0 <= col && col < p.Cols
}

// Seed is a compact key identifying a configuration, used to group stats.
func (p Params) Seed() string {
	return fmt.Sprintf("%d:%d:%g", p.Rows, p.Cols, p.Density)
}

func ParseSeed(seed string) (*Params, error) {
	p := &Params{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %g", &p.Rows, &p.Cols, &p.Density)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	return p, nil
}
