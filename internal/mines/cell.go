package mines

// Mark is the annotation a player puts on a covered cell.
type Mark int8

const (
	Unmarked Mark = iota
	Flagged
	Questioned
)

func (m Mark) String() string {
	switch m {
	case Unmarked:
		return "unmarked"
	case Flagged:
		return "flagged"
	case Questioned:
		return "questioned"
	default:
		return "invalid"
	}
}

// next returns the mark that follows m in the
// unmarked -> flagged -> questioned -> unmarked cycle.
func (m Mark) next() Mark {
	return (m + 1) % 3
}

type Cell struct {
	Mine     bool
	Revealed bool
	Mark     Mark
	Count    int // mined neighbors; stale until counts are recomputed
}

type Point struct {
	Row, Col int
}
