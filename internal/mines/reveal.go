package mines

type RevealKind int8

const (
	AlreadyRevealed RevealKind = iota // revealed or flagged, nothing happened
	HitMine
	Opened
)

func (k RevealKind) String() string {
	switch k {
	case AlreadyRevealed:
		return "already revealed"
	case HitMine:
		return "hit mine"
	case Opened:
		return "opened"
	default:
		return "invalid"
	}
}

type Revealed struct {
	Point
	Count int
}

type Reveal struct {
	Kind  RevealKind
	Cells []Revealed // in the order they were opened
}

// frontier is an intrusive FIFO of cell indices. Cells are marked revealed
// before they are added, so each index is queued at most once.
type frontier struct {
	next       []int
	head, tail int
}

func newFrontier(n int) *frontier {
	return &frontier{next: make([]int, n), head: -1, tail: -1}
}

func (f *frontier) add(i int) {
	if f.tail >= 0 {
		f.next[f.tail] = i
	} else {
		f.head = i
	}
	f.tail = i
	f.next[i] = -1
}

func (f *frontier) pop() (int, bool) {
	if f.head < 0 {
		return 0, false
	}
	i := f.head
	f.head = f.next[i]
	if f.head < 0 {
		f.tail = -1
	}
	return i, true
}

// Reveal opens the cell at row:col. A mine is reported but left covered.
// Opening a cell with no mined neighbors cascades through the connected
// zero region and its border, skipping flagged cells.
func (b *Board) Reveal(row, col int) (Reveal, error) {
	if !b.InBounds(row, col) {
		return Reveal{}, ErrOutOfBounds
	}
	i := b.index(row, col)
	c := &b.cells[i]
	if c.Revealed || c.Mark == Flagged {
		return Reveal{Kind: AlreadyRevealed}, nil
	}
	if c.Mine {
		return Reveal{Kind: HitMine}, nil
	}

	res := Reveal{Kind: Opened}
	b.open(i, &res)
	if c.Count > 0 {
		return res, nil
	}

	todo := newFrontier(len(b.cells))
	todo.add(i)
	for {
		j, ok := todo.pop()
		if !ok {
			break
		}
		row, col := b.coords(j)
		b.around(row, col, func(k int) {
			n := &b.cells[k]
			if n.Revealed || n.Mine || n.Mark == Flagged {
				return
			}
			b.open(k, &res)
			if n.Count == 0 {
				todo.add(k)
			}
		})
	}
	return res, nil
}

func (b *Board) open(i int, res *Reveal) {
	c := &b.cells[i]
	c.Revealed = true
	c.Mark = Unmarked
	b.revealed++
	row, col := b.coords(i)
	res.Cells = append(res.Cells, Revealed{Point: Point{row, col}, Count: c.Count})
}
