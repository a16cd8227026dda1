package core

// Mask is the collision shape of a sprite: one flag per glyph cell, set where
// the art has a visible rune. Each cell covers CellW x CellH world units, so
// two masks overlap only when visible cells overlap, not just their boxes.
type Mask struct {
	cols  int
	rows  int
	cells []bool
	CellW float64
	CellH float64
}

// NewMask builds a mask from sprite art. Spaces are transparent.
// Rows may have different lengths; the widest row sets the mask width.
func NewMask(art []string, cellW, cellH float64) Mask {
	cols := 0
	for _, row := range art {
		if n := len([]rune(row)); n > cols {
			cols = n
		}
	}

	m := Mask{
		cols:  cols,
		rows:  len(art),
		cells: make([]bool, cols*len(art)),
		CellW: cellW,
		CellH: cellH,
	}
	for y, row := range art {
		for x, r := range []rune(row) {
			if r != ' ' {
				m.cells[y*cols+x] = true
			}
		}
	}
	return m
}

// Cols returns the mask width in cells.
func (m Mask) Cols() int {
	return m.cols
}

// Rows returns the mask height in cells.
func (m Mask) Rows() int {
	return m.rows
}

// Width returns the mask width in world units.
func (m Mask) Width() float64 {
	return float64(m.cols) * m.CellW
}

// Height returns the mask height in world units.
func (m Mask) Height() float64 {
	return float64(m.rows) * m.CellH
}

// At reports whether the cell at (col, row) is solid.
func (m Mask) At(col, row int) bool {
	if col < 0 || col >= m.cols || row < 0 || row >= m.rows {
		return false
	}
	return m.cells[row*m.cols+col]
}

// Count returns the number of solid cells.
func (m Mask) Count() int {
	n := 0
	for _, c := range m.cells {
		if c {
			n++
		}
	}
	return n
}

// Bounds returns the world box of the mask placed with its top-left at (x, y).
func (m Mask) Bounds(x, y float64) Box {
	return NewBox(x, y, m.Width(), m.Height())
}

// Overlaps reports whether this mask at (x, y) touches other at (ox, oy).
// Bounding boxes are checked first; solid cells are compared only when they
// intersect.
func (m Mask) Overlaps(x, y float64, other Mask, ox, oy float64) bool {
	if !m.Bounds(x, y).Intersects(other.Bounds(ox, oy)) {
		return false
	}

	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			if !m.cells[row*m.cols+col] {
				continue
			}
			cell := NewBox(x+float64(col)*m.CellW, y+float64(row)*m.CellH, m.CellW, m.CellH)
			if other.touches(ox, oy, cell) {
				return true
			}
		}
	}
	return false
}

// touches reports whether any solid cell of m at (x, y) intersects box.
func (m Mask) touches(x, y float64, box Box) bool {
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			if !m.cells[row*m.cols+col] {
				continue
			}
			cell := NewBox(x+float64(col)*m.CellW, y+float64(row)*m.CellH, m.CellW, m.CellH)
			if cell.Intersects(box) {
				return true
			}
		}
	}
	return false
}
