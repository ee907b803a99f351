package march

import (
	"errors"
	"fmt"

	"github.com/gogpu/contour/internal/image"
)

// ErrGridSize is returned when a grid does not match the image it samples.
var ErrGridSize = errors.New("march: grid size mismatch")

// Grid is a (p+1) x (q+1) array of binary samples stored row-major.
//
// Cells are zero-initialised, so a cell no worker writes reads as 0
// (background).
type Grid struct {
	p, q  int
	cells []uint8
}

// NewGrid allocates a grid for p x q cells, that is (p+1) x (q+1) sample points.
func NewGrid(p, q int) *Grid {
	p = max(p, 0)
	q = max(q, 0)
	return &Grid{
		p:     p,
		q:     q,
		cells: make([]uint8, (p+1)*(q+1)),
	}
}

// Extents returns the cell counts for an image sampled every step pixels:
// p = height/step rows and q = width/step columns.
func Extents(img *image.Image, step int) (p, q int) {
	w, h := img.Bounds()
	return h / step, w / step
}

// NewGridFor allocates a grid sized for img at the given step.
func NewGridFor(img *image.Image, step int) *Grid {
	p, q := Extents(img, step)
	return NewGrid(p, q)
}

// Cells returns the number of cell rows p and cell columns q.
// The grid holds (p+1) x (q+1) sample points.
func (g *Grid) Cells() (p, q int) {
	return g.p, g.q
}

// At returns the sample at row i, column j. Out-of-range reads return 0.
func (g *Grid) At(i, j int) uint8 {
	if i < 0 || i > g.p || j < 0 || j > g.q {
		return 0
	}
	return g.cells[i*(g.q+1)+j]
}

// Set stores v at row i, column j. Out-of-range writes are ignored.
func (g *Grid) Set(i, j int, v uint8) {
	if i < 0 || i > g.p || j < 0 || j > g.q {
		return
	}
	g.cells[i*(g.q+1)+j] = v
}

// Row returns the q+1 samples of row i, or nil if i is out of range.
func (g *Grid) Row(i int) []uint8 {
	if i < 0 || i > g.p {
		return nil
	}
	return g.cells[i*(g.q+1) : (i+1)*(g.q+1)]
}

// Count returns how many sample points hold 1.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		n += int(c)
	}
	return n
}

// Fits returns ErrGridSize unless g was sized for img at step.
func (g *Grid) Fits(img *image.Image, step int) error {
	p, q := Extents(img, step)
	if p != g.p || q != g.q {
		return fmt.Errorf("%w: grid %dx%d, image needs %dx%d", ErrGridSize, g.p, g.q, p, q)
	}
	return nil
}

// String renders the grid as rows of '0' and '1'.
func (g *Grid) String() string {
	b := make([]byte, 0, (g.p+1)*(g.q+2))
	for i := 0; i <= g.p; i++ {
		for _, c := range g.Row(i) {
			b = append(b, '0'+c)
		}
		b = append(b, '\n')
	}
	return string(b)
}
