package march

import "github.com/gogpu/contour/internal/image"

// Corner weights of the configuration index, clockwise from the top-left.
const (
	WeightTopLeft     = 8
	WeightTopRight    = 4
	WeightBottomRight = 2
	WeightBottomLeft  = 1
)

// Index returns the 4-bit configuration of cell (i, j).
// It reads samples (i, j), (i, j+1), (i+1, j+1) and (i+1, j).
func Index(g *Grid, i, j int) uint8 {
	return WeightTopLeft*g.At(i, j) +
		WeightTopRight*g.At(i, j+1) +
		WeightBottomRight*g.At(i+1, j+1) +
		WeightBottomLeft*g.At(i+1, j)
}

// MarchRows stamps the configuration tile of every cell in grid rows
// [start, end) and all q columns into img, with cell (i, j) landing at pixel
// (i*step, j*step). Destination pixels are overwritten. Rows outside [0, p)
// are ignored.
//
// Tiles must be step x step so that the pixels written stay inside the
// band of image rows owned by [start, end).
func MarchRows(img *image.Image, g *Grid, tiles *TileTable, step, start, end int) {
	start = max(start, 0)
	end = min(end, g.p)

	for i := start; i < end; i++ {
		for j := range g.q {
			img.Stamp(tiles.Tile(Index(g, i, j)), i*step, j*step)
		}
	}
}

// March stamps every cell of the grid on the calling goroutine.
func March(img *image.Image, g *Grid, tiles *TileTable, step int) {
	MarchRows(img, g, tiles, step, 0, g.p)
}
