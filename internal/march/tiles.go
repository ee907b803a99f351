package march

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/contour/internal/image"
)

// ConfigCount is the number of distinct cell configurations.
const ConfigCount = 16

// Tile table errors.
var (
	// ErrTileCount is returned when a table is built from other than 16 tiles.
	ErrTileCount = errors.New("march: tile table needs 16 tiles")

	// ErrTileSize is returned when tiles differ in size or do not match the step.
	ErrTileSize = errors.New("march: tile size mismatch")
)

// TileTable maps each configuration index to its contour tile.
// A TileTable is immutable once built and safe for concurrent reads.
type TileTable struct {
	tiles  [ConfigCount]*image.Image
	width  int
	height int
}

// NewTileTable builds a table from exactly 16 tiles of identical size.
// The tiles are referenced, not copied; callers must not modify them afterwards.
func NewTileTable(tiles []*image.Image) (*TileTable, error) {
	if len(tiles) != ConfigCount {
		return nil, fmt.Errorf("%w: got %d", ErrTileCount, len(tiles))
	}

	t := &TileTable{}
	for k, tile := range tiles {
		if tile == nil {
			return nil, fmt.Errorf("%w: tile %d is nil", ErrTileCount, k)
		}
		t.tiles[k] = tile
	}

	t.width, t.height = tiles[0].Bounds()
	for k, tile := range tiles[1:] {
		if w, h := tile.Bounds(); w != t.width || h != t.height {
			return nil, fmt.Errorf("%w: tile %d is %dx%d, tile 0 is %dx%d",
				ErrTileSize, k+1, w, h, t.width, t.height)
		}
	}
	return t, nil
}

// Tile returns the tile for configuration index k (masked to 4 bits).
func (t *TileTable) Tile(k uint8) *image.Image {
	return t.tiles[k&(ConfigCount-1)]
}

// Size returns the common tile dimensions as (width, height).
func (t *TileTable) Size() (int, int) {
	return t.width, t.height
}

// FitsStep returns ErrTileSize unless every tile is step x step.
func (t *TileTable) FitsStep(step int) error {
	if t.width != step || t.height != step {
		return fmt.Errorf("%w: tiles are %dx%d, step is %d", ErrTileSize, t.width, t.height, step)
	}
	return nil
}

// TilePath returns the conventional path of tile k: <dir>/<k><ext>.
func TilePath(dir string, k int, ext string) string {
	return filepath.Join(dir, strconv.Itoa(k)+ext)
}

// LoadTiles decodes the sixteen tiles <dir>/0<ext> ... <dir>/15<ext>
// concurrently. The first decode error is returned.
func LoadTiles(dir, ext string) (*TileTable, error) {
	tiles := make([]*image.Image, ConfigCount)

	var g errgroup.Group
	for k := range tiles {
		g.Go(func() error {
			tile, err := image.Load(TilePath(dir, k, ext))
			if err != nil {
				return fmt.Errorf("march: load tile %d: %w", k, err)
			}
			tiles[k] = tile
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewTileTable(tiles)
}

// Tile edges, named by the side of the cell they lie on.
type edge uint8

const (
	edgeTop edge = iota
	edgeRight
	edgeBottom
	edgeLeft
)

// segments lists, per configuration, the pairs of cell edges joined by a
// contour fragment. Saddles (5 and 10) carry two fragments that cut off the
// isolated foreground corners.
var segments = [ConfigCount][][2]edge{
	0:  nil,
	1:  {{edgeLeft, edgeBottom}},
	2:  {{edgeBottom, edgeRight}},
	3:  {{edgeLeft, edgeRight}},
	4:  {{edgeTop, edgeRight}},
	5:  {{edgeTop, edgeRight}, {edgeLeft, edgeBottom}},
	6:  {{edgeTop, edgeBottom}},
	7:  {{edgeLeft, edgeTop}},
	8:  {{edgeLeft, edgeTop}},
	9:  {{edgeTop, edgeBottom}},
	10: {{edgeLeft, edgeTop}, {edgeBottom, edgeRight}},
	11: {{edgeTop, edgeRight}},
	12: {{edgeLeft, edgeRight}},
	13: {{edgeBottom, edgeRight}},
	14: {{edgeLeft, edgeBottom}},
	15: nil,
}

// Colors used by synthesized tiles.
var (
	TileBackground = image.Pixel{R: 255, G: 255, B: 255}
	TileInk        = image.Pixel{R: 0, G: 0, B: 0}
)

// SynthesizeTiles draws the sixteen canonical contour fragments as
// step x step tiles: TileInk line segments between the midpoints of the
// crossed cell edges on a TileBackground field.
func SynthesizeTiles(step int) (*TileTable, error) {
	tiles := make([]*image.Image, ConfigCount)
	for k := range tiles {
		tile, err := image.NewImage(step, step)
		if err != nil {
			return nil, fmt.Errorf("march: synthesize tile %d: %w", k, err)
		}
		tile.Fill(TileBackground)
		for _, seg := range segments[k] {
			drawSegment(tile, seg[0], seg[1])
		}
		tiles[k] = tile
	}
	return NewTileTable(tiles)
}

// midpoint returns the (row, col) centre of a tile edge.
func midpoint(e edge, size int) (float64, float64) {
	last := float64(size - 1)
	mid := last / 2
	switch e {
	case edgeTop:
		return 0, mid
	case edgeRight:
		return mid, last
	case edgeBottom:
		return last, mid
	default:
		return mid, 0
	}
}

// drawSegment rasterises a straight line between two edge midpoints.
func drawSegment(tile *image.Image, a, b edge) {
	size := tile.Width()
	r0, c0 := midpoint(a, size)
	r1, c1 := midpoint(b, size)

	n := max(2*size, 1)
	for s := 0; s <= n; s++ {
		t := float64(s) / float64(n)
		row := int(math.Round(r0 + (r1-r0)*t))
		col := int(math.Round(c0 + (c1-c0)*t))
		_ = tile.Set(row, col, TileInk)
	}
}
