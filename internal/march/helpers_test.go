package march

import (
	"testing"

	"github.com/gogpu/contour/internal/image"
)

// solidTiles builds a table whose tile k is filled with Pixel{R: k*16, G: k, B: 255-k}.
func solidTiles(t testing.TB, step int) *TileTable {
	t.Helper()
	tiles := make([]*image.Image, ConfigCount)
	for k := range tiles {
		tile, err := image.NewImage(step, step)
		if err != nil {
			t.Fatalf("NewImage failed: %v", err)
		}
		tile.Fill(tileColor(uint8(k)))
		tiles[k] = tile
	}
	table, err := NewTileTable(tiles)
	if err != nil {
		t.Fatalf("NewTileTable failed: %v", err)
	}
	return table
}

func tileColor(k uint8) image.Pixel {
	return image.Pixel{R: k * 16, G: k, B: 255 - k}
}

// filled returns a width x height image of a single color.
func filled(t testing.TB, width, height int, p image.Pixel) *image.Image {
	t.Helper()
	m, err := image.NewImage(width, height)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	m.Fill(p)
	return m
}

var (
	white = image.Pixel{R: 255, G: 255, B: 255}
	black = image.Pixel{}
)
