package contour

import (
	"fmt"

	intImage "github.com/gogpu/contour/internal/image"
	"github.com/gogpu/contour/internal/march"
)

// Image is a public alias for the internal RGB pixel buffer.
// Pixel (row, col) is stored at row*Width + col.
type Image = intImage.Image

// Pixel is a public alias for a 24-bit RGB color.
type Pixel = intImage.Pixel

// TileTable is a public alias for the table of sixteen contour tiles.
type TileTable = march.TileTable

// Grid is a public alias for the binary sample grid.
type Grid = march.Grid

// NewImage creates a black image with the given dimensions.
func NewImage(width, height int) (*Image, error) {
	return intImage.NewImage(width, height)
}

// LoadImage decodes an image file. The format follows the extension
// (.ppm, .pnm, .png, .jpg, .jpeg, .bmp, .tif, .tiff); unknown extensions are
// sniffed from content. A trailing .zst is decompressed.
func LoadImage(path string) (*Image, error) {
	img, err := intImage.Load(path)
	if err != nil {
		return nil, err
	}
	Logger().Debug("image loaded", "path", path, "width", img.Width(), "height", img.Height())
	return img, nil
}

// SaveImage encodes img to path using the format implied by the extension.
func SaveImage(img *Image, path string) error {
	if img == nil {
		return ErrNilImage
	}
	if err := img.Save(path); err != nil {
		return fmt.Errorf("contour: save %s: %w", path, err)
	}
	Logger().Debug("image saved", "path", path, "width", img.Width(), "height", img.Height())
	return nil
}

// LoadTiles loads the sixteen tiles <dir>/0<ext> ... <dir>/15<ext>.
func LoadTiles(dir, ext string) (*TileTable, error) {
	tiles, err := march.LoadTiles(dir, ext)
	if err != nil {
		return nil, err
	}
	w, h := tiles.Size()
	Logger().Debug("tiles loaded", "dir", dir, "ext", ext, "width", w, "height", h)
	return tiles, nil
}

// SynthesizeTiles draws a built-in step x step tile set: black contour
// segments on white.
func SynthesizeTiles(step int) (*TileTable, error) {
	return march.SynthesizeTiles(step)
}
