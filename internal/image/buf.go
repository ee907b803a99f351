// Package image provides the RGB pixel buffer used by the contour pipeline.
//
// An Image is a fixed-size, row-major buffer of 8-bit RGB pixels. The buffer
// is allocated once and never resized, so it can be shared by several
// goroutines that write disjoint row ranges.
package image

import (
	"errors"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")

	// ErrDataTooSmall is returned when provided data does not cover width*height pixels.
	ErrDataTooSmall = errors.New("image: data buffer too small")
)

// Pixel is a single 24-bit color with no alpha channel.
type Pixel struct {
	R, G, B uint8
}

// Average returns the unweighted mean of the three channels,
// truncated toward zero.
func (p Pixel) Average() uint8 {
	return uint8((uint16(p.R) + uint16(p.G) + uint16(p.B)) / 3)
}

// Image is a row-major RGB buffer.
//
// Pixel (row, col) lives at index row*Width + col. The length of Pix is
// always Width*Height.
//
// Thread safety: Image has no internal locking. Concurrent writers must
// touch disjoint pixels, and readers of pixels written by another goroutine
// need a happens-before edge (for example a barrier) with that writer.
type Image struct {
	width  int
	height int
	pix    []Pixel
}

// NewImage creates a zeroed (black) image with the given dimensions.
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Image{
		width:  width,
		height: height,
		pix:    make([]Pixel, width*height),
	}, nil
}

// FromPixels wraps an existing pixel slice without copying.
// The slice must hold at least width*height pixels; it is truncated to that length.
func FromPixels(pix []Pixel, width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(pix) < width*height {
		return nil, ErrDataTooSmall
	}
	return &Image{
		width:  width,
		height: height,
		pix:    pix[:width*height],
	}, nil
}

// Clone creates a deep copy of the image.
func (m *Image) Clone() *Image {
	pix := make([]Pixel, len(m.pix))
	copy(pix, m.pix)
	return &Image{width: m.width, height: m.height, pix: pix}
}

// Width returns the image width in pixels (number of columns).
func (m *Image) Width() int {
	return m.width
}

// Height returns the image height in pixels (number of rows).
func (m *Image) Height() int {
	return m.height
}

// Bounds returns the image dimensions as (width, height).
func (m *Image) Bounds() (int, int) {
	return m.width, m.height
}

// Pix returns the underlying pixel slice.
func (m *Image) Pix() []Pixel {
	return m.pix
}

// Row returns the pixels of row y, or nil if y is out of bounds.
func (m *Image) Row(y int) []Pixel {
	if y < 0 || y >= m.height {
		return nil
	}
	return m.pix[y*m.width : (y+1)*m.width]
}

// Offset returns the index of pixel (row, col) in Pix.
// Returns -1 if coordinates are out of bounds.
func (m *Image) Offset(row, col int) int {
	if row < 0 || row >= m.height || col < 0 || col >= m.width {
		return -1
	}
	return row*m.width + col
}

// At returns the pixel at (row, col), or the zero Pixel if out of bounds.
func (m *Image) At(row, col int) Pixel {
	off := m.Offset(row, col)
	if off < 0 {
		return Pixel{}
	}
	return m.pix[off]
}

// Set stores p at (row, col).
// Returns ErrOutOfBounds if coordinates are outside image bounds.
func (m *Image) Set(row, col int, p Pixel) error {
	off := m.Offset(row, col)
	if off < 0 {
		return ErrOutOfBounds
	}
	m.pix[off] = p
	return nil
}

// Fill sets every pixel to p.
func (m *Image) Fill(p Pixel) {
	for i := range m.pix {
		m.pix[i] = p
	}
}

// Stamp copies every pixel of src into m with src's top-left corner at
// (row, col), overwriting the destination. Pixels that would fall outside m
// are skipped.
func (m *Image) Stamp(src *Image, row, col int) {
	for y := range src.height {
		dy := row + y
		if dy < 0 || dy >= m.height {
			continue
		}
		x0, x1 := 0, src.width
		if col < 0 {
			x0 = -col
		}
		if col+x1 > m.width {
			x1 = m.width - col
		}
		if x0 >= x1 {
			continue
		}
		dst := m.pix[dy*m.width+col+x0 : dy*m.width+col+x1]
		copy(dst, src.pix[y*src.width+x0:y*src.width+x1])
	}
}

// Equal reports whether m and other have the same dimensions and pixels.
func (m *Image) Equal(other *Image) bool {
	if m.width != other.width || m.height != other.height {
		return false
	}
	for i := range m.pix {
		if m.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// RegionEqual reports whether the region of m starting at (row, col) with
// the dimensions of ref matches ref pixel for pixel. Regions that extend past
// m's bounds never match.
func (m *Image) RegionEqual(ref *Image, row, col int) bool {
	if row < 0 || col < 0 || row+ref.height > m.height || col+ref.width > m.width {
		return false
	}
	for y := range ref.height {
		for x := range ref.width {
			if m.pix[(row+y)*m.width+col+x] != ref.pix[y*ref.width+x] {
				return false
			}
		}
	}
	return true
}
