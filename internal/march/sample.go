package march

import "github.com/gogpu/contour/internal/image"

// Sampler thresholds a working image into a Grid.
type Sampler struct {
	// Step is the pixel distance between neighbouring sample points.
	Step int

	// Sigma is the intensity threshold. A sample whose channel average is at
	// or below Sigma is foreground (1); above it is background (0).
	Sigma int
}

// Classify returns 1 for foreground and 0 for background.
func (s Sampler) Classify(p image.Pixel) uint8 {
	if int(p.Average()) > s.Sigma {
		return 0
	}
	return 1
}

// SampleRows fills grid rows [start, end) for every interior column j < q
// from pixel (i*Step, j*Step), and the right-edge column q of the same rows
// from the image's last pixel column. Rows outside [0, p) are ignored.
func (s Sampler) SampleRows(img *image.Image, g *Grid, start, end int) {
	start = max(start, 0)
	end = min(end, g.p)
	lastCol := img.Width() - 1

	for i := start; i < end; i++ {
		row := g.Row(i)
		y := i * s.Step
		for j := range g.q {
			row[j] = s.Classify(img.At(y, j*s.Step))
		}
		row[g.q] = s.Classify(img.At(y, lastCol))
	}
}

// SampleBottom fills columns [start, end) of the bottom-edge grid row p from
// the image's last pixel row. Columns outside [0, q) are ignored.
func (s Sampler) SampleBottom(img *image.Image, g *Grid, start, end int) {
	start = max(start, 0)
	end = min(end, g.q)
	lastRow := img.Height() - 1

	row := g.Row(g.p)
	for j := start; j < end; j++ {
		row[j] = s.Classify(img.At(lastRow, j*s.Step))
	}
}

// SampleCorner fixes the bottom-right sample (p, q) to background.
func (s Sampler) SampleCorner(g *Grid) {
	g.Set(g.p, g.q, 0)
}

// Sample fills the whole grid on the calling goroutine.
func (s Sampler) Sample(img *image.Image, g *Grid) {
	s.SampleRows(img, g, 0, g.p)
	s.SampleBottom(img, g, 0, g.q)
	s.SampleCorner(g)
}
