package image

import "math"

// SampleBicubic performs bicubic interpolation at normalized coordinates (u, v).
// u selects the row and v the column; both are in [0, 1] where (0,0) is the
// top-left pixel and (1,1) the bottom-right. The 4x4 neighbourhood is clamped
// to the image edge. Each channel is interpolated independently, clamped to
// [0, 255] and rounded to the nearest integer.
func SampleBicubic(img *Image, u, v float64) Pixel {
	w, h := img.Bounds()

	// Convert normalized coords to continuous pixel coords
	fy := u*float64(h) - 0.5
	fx := v*float64(w) - 0.5

	y := int(math.Floor(fy))
	x := int(math.Floor(fx))
	ty := fy - float64(y)
	tx := fx - float64(x)

	var rVals, gVals, bVals [4][4]float64

	for dy := -1; dy <= 2; dy++ {
		py := clamp(y+dy, 0, h-1)
		row := img.pix[py*w : (py+1)*w]
		for dx := -1; dx <= 2; dx++ {
			p := row[clamp(x+dx, 0, w-1)]
			rVals[dy+1][dx+1] = float64(p.R)
			gVals[dy+1][dx+1] = float64(p.G)
			bVals[dy+1][dx+1] = float64(p.B)
		}
	}

	return Pixel{
		R: toChannel(bicubicInterp(rVals, tx, ty)),
		G: toChannel(bicubicInterp(gVals, tx, ty)),
		B: toChannel(bicubicInterp(bVals, tx, ty)),
	}
}

// RescaleRows fills rows [start, end) of dst with bicubic samples of src.
// Row i, column j of dst samples src at u = i/(dst.Height-1),
// v = j/(dst.Width-1). Rows outside dst are ignored, so callers may pass
// the raw bounds of a partition.
//
// RescaleRows writes only to its row range of dst and only reads src, so
// disjoint ranges may run concurrently.
func RescaleRows(dst, src *Image, start, end int) {
	start = max(start, 0)
	end = min(end, dst.height)

	uDen := float64(max(dst.height-1, 1))
	vDen := float64(max(dst.width-1, 1))

	for i := start; i < end; i++ {
		u := float64(i) / uDen
		row := dst.pix[i*dst.width : (i+1)*dst.width]
		for j := range row {
			row[j] = SampleBicubic(src, u, float64(j)/vDen)
		}
	}
}

// clamp clamps an integer value to [minVal, maxVal].
//
//nolint:unparam // minVal is always 0 currently, but function is general-purpose
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// clampFloat clamps a float64 value to [minVal, maxVal].
//
//nolint:unparam // minVal is always 0 currently, but function is general-purpose
func clampFloat(val, minVal, maxVal float64) float64 {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// toChannel clamps v to [0, 255] and rounds it. Rounding keeps flat regions
// flat: the weights sum to 1 only up to floating-point error.
func toChannel(v float64) uint8 {
	return uint8(math.Round(clampFloat(v, 0, 255)))
}

// cubicWeight computes the Catmull-Rom cubic weight for distance t.
func cubicWeight(t float64) float64 {
	// Catmull-Rom spline (Mitchell-Netravali with B=0, C=0.5):
	// |t| < 1: (1.5|t|³ - 2.5|t|² + 1)
	// 1 ≤ |t| < 2: (-0.5|t|³ + 2.5|t|² - 4|t| + 2)
	// |t| ≥ 2: 0
	absT := math.Abs(t)
	if absT < 1 {
		return 1.5*absT*absT*absT - 2.5*absT*absT + 1.0
	}
	if absT < 2 {
		return -0.5*absT*absT*absT + 2.5*absT*absT - 4.0*absT + 2.0
	}
	return 0
}

// bicubicInterp performs bicubic interpolation on a 4x4 grid using Catmull-Rom weights.
func bicubicInterp(vals [4][4]float64, tx, ty float64) float64 {
	wx := [4]float64{
		cubicWeight(tx + 1),
		cubicWeight(tx),
		cubicWeight(tx - 1),
		cubicWeight(tx - 2),
	}
	wy := [4]float64{
		cubicWeight(ty + 1),
		cubicWeight(ty),
		cubicWeight(ty - 1),
		cubicWeight(ty - 2),
	}

	var result float64
	for i := range 4 {
		for j := range 4 {
			//nolint:gosec // G602: arrays are fixed size [4][4] and loop is bounded by 4
			result += vals[i][j] * wx[j] * wy[i]
		}
	}

	return result
}
