package thermal

import "math"

// CubicInterpolate evaluates the Catmull-Rom cubic through p[1] and p[2]
// at fractional position t in [0, 1], using p[0] and p[3] as outer taps.
func CubicInterpolate(p [4]float64, t float64) float64 {
	return p[1] + 0.5*t*(p[2]-p[0]+
		t*(2.0*p[0]-5.0*p[1]+4.0*p[2]-p[3]+
			t*(3.0*(p[1]-p[2])+p[3]-p[0])))
}

// BicubicInterpolate interpolates a 4x4 row-major neighborhood: each row is
// interpolated horizontally at tx, then the four results vertically at ty.
func BicubicInterpolate(p *[16]float64, tx, ty float64) float64 {
	var col [4]float64
	for row := 0; row < 4; row++ {
		col[row] = CubicInterpolate([4]float64{p[row*4], p[row*4+1], p[row*4+2], p[row*4+3]}, tx)
	}
	return CubicInterpolate(col, ty)
}

// neighborhood gathers the 4x4 samples around (x, y), from (x-1, y-1) to
// (x+2, y+2), clamping at the grid edges.
func neighborhood(src *Grid, x, y int, dst *[16]float64) {
	for dy := -1; dy <= 2; dy++ {
		row := (dy + 1) * 4
		for dx := -1; dx <= 2; dx++ {
			dst[row+dx+1] = src.At(x+dx, y+dy)
		}
	}
}

// axisStep returns the source distance between adjacent destination cells.
// The first and last destination cells land exactly on the first and last
// source samples.
func axisStep(srcN, dstN int) float64 {
	if dstN <= 1 {
		return 0
	}
	return float64(srcN-1) / float64(dstN-1)
}

// Interpolate upsamples (or resamples) src into dst with separable bicubic
// convolution. dst may have any dimensions.
func Interpolate(src, dst *Grid) {
	muX := axisStep(src.Cols, dst.Cols)
	muY := axisStep(src.Rows, dst.Rows)

	var p [16]float64
	for dy := 0; dy < dst.Rows; dy++ {
		sy := float64(dy) * muY
		by := math.Floor(sy)
		ty := sy - by
		for dx := 0; dx < dst.Cols; dx++ {
			sx := float64(dx) * muX
			bx := math.Floor(sx)
			tx := sx - bx

			neighborhood(src, int(bx), int(by), &p)
			dst.Data[dy*dst.Cols+dx] = BicubicInterpolate(&p, tx, ty)
		}
	}
}
