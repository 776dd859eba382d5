package quality

import (
	"fmt"

	"pixel-veil/internal/models"
	"pixel-veil/internal/parallel"

	"gonum.org/v1/gonum/stat"
)

// SSIM parameters after Wang et al. 2004 with a uniform window and sample
// covariance, matching scikit-image's structural_similarity defaults.
const (
	WindowSize = 7
	dataRange  = 255.0
	k1         = 0.01
	k2         = 0.03
	c1         = (k1 * dataRange) * (k1 * dataRange)
	c2         = (k2 * dataRange) * (k2 * dataRange)
)

// integral holds summed-area tables of x, y, x², y² and xy with a zero
// leading row and column.
type integral struct {
	w                     int
	sx, sy, sxx, syy, sxy []int64
}

func newIntegral(x, y *models.PixelGrid) *integral {
	w, h := x.Width+1, x.Height+1
	in := &integral{
		w:   w,
		sx:  make([]int64, w*h),
		sy:  make([]int64, w*h),
		sxx: make([]int64, w*h),
		syy: make([]int64, w*h),
		sxy: make([]int64, w*h),
	}

	for r := 1; r < h; r++ {
		var rx, ry, rxx, ryy, rxy int64
		row := (r - 1) * x.Width
		for c := 1; c < w; c++ {
			a := int64(x.Pix[row+c-1])
			b := int64(y.Pix[row+c-1])
			rx += a
			ry += b
			rxx += a * a
			ryy += b * b
			rxy += a * b

			i, up := r*w+c, (r-1)*w+c
			in.sx[i] = in.sx[up] + rx
			in.sy[i] = in.sy[up] + ry
			in.sxx[i] = in.sxx[up] + rxx
			in.syy[i] = in.syy[up] + ryy
			in.sxy[i] = in.sxy[up] + rxy
		}
	}
	return in
}

// box sums table t over rows [r0, r0+n) and columns [c0, c0+n)
func (in *integral) box(t []int64, r0, c0, n int) float64 {
	rEnd, cEnd := r0+n, c0+n
	return float64(t[rEnd*in.w+cEnd] - t[r0*in.w+cEnd] - t[rEnd*in.w+c0] + t[r0*in.w+c0])
}

// SSIM computes the mean structural similarity of two equally sized
// single-channel grids over every 7x7 window lying fully inside the image.
func SSIM(x, y *models.PixelGrid, workers int) (float64, error) {
	if err := x.Validate(); err != nil {
		return 0, err
	}
	if err := y.Validate(); err != nil {
		return 0, err
	}
	if x.Channels != 1 || y.Channels != 1 {
		return 0, fmt.Errorf("%w: SSIM needs single-channel grids, got %d and %d",
			models.ErrShapeMismatch, x.Channels, y.Channels)
	}
	if !x.SameSize(y) {
		return 0, fmt.Errorf("%w: SSIM inputs %s and %s", models.ErrShapeMismatch, x, y)
	}
	if x.Height < WindowSize || x.Width < WindowSize {
		return 0, fmt.Errorf("%w: SSIM needs at least %dx%d pixels, got %dx%d",
			models.ErrInvalidInput, WindowSize, WindowSize, x.Width, x.Height)
	}

	in := newIntegral(x, y)

	rows := x.Height - WindowSize + 1
	cols := x.Width - WindowSize + 1
	ssimMap := make([]float64, rows*cols)

	const np = float64(WindowSize * WindowSize)
	const covNorm = np / (np - 1)

	parallel.Rows(rows, workers, func(start, end int) {
		for r := start; r < end; r++ {
			for c := 0; c < cols; c++ {
				ux := in.box(in.sx, r, c, WindowSize) / np
				uy := in.box(in.sy, r, c, WindowSize) / np
				uxx := in.box(in.sxx, r, c, WindowSize) / np
				uyy := in.box(in.syy, r, c, WindowSize) / np
				uxy := in.box(in.sxy, r, c, WindowSize) / np

				vx := covNorm * (uxx - ux*ux)
				vy := covNorm * (uyy - uy*uy)
				vxy := covNorm * (uxy - ux*uy)

				num := (2*ux*uy + c1) * (2*vxy + c2)
				den := (ux*ux + uy*uy + c1) * (vx + vy + c2)
				ssimMap[r*cols+c] = num / den
			}
		}
	})

	return stat.Mean(ssimMap, nil), nil
}
