package conversion

import (
	"fmt"
	"image"

	"pixel-veil/internal/models"
	"pixel-veil/internal/opencv/safe"
	"pixel-veil/internal/resample"

	"gocv.io/x/gocv"
)

func init() {
	resample.Register(resample.OpenCVLinear, func() resample.Resampler {
		return &Resampler{interpolation: gocv.InterpolationLinear, method: resample.OpenCVLinear}
	})
}

// ResizeMat resizes src to exactly newWidth x newHeight
func ResizeMat(src *safe.Mat, newWidth, newHeight int, interpolation gocv.InterpolationFlags) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "Mat resizing"); err != nil {
		return nil, err
	}

	if err := safe.ValidateDimensions(newWidth, newHeight, "Mat resizing"); err != nil {
		return nil, err
	}

	dst := gocv.NewMat()
	gocv.Resize(src.GetMat(), &dst, image.Point{X: newWidth, Y: newHeight}, 0, 0, interpolation)

	return safe.Own(dst)
}

// Resampler reconciles grid shapes with cv::resize, reproducing the output of
// OpenCV-based tools bit for bit.
type Resampler struct {
	interpolation gocv.InterpolationFlags
	method        resample.Method
}

// Method implements resample.Resampler
func (r *Resampler) Method() resample.Method {
	return r.method
}

// Resample implements resample.Resampler
func (r *Resampler) Resample(src *models.PixelGrid, width, height int) (*models.PixelGrid, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target size %dx%d", models.ErrInvalidInput, width, height)
	}
	if src.Width == width && src.Height == height {
		return src.Clone(), nil
	}

	mat, err := GridToMat(src)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	resized, err := ResizeMat(mat, width, height, r.interpolation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	defer resized.Close()

	return MatToGrid(resized)
}
