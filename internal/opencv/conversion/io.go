package conversion

import (
	"fmt"

	"pixel-veil/internal/imageio"
	"pixel-veil/internal/models"
	"pixel-veil/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// BackendName selects the OpenCV image backend in configuration
const BackendName = "opencv"

func init() {
	imageio.RegisterBackend(BackendName, func() imageio.Backend {
		return imageio.Backend{Name: BackendName, Loader: Loader{}, Writer: Writer{}}
	})
}

// Loader reads images with cv::imread in colour mode
type Loader struct{}

// Load implements imageio.Loader
func (Loader) Load(path string) (*models.PixelGrid, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("%w: cannot read %s", models.ErrDecode, path)
	}

	owned, err := safe.Own(mat)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrDecode, path, err)
	}
	defer owned.Close()

	grid, err := MatToGrid(owned)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrDecode, path, err)
	}
	return grid, nil
}

// Writer stores images with cv::imwrite
type Writer struct{}

// Write implements imageio.Writer
func (Writer) Write(grid *models.PixelGrid, path string) error {
	if _, err := imageio.CheckLosslessPath(path); err != nil {
		return err
	}

	mat, err := GridToMat(grid)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrWrite, err)
	}
	defer mat.Close()

	if ok := gocv.IMWrite(path, mat.GetMat()); !ok {
		return fmt.Errorf("%w: cv::imwrite failed for %s", models.ErrWrite, path)
	}
	return nil
}
