package safe

import (
	"fmt"

	"gocv.io/x/gocv"
)

func ValidateMatForOperation(mat *Mat, operation string) error {
	if mat == nil {
		return fmt.Errorf("Mat is nil for operation: %s", operation)
	}

	if !mat.IsValid() {
		return fmt.Errorf("Mat is invalid for operation: %s", operation)
	}

	if mat.Empty() {
		return fmt.Errorf("Mat is empty for operation: %s", operation)
	}

	if mat.Rows() <= 0 || mat.Cols() <= 0 {
		return fmt.Errorf("Mat has invalid dimensions %dx%d for operation: %s",
			mat.Cols(), mat.Rows(), operation)
	}

	return nil
}

func ValidateDimensions(width, height int, operation string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d for operation: %s", width, height, operation)
	}

	if width > 32768 || height > 32768 {
		return fmt.Errorf("dimensions %dx%d exceed maximum size for operation: %s", width, height, operation)
	}

	return nil
}

// MatTypeForChannels maps an 8-bit channel count to its MatType
func MatTypeForChannels(channels int) (gocv.MatType, error) {
	switch channels {
	case 1:
		return gocv.MatTypeCV8UC1, nil
	case 3:
		return gocv.MatTypeCV8UC3, nil
	case 4:
		return gocv.MatTypeCV8UC4, nil
	default:
		return 0, fmt.Errorf("unsupported channel count: %d", channels)
	}
}

// ValidateMatType accepts only 8-bit unsigned Mats
func ValidateMatType(matType gocv.MatType, operation string) error {
	switch matType {
	case gocv.MatTypeCV8UC1, gocv.MatTypeCV8UC3, gocv.MatTypeCV8UC4:
		return nil
	default:
		return fmt.Errorf("unsupported MatType %d for operation: %s", int(matType), operation)
	}
}
