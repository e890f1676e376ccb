package safetensors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Common errors.
var (
	// ErrInvalidFile is returned for a file whose header or data section is
	// malformed. Details are carried by a *ValidationError.
	ErrInvalidFile = errors.New("safetensors: invalid file")

	// ErrUnsupportedDType is returned for element types other than F32, F64,
	// I32, I64, U8 and BOOL.
	ErrUnsupportedDType = errors.New("safetensors: unsupported dtype")

	// ErrNotFound is returned when a file holds no tensor of the requested name.
	ErrNotFound = errors.New("safetensors: tensor not found")
)

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Type    string // Type of error (e.g., "offset_overlap", "out_of_bounds")
	Tensor  string // Primary tensor name involved
	Tensor2 string // Secondary tensor name (for overlap errors)
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Tensor2 != "" {
		return fmt.Sprintf("safetensors: %s: tensors %q and %q: %s", e.Type, e.Tensor, e.Tensor2, e.Details)
	}
	if e.Tensor != "" {
		return fmt.Sprintf("safetensors: %s: tensor %q: %s", e.Type, e.Tensor, e.Details)
	}
	return fmt.Sprintf("safetensors: %s: %s", e.Type, e.Details)
}

// Unwrap makes every ValidationError match ErrInvalidFile.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidFile
}
