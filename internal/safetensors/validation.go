package safetensors

import (
	"fmt"
	"sort"
	"strings"
)

// Validation limits for resource protection.
const (
	MaxHeaderSize    = 100 * 1024 * 1024 // 100MB - maximum header size
	MaxTensorCount   = 100_000           // Maximum number of tensors in a file
	MaxTensorNameLen = 4096              // Maximum tensor name length
)

// tensorMeta is the byte range of one tensor within the data section.
type tensorMeta struct {
	Name   string
	Offset int64
	Size   int64
	Want   int64 // size implied by dtype and shape
}

func formatLimit(got, limit uint64) string {
	return fmt.Sprintf("got %d, max %d", got, limit)
}

// validateOffsets checks every byte range against its shape, the bounds of
// the data section, and its neighbours.
func validateOffsets(tensors []tensorMeta, dataSize int64) error {
	if len(tensors) > MaxTensorCount {
		return &ValidationError{
			Type:    "too_many_tensors",
			Details: formatLimit(uint64(len(tensors)), MaxTensorCount),
		}
	}

	sorted := make([]tensorMeta, len(tensors))
	copy(sorted, tensors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, t := range sorted {
		if t.Offset < 0 || t.Size < 0 {
			return &ValidationError{
				Type:    "negative_offset",
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset=%d, size=%d", t.Offset, t.Size),
			}
		}
		if t.Size != t.Want {
			return &ValidationError{
				Type:    "size_mismatch",
				Tensor:  t.Name,
				Details: fmt.Sprintf("%d bytes stored, shape needs %d", t.Size, t.Want),
			}
		}
		if t.Offset+t.Size > dataSize {
			return &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", t.Offset, t.Size, dataSize),
			}
		}
		if i < len(sorted)-1 {
			next := sorted[i+1]
			if t.Offset+t.Size > next.Offset {
				return &ValidationError{
					Type:    "offset_overlap",
					Tensor:  t.Name,
					Tensor2: next.Name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						t.Offset, t.Offset+t.Size, next.Offset, next.Offset+next.Size),
				}
			}
		}
	}
	return nil
}

// validateName rejects empty, oversized and path-like tensor names.
func validateName(name string) error {
	switch {
	case name == "":
		return &ValidationError{Type: "invalid_name", Details: "empty tensor name"}
	case len(name) > MaxTensorNameLen:
		return &ValidationError{
			Type:    "name_too_long",
			Tensor:  name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen),
		}
	case name == metadataKey:
		return &ValidationError{Type: "invalid_name", Tensor: name, Details: "reserved for metadata"}
	case strings.Contains(name, ".."), strings.ContainsAny(name, "/\\\x00"):
		return &ValidationError{Type: "invalid_name", Tensor: name, Details: "contains a path element or null byte"}
	}
	return nil
}
