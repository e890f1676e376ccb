package safetensors

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
)

// header is one tensor in the JSON header.
type header struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// Write writes tensors to w. Tensors are laid out in alphabetical order by
// name.
func Write(w io.Writer, tensors map[string]Entry, metadata map[string]string) error {
	names := make([]string, 0, len(tensors))
	for name := range tensors {
		if err := validateName(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	hdr := make(map[string]any, len(names)+1)
	if len(metadata) > 0 {
		hdr[metadataKey] = metadata
	}
	var offset int64
	for _, name := range names {
		e := tensors[name]
		dtype, ok := dtypeNames[e.DType]
		if !ok {
			return errors.Wrapf(ErrUnsupportedDType, "tensor %q: %s", name, e.DType)
		}
		shape := make([]int64, len(e.Shape))
		for i, dim := range e.Shape {
			shape[i] = int64(dim)
		}
		size := int64(len(e.Data))
		hdr[name] = header{DType: dtype, Shape: shape, DataOffsets: [2]int64{offset, offset + size}}
		offset += size
	}

	headerJSON, err := json.Marshal(hdr)
	if err != nil {
		return errors.Wrap(err, "safetensors: marshaling header")
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return errors.Wrap(err, "safetensors: writing header size")
	}
	if _, err := w.Write(headerJSON); err != nil {
		return errors.Wrap(err, "safetensors: writing header")
	}
	for _, name := range names {
		if _, err := w.Write(tensors[name].Data); err != nil {
			return errors.Wrapf(err, "safetensors: writing tensor %q", name)
		}
	}
	return nil
}

// WriteFile writes tensors to the file at path, replacing it.
func WriteFile(path string, tensors map[string]Entry, metadata map[string]string) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for saving results
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "safetensors: creating file")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(f, tensors, metadata)
}
