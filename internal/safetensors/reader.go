package safetensors

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/born-ml/einstein/internal/tensor"
)

const metadataKey = "__metadata__"

// Read parses a SafeTensors stream. The header is validated before any
// tensor is extracted.
func Read(r io.Reader) (*File, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, errors.Wrap(err, "safetensors: reading header size")
	}
	if headerSize > MaxHeaderSize {
		return nil, &ValidationError{
			Type:    "header_too_large",
			Details: formatLimit(headerSize, MaxHeaderSize),
		}
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, errors.Wrap(err, "safetensors: reading header")
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(headerBytes, &raw); err != nil {
		return nil, errors.Wrapf(ErrInvalidFile, "parsing header JSON: %v", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "safetensors: reading data")
	}

	f := &File{Tensors: make(map[string]Entry, len(raw))}
	metas := make([]tensorMeta, 0, len(raw))
	for name, msg := range raw {
		if name == metadataKey {
			if err := json.Unmarshal(msg, &f.Metadata); err != nil {
				return nil, errors.Wrapf(ErrInvalidFile, "parsing metadata: %v", err)
			}
			continue
		}
		if err := validateName(name); err != nil {
			return nil, err
		}
		var h header
		if err := json.Unmarshal(msg, &h); err != nil {
			return nil, errors.Wrapf(ErrInvalidFile, "tensor %q: %v", name, err)
		}
		e, err := entryOf(name, h)
		if err != nil {
			return nil, err
		}
		metas = append(metas, tensorMeta{
			Name:   name,
			Offset: h.DataOffsets[0],
			Size:   h.DataOffsets[1] - h.DataOffsets[0],
			Want:   int64(e.Shape.NumElements() * e.DType.Size()),
		})
		f.Tensors[name] = e
	}

	if err := validateOffsets(metas, int64(len(data))); err != nil {
		return nil, err
	}
	for _, m := range metas {
		e := f.Tensors[m.Name]
		e.Data = data[m.Offset : m.Offset+m.Size]
		f.Tensors[m.Name] = e
	}
	return f, nil
}

// entryOf converts a header record to an Entry without data.
func entryOf(name string, h header) (Entry, error) {
	dt, err := parseDType(h.DType)
	if err != nil {
		return Entry{}, errors.WithMessagef(err, "tensor %q", name)
	}
	shape := make(tensor.Shape, len(h.Shape))
	for i, dim := range h.Shape {
		shape[i] = int(dim)
	}
	if err := shape.Validate(); err != nil {
		return Entry{}, errors.WithMessagef(err, "tensor %q", name)
	}
	return Entry{DType: dt, Shape: shape}, nil
}

// ReadFile reads the SafeTensors file at path.
func ReadFile(path string) (*File, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for loading tensors
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "safetensors: opening file")
	}
	defer func() {
		_ = f.Close() // Best effort close
	}()
	out, err := Read(f)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return out, nil
}
