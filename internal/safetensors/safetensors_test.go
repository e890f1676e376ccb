package safetensors

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/einstein/internal/tensor"
)

// build assembles a raw file from a header and a data section.
func build(header string, data []byte) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, uint64(len(header)))
	buf.WriteString(header)
	buf.Write(data)
	return buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	a, err := tensor.FromSlice([]float64{1, -2.5, 3, 4}, tensor.Shape{2, 2})
	require.NoError(t, err)
	b, err := tensor.FromSlice([]int32{-7, 0, 7}, tensor.Shape{3})
	require.NoError(t, err)
	m, err := tensor.FromSlice([]bool{true, false}, tensor.Shape{2})
	require.NoError(t, err)
	s, err := tensor.FromSlice([]float32{0.5}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]Entry{
		"a": Encode(a), "b": Encode(b), "mask": Encode(m), "s": Encode(s),
	}, map[string]string{"scenario": "test"}))

	f, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"scenario": "test"}, f.Metadata)
	assert.Len(t, f.Tensors, 4)

	e, err := f.Lookup("a")
	require.NoError(t, err)
	ga, err := Decode[float64](e)
	require.NoError(t, err)
	if diff := cmp.Diff(a.Data(), ga.Data()); diff != "" {
		t.Errorf("a (-want +got):\n%s", diff)
	}
	assert.True(t, ga.Shape().Equal(tensor.Shape{2, 2}))

	gb, err := Decode[int32](f.Tensors["b"])
	require.NoError(t, err)
	assert.Equal(t, []int32{-7, 0, 7}, gb.Data())

	gm, err := Decode[bool](f.Tensors["mask"])
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, gm.Data())

	gs, err := Decode[float32](f.Tensors["s"])
	require.NoError(t, err)
	assert.Equal(t, 0, gs.Rank())
	assert.Equal(t, float32(0.5), gs.Data()[0])
}

func TestDecodeConversion(t *testing.T) {
	b, err := tensor.FromSlice([]int32{1, 2}, tensor.Shape{2})
	require.NoError(t, err)

	wide, err := Decode[float64](Encode(b))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, wide.Data())

	f, err := tensor.FromSlice([]float64{1.5}, tensor.Shape{1})
	require.NoError(t, err)
	_, err = Decode[int64](Encode(f))
	assert.True(t, errors.Is(err, tensor.ErrIncompatibleElementType))

	_, err = Decode[float64](Entry{DType: tensor.Float64, Shape: tensor.Shape{2}, Data: make([]byte, 8)})
	assert.True(t, errors.Is(err, ErrInvalidFile))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.safetensors")
	u, err := tensor.FromSlice([]int64{4, 5, 6}, tensor.Shape{3})
	require.NoError(t, err)
	require.NoError(t, WriteFile(path, map[string]Entry{"u": Encode(u)}, nil))

	f, err := ReadFile(path)
	require.NoError(t, err)
	assert.Nil(t, f.Metadata)
	got, err := Decode[int64](f.Tensors["u"])
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5, 6}, got.Data())

	_, err = f.Lookup("v")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.safetensors"))
	assert.Error(t, err)
}

func TestWriteRejects(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, map[string]Entry{"../x": {DType: tensor.Uint8, Shape: tensor.Shape{1}, Data: []byte{1}}}, nil)
	assert.True(t, errors.Is(err, ErrInvalidFile))

	err = Write(&buf, map[string]Entry{metadataKey: {DType: tensor.Uint8, Shape: tensor.Shape{1}, Data: []byte{1}}}, nil)
	assert.True(t, errors.Is(err, ErrInvalidFile))

	err = Write(&buf, map[string]Entry{"x": {DType: tensor.DataType(99)}}, nil)
	assert.True(t, errors.Is(err, ErrUnsupportedDType))
}

func TestReadValidation(t *testing.T) {
	eight := make([]byte, 8)
	tests := []struct {
		name string
		file []byte
		kind string
		want error
	}{
		{
			name: "bad json",
			file: build(`{"a":`, nil),
			want: ErrInvalidFile,
		},
		{
			name: "unsupported dtype",
			file: build(`{"a":{"dtype":"F16","shape":[1],"data_offsets":[0,2]}}`, eight),
			want: ErrUnsupportedDType,
		},
		{
			name: "bad shape",
			file: build(`{"a":{"dtype":"U8","shape":[0],"data_offsets":[0,0]}}`, nil),
			want: tensor.ErrBadShape,
		},
		{
			name: "size mismatch",
			file: build(`{"a":{"dtype":"F64","shape":[2],"data_offsets":[0,8]}}`, eight),
			kind: "size_mismatch",
			want: ErrInvalidFile,
		},
		{
			name: "out of bounds",
			file: build(`{"a":{"dtype":"F64","shape":[2],"data_offsets":[0,16]}}`, eight),
			kind: "out_of_bounds",
			want: ErrInvalidFile,
		},
		{
			name: "negative offset",
			file: build(`{"a":{"dtype":"U8","shape":[1],"data_offsets":[-1,0]}}`, eight),
			kind: "negative_offset",
			want: ErrInvalidFile,
		},
		{
			name: "overlap",
			file: build(`{"a":{"dtype":"I32","shape":[2],"data_offsets":[0,8]},`+
				`"b":{"dtype":"I32","shape":[1],"data_offsets":[4,8]}}`, eight),
			kind: "offset_overlap",
			want: ErrInvalidFile,
		},
		{
			name: "path name",
			file: build(`{"a/b":{"dtype":"U8","shape":[1],"data_offsets":[0,1]}}`, eight),
			kind: "invalid_name",
			want: ErrInvalidFile,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(bytes.NewReader(tt.file))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			if tt.kind != "" {
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, tt.kind, verr.Type)
			}
		})
	}
}

func TestReadTruncated(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte{1, 2}))
	assert.Error(t, err)

	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, uint64(MaxHeaderSize+1))
	_, err = Read(&buf)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "header_too_large", verr.Type)
}
