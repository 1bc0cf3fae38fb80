package npy

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/pdevine/tensor"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		tensor *tensor.Dense
		data   any
	}{
		{
			"float32",
			tensor.New(tensor.WithShape(2, 3), tensor.WithBacking([]float32{1, 2, 3, 4, 5, 6})),
			[]float32{1, 2, 3, 4, 5, 6},
		},
		{
			"uint32",
			tensor.New(tensor.WithShape(2, 2), tensor.WithBacking([]uint32{0, 1, 0xffffffff, 7})),
			[]uint32{0, 1, 0xffffffff, 7},
		},
		{
			"bool",
			tensor.New(tensor.WithShape(4), tensor.WithBacking([]bool{true, false, false, true})),
			[]bool{true, false, false, true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, tt.tensor))

			got, err := Read(&buf)
			require.NoError(t, err)
			require.Equal(t, tt.tensor.Shape(), got.Shape())
			require.Equal(t, tt.tensor.Dtype(), got.Dtype())
			require.Equal(t, tt.data, got.Data())
		})
	}
}

// rawNPY assembles a v1 .npy payload by hand.
func rawNPY(descr string, shape string, data []byte) []byte {
	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': %s, }", descr, shape)
	pad := 64 - (len(magic)+4+len(dict)+1)%64
	if pad == 64 {
		pad = 0
	}
	header := dict + string(bytes.Repeat([]byte{' '}, pad)) + "\n"

	var buf bytes.Buffer
	buf.Write(magic)
	buf.Write([]byte{1, 0})
	binary.Write(&buf, binary.LittleEndian, uint16(len(header)))
	buf.WriteString(header)
	buf.Write(data)
	return buf.Bytes()
}

func TestReadFloat16(t *testing.T) {
	var data bytes.Buffer
	for _, v := range []float32{1.5, -2.0, 0.25} {
		binary.Write(&data, binary.LittleEndian, float16.Fromfloat32(v).Bits())
	}

	got, err := Read(bytes.NewReader(rawNPY("<f2", "(3,)", data.Bytes())))
	require.NoError(t, err)
	require.Equal(t, tensor.Float32, got.Dtype())
	require.Equal(t, []float32{1.5, -2.0, 0.25}, got.Data())
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"bad magic", []byte("NOTNUMPY....")},
		{"unsupported dtype", rawNPY("<i8", "(2,)", make([]byte, 16))},
		{"fortran order", bytes.Replace(rawNPY("<f4", "(1,)", make([]byte, 4)), []byte("False"), []byte("True "), 1)},
		{"truncated data", rawNPY("<f4", "(4,)", make([]byte, 4))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(bytes.NewReader(tt.raw))
			require.Error(t, err)
		})
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	arrays := map[string]*tensor.Dense{
		"valid":        tensor.New(tensor.WithShape(2, 3), tensor.WithBacking([]bool{true, false, true, true, true, false})),
		"interactions": tensor.New(tensor.WithShape(1, 2, 3), tensor.WithBacking([]uint32{0, 1, 0, 2, 0, 3})),
		"a_real":       tensor.New(tensor.WithShape(2, 3), tensor.WithBacking([]float32{1, 2, 3, 4, 5, 6})),
	}

	path := filepath.Join(t.TempDir(), "paths.npz")
	require.NoError(t, WriteArchive(path, arrays))

	got, err := ReadArchive(path)
	require.NoError(t, err)
	require.Len(t, got, len(arrays))
	for name, want := range arrays {
		require.Contains(t, got, name)
		require.Equal(t, want.Shape(), got[name].Shape(), name)
		require.Equal(t, want.Data(), got[name].Data(), name)
	}
}
