package npy

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdevine/tensor"
)

// Write encodes a dense tensor as a v1 .npy array.
func Write(w io.Writer, t *tensor.Dense) error {
	descr, err := descrFor(t.Dtype())
	if err != nil {
		return err
	}

	shape := "("
	for _, d := range t.Shape() {
		shape += fmt.Sprintf("%d,", d)
	}
	shape += ")"

	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': %s, }", descr, shape)

	// Total header size is padded to a multiple of 64, terminated by \n.
	base := len(magic) + 2 + 2
	pad := 64 - (base+len(dict)+1)%64
	if pad == 64 {
		pad = 0
	}
	padded := dict + strings.Repeat(" ", pad) + "\n"

	if _, err := w.Write(magic); err != nil {
		return err
	}
	if _, err := w.Write([]byte{1, 0}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(padded))); err != nil {
		return err
	}
	if _, err := io.WriteString(w, padded); err != nil {
		return err
	}

	return writeData(w, t)
}

// WriteFile encodes a dense tensor into a .npy file.
func WriteFile(path string, t *tensor.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(f, t)
}

func descrFor(dt tensor.Dtype) (string, error) {
	switch dt {
	case tensor.Bool:
		return "|b1", nil
	case tensor.Uint32:
		return "<u4", nil
	case tensor.Int32:
		return "<i4", nil
	case tensor.Float32:
		return "<f4", nil
	case tensor.Float64:
		return "<f8", nil
	}
	return "", fmt.Errorf("npy: cannot encode dtype %v", dt)
}

func writeData(w io.Writer, t *tensor.Dense) error {
	switch data := t.Data().(type) {
	case []bool:
		raw := make([]byte, len(data))
		for i, b := range data {
			if b {
				raw[i] = 1
			}
		}
		_, err := w.Write(raw)
		return err
	case []uint32, []int32, []float32, []float64:
		return binary.Write(w, binary.LittleEndian, data)
	}
	return fmt.Errorf("npy: cannot encode backing %T", t.Data())
}
