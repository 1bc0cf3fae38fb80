// Package npy reads and writes NumPy array files, the interchange format
// for tensors dumped by the ray-tracing solver. It supports the v1 .npy
// format and .npz archives, decoding into dense tensors.
package npy

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pdevine/tensor"
	"github.com/x448/float16"
)

var magic = []byte("\x93NUMPY")

// header holds the parsed .npy header dict.
type header struct {
	descr        string
	fortranOrder bool
	shape        []int
}

// Read decodes a single .npy array into a dense tensor.
//
// Supported element types: |b1 (bool), <u4 (uint32), <i4 (int32),
// <f2 (half, widened to float32), <f4 (float32), <f8 (float64).
func Read(r io.Reader) (*tensor.Dense, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if h.fortranOrder {
		return nil, fmt.Errorf("npy: fortran-ordered arrays are not supported")
	}
	if len(h.shape) == 0 {
		return nil, fmt.Errorf("npy: zero-dimensional arrays are not supported")
	}

	n := 1
	for _, d := range h.shape {
		if d < 0 {
			return nil, fmt.Errorf("npy: invalid shape %v", h.shape)
		}
		n *= d
	}

	backing, err := readData(r, h.descr, n)
	if err != nil {
		return nil, err
	}

	return tensor.New(tensor.WithShape(h.shape...), tensor.WithBacking(backing)), nil
}

// ReadFile decodes a single .npy file.
func ReadFile(path string) (*tensor.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func readHeader(r io.Reader) (header, error) {
	var h header

	buf := make([]byte, len(magic)+2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return h, fmt.Errorf("npy: reading magic: %w", err)
	}
	if string(buf[:len(magic)]) != string(magic) {
		return h, fmt.Errorf("npy: bad magic %q", buf[:len(magic)])
	}

	major := buf[len(magic)]
	var headerLen int
	switch major {
	case 1:
		var n uint16
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return h, fmt.Errorf("npy: reading header length: %w", err)
		}
		headerLen = int(n)
	case 2, 3:
		var n uint32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return h, fmt.Errorf("npy: reading header length: %w", err)
		}
		headerLen = int(n)
	default:
		return h, fmt.Errorf("npy: unsupported format version %d", major)
	}

	raw := make([]byte, headerLen)
	if _, err := io.ReadFull(r, raw); err != nil {
		return h, fmt.Errorf("npy: reading header: %w", err)
	}

	return parseHeader(string(raw))
}

// parseHeader parses the Python dict literal in a .npy header, e.g.
//
//	{'descr': '<f4', 'fortran_order': False, 'shape': (2, 3), }
func parseHeader(s string) (header, error) {
	var h header

	descr, err := dictString(s, "descr")
	if err != nil {
		return h, err
	}
	h.descr = descr

	order, err := dictToken(s, "fortran_order")
	if err != nil {
		return h, err
	}
	h.fortranOrder = order == "True"

	shape, err := dictToken(s, "shape")
	if err != nil {
		return h, err
	}
	h.shape, err = parseShape(shape)
	return h, err
}

func dictString(s, key string) (string, error) {
	tok, err := dictToken(s, key)
	if err != nil {
		return "", err
	}
	tok = strings.Trim(tok, "'\"")
	return tok, nil
}

func dictToken(s, key string) (string, error) {
	i := strings.Index(s, "'"+key+"'")
	if i < 0 {
		return "", fmt.Errorf("npy: header missing %q", key)
	}
	rest := s[i+len(key)+2:]
	j := strings.IndexByte(rest, ':')
	if j < 0 {
		return "", fmt.Errorf("npy: malformed header near %q", key)
	}
	rest = strings.TrimLeft(rest[j+1:], " ")

	if strings.HasPrefix(rest, "(") {
		k := strings.IndexByte(rest, ')')
		if k < 0 {
			return "", fmt.Errorf("npy: malformed shape tuple")
		}
		return rest[:k+1], nil
	}
	k := strings.IndexAny(rest, ",}")
	if k < 0 {
		k = len(rest)
	}
	return strings.TrimSpace(rest[:k]), nil
}

func parseShape(tok string) ([]int, error) {
	tok = strings.Trim(tok, "()")
	var shape []int
	for _, part := range strings.Split(tok, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("npy: bad shape element %q", part)
		}
		shape = append(shape, d)
	}
	return shape, nil
}

func readData(r io.Reader, descr string, n int) (any, error) {
	switch descr {
	case "|b1":
		raw := make([]byte, n)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, fmt.Errorf("npy: reading bool data: %w", err)
		}
		out := make([]bool, n)
		for i, b := range raw {
			out[i] = b != 0
		}
		return out, nil
	case "<u4":
		out := make([]uint32, n)
		if err := binary.Read(r, binary.LittleEndian, out); err != nil {
			return nil, fmt.Errorf("npy: reading uint32 data: %w", err)
		}
		return out, nil
	case "<i4":
		out := make([]int32, n)
		if err := binary.Read(r, binary.LittleEndian, out); err != nil {
			return nil, fmt.Errorf("npy: reading int32 data: %w", err)
		}
		return out, nil
	case "<f2":
		bits := make([]uint16, n)
		if err := binary.Read(r, binary.LittleEndian, bits); err != nil {
			return nil, fmt.Errorf("npy: reading float16 data: %w", err)
		}
		out := make([]float32, n)
		for i, b := range bits {
			out[i] = float16.Frombits(b).Float32()
		}
		return out, nil
	case "<f4":
		out := make([]float32, n)
		if err := binary.Read(r, binary.LittleEndian, out); err != nil {
			return nil, fmt.Errorf("npy: reading float32 data: %w", err)
		}
		return out, nil
	case "<f8":
		out := make([]float64, n)
		if err := binary.Read(r, binary.LittleEndian, out); err != nil {
			return nil, fmt.Errorf("npy: reading float64 data: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("npy: unsupported dtype %q", descr)
}
