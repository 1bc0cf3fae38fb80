package geometry

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// LoadPLY reads an ASCII PLY triangle mesh: vertex positions, optional
// per-vertex normals, and triangular faces.
func LoadPLY(r io.Reader) (*TriangleMesh, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line, err := plyLine(sc)
	if err != nil || line != "ply" {
		return nil, fmt.Errorf("ply: missing magic")
	}

	var vertexCount, faceCount int
	var vertexProps []string
	element := ""
header:
	for {
		line, err = plyLine(sc)
		if err != nil {
			return nil, fmt.Errorf("ply: truncated header")
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "format":
			if len(fields) < 2 || fields[1] != "ascii" {
				return nil, fmt.Errorf("ply: only ascii format is supported, got %q", line)
			}
		case "comment":
		case "element":
			if len(fields) != 3 {
				return nil, fmt.Errorf("ply: malformed element %q", line)
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("ply: malformed element count %q", line)
			}
			element = fields[1]
			switch element {
			case "vertex":
				vertexCount = n
			case "face":
				faceCount = n
			}
		case "property":
			if element == "vertex" && len(fields) == 3 {
				vertexProps = append(vertexProps, fields[2])
			}
		case "end_header":
			break header
		}
	}

	propIdx := func(name string) int {
		for i, p := range vertexProps {
			if p == name {
				return i
			}
		}
		return -1
	}
	xi, yi, zi := propIdx("x"), propIdx("y"), propIdx("z")
	if xi < 0 || yi < 0 || zi < 0 {
		return nil, fmt.Errorf("ply: vertex element lacks x/y/z properties")
	}
	nxi, nyi, nzi := propIdx("nx"), propIdx("ny"), propIdx("nz")
	hasNormals := nxi >= 0 && nyi >= 0 && nzi >= 0

	m := &TriangleMesh{Vertices: make([]r3.Vec, 0, vertexCount)}
	if hasNormals {
		m.VertexNormals = make([]r3.Vec, 0, vertexCount)
	}

	for i := 0; i < vertexCount; i++ {
		line, err = plyLine(sc)
		if err != nil {
			return nil, fmt.Errorf("ply: truncated vertex data at %d/%d", i, vertexCount)
		}
		fields := strings.Fields(line)
		if len(fields) < len(vertexProps) {
			return nil, fmt.Errorf("ply: vertex %d has %d values, want %d", i, len(fields), len(vertexProps))
		}
		v, err := vecAt(fields, xi, yi, zi)
		if err != nil {
			return nil, fmt.Errorf("ply: vertex %d: %w", i, err)
		}
		m.Vertices = append(m.Vertices, v)
		if hasNormals {
			n, err := vecAt(fields, nxi, nyi, nzi)
			if err != nil {
				return nil, fmt.Errorf("ply: vertex %d normal: %w", i, err)
			}
			m.VertexNormals = append(m.VertexNormals, n)
		}
	}

	m.Faces = make([][3]int, 0, faceCount)
	for i := 0; i < faceCount; i++ {
		line, err = plyLine(sc)
		if err != nil {
			return nil, fmt.Errorf("ply: truncated face data at %d/%d", i, faceCount)
		}
		fields := strings.Fields(line)
		n, err := strconv.Atoi(fields[0])
		if err != nil || n != 3 || len(fields) < 4 {
			return nil, fmt.Errorf("ply: face %d is not a triangle: %q", i, line)
		}
		var f [3]int
		for k := 0; k < 3; k++ {
			f[k], err = strconv.Atoi(fields[k+1])
			if err != nil {
				return nil, fmt.Errorf("ply: face %d: %w", i, err)
			}
		}
		m.Faces = append(m.Faces, f)
	}

	return m, nil
}

// LoadPLYFile reads an ASCII PLY file.
func LoadPLYFile(path string) (*TriangleMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadPLY(f)
}

func plyLine(sc *bufio.Scanner) (string, error) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			return line, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}

func vecAt(fields []string, i, j, k int) (r3.Vec, error) {
	x, err := strconv.ParseFloat(fields[i], 64)
	if err != nil {
		return r3.Vec{}, err
	}
	y, err := strconv.ParseFloat(fields[j], 64)
	if err != nil {
		return r3.Vec{}, err
	}
	z, err := strconv.ParseFloat(fields[k], 64)
	if err != nil {
		return r3.Vec{}, err
	}
	return r3.Vec{X: x, Y: y, Z: z}, nil
}
