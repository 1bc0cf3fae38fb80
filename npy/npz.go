package npy

import (
	"archive/zip"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/pdevine/tensor"
	"golang.org/x/sync/errgroup"
)

// ReadArchive decodes every array in a .npz archive, keyed by member name
// without the .npy suffix. Members decode concurrently.
func ReadArchive(path string) (map[string]*tensor.Dense, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("npz: %w", err)
	}
	defer zr.Close()

	var mu sync.Mutex
	arrays := make(map[string]*tensor.Dense, len(zr.File))

	var g errgroup.Group
	for _, f := range zr.File {
		name := strings.TrimSuffix(f.Name, ".npy")
		g.Go(func() error {
			rc, err := f.Open()
			if err != nil {
				return fmt.Errorf("npz: opening %s: %w", f.Name, err)
			}
			defer rc.Close()

			t, err := Read(rc)
			if err != nil {
				return fmt.Errorf("npz: decoding %s: %w", f.Name, err)
			}
			slog.Debug("decoded npz member", "name", name, "shape", t.Shape(), "dtype", t.Dtype())

			mu.Lock()
			arrays[name] = t
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return arrays, nil
}

// WriteArchive encodes arrays into a .npz archive.
func WriteArchive(path string, arrays map[string]*tensor.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, t := range arrays {
		w, err := zw.Create(name + ".npy")
		if err != nil {
			return fmt.Errorf("npz: %w", err)
		}
		if err := Write(w, t); err != nil {
			return fmt.Errorf("npz: encoding %s: %w", name, err)
		}
	}
	return zw.Close()
}
