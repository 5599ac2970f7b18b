package repo

import (
	"os"
	"path/filepath"
)

// WriteAtomic writes data to path by writing a sibling temp file and
// renaming it into place, so readers never observe partial content
// (§4.C "Atomic writes"). This is the one primitive every entity Save
// funnels through. Grounded on the teacher's index.Save, which wrote
// `path+".tmp"` then os.Rename — generalized here to any manifest path.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IoError{Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return &IoError{Path: dir, Err: err}
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &IoError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &IoError{Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &IoError{Path: path, Err: err}
	}
	return nil
}

// readFile reads path and returns os.ReadFile's error unchanged; it does
// not tell a missing file apart from other I/O failures, and the Find
// methods that call it report any read failure as NotFoundError.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return data, nil
}
