package marktable

import (
	"fmt"
	"os"
	"path/filepath"
)

// Read parses the file at path as format f.
func Read(path string, f Format, opts ...Option) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	return New(b, f, opts...)
}

// Write renders t as format f and replaces the file at path. The content is
// written to a temporary file in the same directory and renamed into place,
// so readers never observe a partial table.
func Write(path string, t *Table, f Format) error {
	content, err := t.Format(f)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}
