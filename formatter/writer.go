package formatter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/youbike-osm/youbike-osm/station"
)

const outputPrefix = "youbike-export"

// DefaultOutputPath returns youbike-export-<unix seconds>.<ext> inside dir.
func DefaultOutputPath(dir string, f Format, now time.Time) string {
	name := fmt.Sprintf("%s-%d.%s", outputPrefix, now.Unix(), f.Ext())
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// WriteFile serializes records in format f and stores them at path. The data
// goes to a temporary file in the same directory first and is renamed over
// path only after a complete write, so path never holds a partial document.
func (b *Builder) WriteFile(path string, f Format, records []station.Record) error {
	data, err := b.Build(f, records)
	if err != nil {
		return fmt.Errorf("build %s: %w", f, err)
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
