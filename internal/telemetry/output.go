package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// WriteCSV writes the recorded stats to w with a header row.
func (c *Collector) WriteCSV(w io.Writer) error {
	if err := gocsv.Marshal(c.samples, w); err != nil {
		return fmt.Errorf("writing frame stats: %w", err)
	}
	return nil
}

// SaveCSV writes the recorded stats to a file, creating parent directories
// as needed.
func (c *Collector) SaveCSV(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	return c.WriteCSV(f)
}

// ReadCSV parses frame stats from r (as written by WriteCSV).
func ReadCSV(r io.Reader) ([]FrameStats, error) {
	var samples []FrameStats
	if err := gocsv.Unmarshal(r, &samples); err != nil {
		return nil, fmt.Errorf("reading frame stats: %w", err)
	}
	return samples, nil
}
