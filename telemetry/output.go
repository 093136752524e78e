// Package telemetry records evolution runs: lineage, diversity and timing.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/coolbirds/config"
)

// OutputManager handles run output: lineage and diversity CSVs, the
// effective config and exported STL files.
type OutputManager struct {
	dir           string
	lineageFile   *os.File
	diversityFile *os.File

	// Track if headers have been written
	lineageHeaderWritten   bool
	diversityHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled). lineageName names the lineage CSV.
func NewOutputManager(dir, lineageName string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if lineageName == "" {
		lineageName = "lineage.csv"
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, lineageName))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", lineageName, err)
	}
	om.lineageFile = f

	f, err = os.Create(filepath.Join(dir, "diversity.csv"))
	if err != nil {
		om.lineageFile.Close()
		return nil, fmt.Errorf("creating diversity.csv: %w", err)
	}
	om.diversityFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteLineage appends a generation to the lineage CSV.
func (om *OutputManager) WriteLineage(r LineageRecord) error {
	if om == nil {
		return nil
	}
	if err := writeRecord(om.lineageFile, []LineageRecord{r}, &om.lineageHeaderWritten); err != nil {
		return fmt.Errorf("writing lineage: %w", err)
	}
	return nil
}

// WriteDiversity appends diversity stats to diversity.csv.
func (om *OutputManager) WriteDiversity(s DiversityStats) error {
	if om == nil {
		return nil
	}
	if err := writeRecord(om.diversityFile, []DiversityStats{s}, &om.diversityHeaderWritten); err != nil {
		return fmt.Errorf("writing diversity: %w", err)
	}
	return nil
}

// writeRecord writes the header with the first record only.
func writeRecord[T any](f *os.File, records []T, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// WriteSTL saves an STL document under the output directory.
func (om *OutputManager) WriteSTL(name string, data []byte) (string, error) {
	if om == nil {
		return "", nil
	}
	path := filepath.Join(om.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}

// LineagePath returns the path of the lineage CSV.
func (om *OutputManager) LineagePath() string {
	if om == nil {
		return ""
	}
	return om.lineageFile.Name()
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	if om.lineageFile != nil {
		if err := om.lineageFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if om.diversityFile != nil {
		if err := om.diversityFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
