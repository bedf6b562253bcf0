// Package telemetry records training progress: CSV logs of every generation
// and episode, a YAML snapshot of the configuration, and a live websocket
// feed of the tile window.
package telemetry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/baldhumanity/neat-mario/agent"
	"github.com/baldhumanity/neat-mario/neat"
)

// OutputManager writes run output into a directory. It implements
// neat.Reporter and agent.EpisodeReporter so it can be registered directly.
// A nil *OutputManager discards everything.
type OutputManager struct {
	dir            string
	runID          string
	generationFile *os.File
	episodeFile    *os.File

	generationHeaderWritten bool
	episodeHeaderWritten    bool
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir, runID: uuid.NewString()}

	f, err := os.Create(filepath.Join(dir, "generations.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating generations.csv: %w", err)
	}
	om.generationFile = f

	f, err = os.Create(filepath.Join(dir, "episodes.csv"))
	if err != nil {
		om.generationFile.Close()
		return nil, fmt.Errorf("creating episodes.csv: %w", err)
	}
	om.episodeFile = f

	return om, nil
}

// RunID returns the id stamped on every row written by this manager.
func (om *OutputManager) RunID() string {
	if om == nil {
		return ""
	}
	return om.runID
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteConfig saves the effective configuration as config.yaml.
func (om *OutputManager) WriteConfig(cfg *neat.Config) error {
	if om == nil {
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "config.yaml"), data, 0644); err != nil {
		return fmt.Errorf("writing config.yaml: %w", err)
	}
	return nil
}

// WriteGeneration appends a generation summary to generations.csv.
func (om *OutputManager) WriteGeneration(stats neat.GenerationStats) error {
	if om == nil {
		return nil
	}
	records := []GenerationRecord{generationRecord(om.runID, stats)}
	if err := writeRecords(records, om.generationFile, &om.generationHeaderWritten); err != nil {
		return fmt.Errorf("writing generation: %w", err)
	}
	return nil
}

// WriteEpisode appends an episode report to episodes.csv.
func (om *OutputManager) WriteEpisode(report agent.FitnessReport) error {
	if om == nil {
		return nil
	}
	records := []EpisodeRecord{episodeRecord(om.runID, report)}
	if err := writeRecords(records, om.episodeFile, &om.episodeHeaderWritten); err != nil {
		return fmt.Errorf("writing episode: %w", err)
	}
	return nil
}

// writeRecords marshals records, with headers on the first write only.
func writeRecords(records any, f *os.File, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// GenerationEnd implements neat.Reporter.
func (om *OutputManager) GenerationEnd(stats neat.GenerationStats) {
	if err := om.WriteGeneration(stats); err != nil {
		slog.Warn("telemetry write failed", "error", err)
	}
}

// EpisodeEnd implements agent.EpisodeReporter.
func (om *OutputManager) EpisodeEnd(report agent.FitnessReport) {
	if err := om.WriteEpisode(report); err != nil {
		slog.Warn("telemetry write failed", "error", err)
	}
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.generationFile, om.episodeFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
