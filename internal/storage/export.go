package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/plinko/internal/sim"
)

type ExportData struct {
	RunMetadata
	Frames []sim.Frame `json:"frames"`
}

// Export writes the metadata and frames of a stored run as one JSON
// document.
func (s *Store) Export(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Frames: frames})
}

func (s *Store) ExportFile(runID, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.Export(runID, f)
}
