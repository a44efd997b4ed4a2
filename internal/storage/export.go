package storage

import (
	"encoding/json"
	"io"
	"strings"
)

type ExportData struct {
	Meta       RunMetadata `json:"meta"`
	Generation []int       `json:"generation"`
	Population []int       `json:"population"`
	Births     []int       `json:"births"`
	Deaths     []int       `json:"deaths"`
	Final      []string    `json:"final,omitempty"`
}

// ExportJSON writes a run's metadata, history and final board as one JSON
// document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	h, err := s.LoadHistory(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Meta:       *meta,
		Generation: h.Generation,
		Population: h.Population,
		Births:     h.Births,
		Deaths:     h.Deaths,
	}
	if g, err := s.LoadFinal(runID); err == nil {
		data.Final = strings.Split(strings.TrimSuffix(g.String(), "\n"), "\n")
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
