package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/SzymonKubica/game-console-sub000/internal/grid"
	"github.com/SzymonKubica/game-console-sub000/internal/life"
	"github.com/SzymonKubica/game-console-sub000/internal/sim"
)

const (
	metadataFile   = "metadata.json"
	populationFile = "population.csv"
	finalFile      = "final.cells"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunSpec describes how a saved run was started.
type RunSpec struct {
	Name     string
	Seed     int64
	Density  float64
	Rule     string
	Topology grid.Topology
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Density     float64            `json:"density"`
	Rule        string             `json:"rule"`
	Topology    grid.Topology      `json:"topology"`
	Rows        int                `json:"rows"`
	Cols        int                `json:"cols"`
	Generations int                `json:"generations"`
	Still       bool               `json:"still"`
	Metrics     map[string]float64 `json:"metrics"`
}

// History is the per generation record of a run. Births and Deaths are
// zero for generation 0.
type History struct {
	Generation []int
	Population []int
	Births     []int
	Deaths     []int
}

// Series returns the population as float64.
func (h *History) Series() []float64 {
	out := make([]float64, len(h.Population))
	for i, p := range h.Population {
		out[i] = float64(p)
	}
	return out
}

func (s *Store) Save(spec RunSpec, result *sim.Result) (string, error) {
	name := spec.Name
	if name == "" {
		name = "random"
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixMilli())
	for i := 1; s.exists(runID); i++ {
		runID = fmt.Sprintf("%s_%d_%d", name, now.UnixMilli(), i)
	}
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Name:        name,
		Timestamp:   now,
		Seed:        spec.Seed,
		Density:     spec.Density,
		Rule:        spec.Rule,
		Topology:    spec.Topology,
		Generations: result.Generations,
		Still:       result.Still,
		Metrics:     result.Metrics,
	}
	if result.Final != nil {
		meta.Rows, meta.Cols = result.Final.Rows(), result.Final.Cols()
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writePopulation(filepath.Join(runDir, populationFile), result); err != nil {
		return "", err
	}
	if result.Final != nil {
		f, err := os.Create(filepath.Join(runDir, finalFile))
		if err != nil {
			return "", err
		}
		defer f.Close()
		if err := life.WritePlaintext(f, runID, result.Final); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) exists(runID string) bool {
	_, err := os.Stat(filepath.Join(s.baseDir, runID))
	return err == nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePopulation(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"generation", "population", "births", "deaths"}); err != nil {
		return err
	}
	for i, pop := range result.Population {
		births, deaths := 0, 0
		if i > 0 && i-1 < len(result.Births) {
			births, deaths = result.Births[i-1], result.Deaths[i-1]
		}
		row := []string{strconv.Itoa(i), strconv.Itoa(pop), strconv.Itoa(births), strconv.Itoa(deaths)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns saved runs, newest first. Unreadable run directories are
// skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

// Latest returns the ID of the newest run.
func (s *Store) Latest() (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", ErrRunNotFound
	}
	return runs[0].ID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadHistory(runID string) (*History, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, populationFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	h := &History{}
	for i := 1; i < len(records); i++ {
		vals := make([]int, 4)
		for j, field := range records[i] {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", populationFile, i+1, err)
			}
			vals[j] = v
		}
		h.Generation = append(h.Generation, vals[0])
		h.Population = append(h.Population, vals[1])
		h.Births = append(h.Births, vals[2])
		h.Deaths = append(h.Deaths, vals[3])
	}

	return h, nil
}

// LoadFinal rebuilds the last board of a run.
func (s *Store) LoadFinal(runID string) (*grid.Grid, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.baseDir, runID, finalFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := life.ReadPlaintext(f)
	if err != nil {
		return nil, err
	}
	g, err := grid.New(meta.Rows, meta.Cols, meta.Topology)
	if err != nil {
		return nil, err
	}
	if err := life.Place(g, p, grid.Position{}); err != nil {
		return nil, err
	}
	return g, nil
}
