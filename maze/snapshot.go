package maze

import (
	"errors"
	"io"

	"gopkg.in/yaml.v2"
)

// Snapshot is a portable record of a generated maze together with the
// parameters that produced it.
type Snapshot struct {
	Seed        int64    `yaml:"seed"`
	GridSize    int      `yaml:"size"`
	PathDensity float64  `yaml:"density"`
	Rows        []string `yaml:"maze"`
}

// NewSnapshot records a maze generated with the given seed and configuration.
func NewSnapshot(seed int64, c Config, m *Maze) *Snapshot {
	return &Snapshot{
		Seed:        seed,
		GridSize:    c.GridSize,
		PathDensity: c.PathDensity,
		Rows:        m.Rows(),
	}
}

// Serialize encodes the snapshot as YAML.
func (s *Snapshot) Serialize() (string, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Maze decodes and validates the recorded maze.
func (s *Snapshot) Maze() (*Maze, error) {
	return FromRows(s.Rows)
}

// Config returns the recorded generator configuration.
func (s *Snapshot) Config() Config {
	return Config{GridSize: s.GridSize, PathDensity: s.PathDensity}
}

// LoadSnapshot parses a YAML snapshot produced by Serialize.
func LoadSnapshot(in []byte) (*Snapshot, error) {
	var snapshot Snapshot
	if err := yaml.Unmarshal(in, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// LoadSnapshots parses every YAML document of r as a snapshot.
func LoadSnapshots(r io.Reader) ([]*Snapshot, error) {
	dec := yaml.NewDecoder(r)
	var snapshots []*Snapshot
	for {
		var snapshot Snapshot
		err := dec.Decode(&snapshot)
		if errors.Is(err, io.EOF) {
			return snapshots, nil
		}
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, &snapshot)
	}
}
