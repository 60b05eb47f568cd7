package student

import "time"

// Student is one enrolled person as exposed by the directory API.
type Student struct {
	MatriculationNumber int    `json:"matriculationNumber" yaml:"matriculationNumber"`
	Name                string `json:"name" yaml:"name"`
}

// Snapshot describes the single bulk load backing a MemoryStore.
type Snapshot struct {
	ID       string    `json:"snapshotId"`
	Count    int       `json:"students"`
	LoadedAt time.Time `json:"loadedAt"`
}
