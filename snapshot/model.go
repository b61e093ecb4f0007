package snapshot

// Model is the persisted form of a clustering engine.
type Model struct {
	Mode      string  `json:"mode"`
	Beta      float64 `json:"beta"`
	Power     int     `json:"power"`
	PlusPlus  bool    `json:"plus_plus"`
	MaxSweeps int     `json:"max_sweeps"`

	Dim int `json:"dim"`
	K   int `json:"k"`

	Points           [][]float64 `json:"points"`
	Means            [][]float64 `json:"means"`
	Responsibilities [][]float64 `json:"responsibilities,omitempty"`
	Assignments      []int       `json:"assignments,omitempty"`
	Priors           []float64   `json:"priors,omitempty"`
	// Covariances holds one symmetric 2x2 matrix per cluster as {xx, xy, yy}.
	Covariances [][3]float64 `json:"covariances,omitempty"`

	// Meta carries free-form labels such as the producing run id.
	Meta map[string]string `json:"meta,omitempty"`
}
