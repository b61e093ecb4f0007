package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

type runReport struct {
	RunID       string      `json:"run_id,omitempty"`
	Mode        string      `json:"mode"`
	K           int         `json:"k"`
	Points      int         `json:"points"`
	Restarts    int         `json:"restarts"`
	Steps       int         `json:"steps"`
	Converged   bool        `json:"converged"`
	SSE         float64     `json:"sse"`
	Means       [][]float64 `json:"means"`
	Priors      []float64   `json:"priors"`
	Sizes       []uint64    `json:"sizes"`
	Assignments []int       `json:"assignments,omitempty"`
	Snapshot    string      `json:"snapshot,omitempty"`
}

type testReport struct {
	Sample           []float64 `json:"sample"`
	Cluster          int       `json:"cluster"`
	Responsibilities []float64 `json:"responsibilities"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRunText(w io.Writer, r *runReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "mode=%s k=%d points=%d restarts=%d steps=%d converged=%t sse=%s\n",
		r.Mode, r.K, r.Points, r.Restarts, r.Steps, r.Converged, formatFloat(r.SSE))
	for i, m := range r.Means {
		fmt.Fprintf(&b, "cluster %d: mean=%s prior=%s size=%d\n", i, joinFloats(m), formatFloat(r.Priors[i]), r.Sizes[i])
	}
	if r.Snapshot != "" {
		fmt.Fprintf(&b, "snapshot: %s\n", r.Snapshot)
	}
	for i, a := range r.Assignments {
		fmt.Fprintf(&b, "%d,%d\n", i, a)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTestText(w io.Writer, reports []testReport) error {
	var b strings.Builder
	for _, r := range reports {
		fmt.Fprintf(&b, "%d,%s\n", r.Cluster, joinFloats(r.Responsibilities))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func joinFloats(v []float64) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = formatFloat(f)
	}
	return strings.Join(parts, ",")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
