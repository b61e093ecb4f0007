package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// readPoints parses one point per CSV record. Blank lines and lines
// starting with '#' are skipped, and a first record that is not numeric is
// treated as a header.
func readPoints(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	var points [][]float64
	for n := 1; ; n++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}

		p, err := parseRecord(record)
		if err != nil {
			if n == 1 {
				continue
			}
			row, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("csv line %d: %w", row, err)
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return nil, errors.New("csv contains no points")
	}
	return points, nil
}

func parseRecord(record []string) ([]float64, error) {
	p := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		p[i] = v
	}
	return p, nil
}

// readPointsFile reads points from path, or from stdin when path is "-".
func readPointsFile(path string, stdin io.Reader) ([][]float64, error) {
	if path == "-" {
		return readPoints(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readPoints(f)
}
