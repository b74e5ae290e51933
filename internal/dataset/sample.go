package dataset

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// SampleSize returns round(n*frac) with ties to even.
func SampleSize(n int, frac float64) int {
	return int(math.RoundToEven(float64(n) * frac))
}

// NewRand returns a PCG-backed generator. A nil seed draws a random one.
func NewRand(seed *uint64) *rand.Rand {
	var s uint64
	if seed != nil {
		s = *seed
	} else {
		s = rand.Uint64()
	}
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// SampleUniform picks SampleSize(n, frac) distinct row indices in random order.
func SampleUniform(n int, frac float64, rng *rand.Rand) ([]int, error) {
	k := SampleSize(n, frac)
	if k < 0 || k > n {
		return nil, eris.Errorf("dataset: sample of %d rows out of range for %d rows (fraction %g)", k, n, frac)
	}
	return rng.Perm(n)[:k], nil
}

// SampleStratified samples rows labeled 1, then rows labeled 0, each at frac.
// Rows with any other label are never picked.
func SampleStratified(labels []float64, frac float64, rng *rand.Rand) ([]int, error) {
	var ones, zeros []int
	for i, v := range labels {
		switch v {
		case 1:
			ones = append(ones, i)
		case 0:
			zeros = append(zeros, i)
		}
	}

	picked := make([]int, 0, SampleSize(len(ones), frac)+SampleSize(len(zeros), frac))
	for _, group := range [][]int{ones, zeros} {
		idx, err := SampleUniform(len(group), frac, rng)
		if err != nil {
			return nil, err
		}
		for _, p := range idx {
			picked = append(picked, group[p])
		}
	}
	return picked, nil
}

// LabelValues parses column as numbers for every row.
func LabelValues(header []string, rows [][]string, column string) ([]float64, error) {
	col := -1
	for i, name := range header {
		if name == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, eris.Errorf("dataset: label column %q not found", column)
	}

	values := make([]float64, len(rows))
	for i, row := range rows {
		if col >= len(row) {
			return nil, eris.Errorf("dataset: row %d has no %q value", i, column)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: row %d: non-numeric %q value %q", i, column, row[col])
		}
		values[i] = v
	}
	return values, nil
}
