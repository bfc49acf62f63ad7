package utils

import (
	"cmp"
	"math"
	"slices"

	"golang.org/x/exp/constraints"

	"github.com/wildstyl3r/crmrates/internal/constants"
)

func Argmax[T cmp.Ordered](arr []T) (argmax int) {
	for i := range arr {
		if cmp.Compare(arr[i], arr[argmax]) == 1 {
			argmax = i
		}
	}
	return
}

type Number interface {
	constraints.Float | constraints.Integer
}

func SumSlice[T Number](arr []T) (r T) {
	for i := range arr {
		r += arr[i]
	}
	return
}

// LogSpace returns n points spaced evenly on a log scale between from and to, inclusive.
func LogSpace(from, to float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{from}
	}
	points := make([]float64, n)
	lFrom, lTo := math.Log10(from), math.Log10(to)
	step := (lTo - lFrom) / float64(n-1)
	for i := range points {
		points[i] = math.Pow(10, lFrom+float64(i)*step)
	}
	points[n-1] = to
	return points
}

func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

func EV2electronVelocity(energy float64) (v float64) {
	v = math.Sqrt(2 * energy * constants.ElectronCharge / constants.ElectornMass)
	return
}

func IntAbs(a int) int {
	if a < 0 {
		return -a
	} else {
		return a
	}
}

func Intersect(a, b []string) *string {
	for i := range a {
		if slices.Contains(b, a[i]) {
			return &a[i]
		}
	}
	return nil
}
