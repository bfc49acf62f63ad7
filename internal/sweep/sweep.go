// Package sweep evaluates many reactions over many plasma states.
package sweep

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/wildstyl3r/crmrates/internal/reaction"
	"github.com/wildstyl3r/crmrates/internal/utils"
)

// Result holds one row of rates per reaction, one column per state.
// Rows of skipped reactions are NaN.
type Result struct {
	Rates   *mat.Dense
	Skipped []bool
}

func Run(ctx context.Context, reactions []*reaction.Reaction, states []reaction.State, workers int, log logrus.FieldLogger) (*Result, error) {
	if len(reactions) == 0 || len(states) == 0 {
		return nil, fmt.Errorf("sweep: nothing to evaluate (%d reactions, %d states)", len(reactions), len(states))
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	res := Result{
		Rates:   mat.NewDense(len(reactions), len(states), nil),
		Skipped: make([]bool, len(reactions)),
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, r := range reactions {
		row := res.Rates.RawRowView(i)
		eg.Go(func() error {
			for j, s := range states {
				if err := egCtx.Err(); err != nil {
					return err
				}
				k, err := r.RateAt(s)
				if reaction.Skippable(err) {
					res.Skipped[i] = true
					for c := range row {
						row[c] = math.NaN()
					}
					log.WithField("reaction", r.ID()).WithError(err).Debug("skipped")
					return nil
				}
				if err != nil {
					return fmt.Errorf("%s at state %d: %w", r.ID(), j, err)
				}
				row[j] = k
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &res, nil
}

const (
	peakScanPoints = 64
	peakPrecision  = 1e-6 // in log10 T
)

// Peak finds the temperature [eV] in [lo, hi] where the rate of r is largest.
// Both Te and Ti of base are set to the trial temperature.
func Peak(r *reaction.Reaction, base reaction.State, lo, hi float64) (T, k float64, err error) {
	at := func(logT float64) (float64, error) {
		s := base
		s.Te = math.Pow(10, logT)
		s.Ti = s.Te
		return r.RateAt(s)
	}

	scan := utils.LogSpace(lo, hi, peakScanPoints)
	values := make([]float64, len(scan))
	for i := range scan {
		if values[i], err = at(math.Log10(scan[i])); err != nil {
			return 0, 0, err
		}
	}
	best := utils.Argmax(values)
	left := math.Log10(scan[max(best-1, 0)])
	right := math.Log10(scan[min(best+1, len(scan)-1)])

	logT := utils.TernarySearchMax(func(x float64) float64 {
		v, _ := at(x)
		return v
	}, left, right, peakPrecision)
	T = math.Pow(10, logT)
	k, err = at(logT)
	return T, k, err
}
