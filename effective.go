package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/wildstyl3r/crmrates/internal/config"
	"github.com/wildstyl3r/crmrates/internal/reaction"
	"github.com/wildstyl3r/crmrates/internal/utils"
	"github.com/wildstyl3r/crmrates/internal/vibr"
)

var effectiveCmd = &cobra.Command{
	Use:   "effective",
	Short: "Effective rate over a vibrational distribution",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEffective(cfg, stem(), log)
	},
}

// vibrationalWeights is the normalised population of the first n levels.
func vibrationalWeights(p *config.EffectiveParameters, n int) ([]float64, error) {
	pop := vibr.Boltzmann(p.Temperature, p.Levels)
	if p.FCTable != "" {
		rows, err := utils.ReadFloatRows(p.FCTable, 0)
		if err != nil {
			return nil, fmt.Errorf("reading Franck-Condon table: %w", err)
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("Franck-Condon table %s is empty", p.FCTable)
		}
		fc := mat.NewDense(len(rows), len(rows[0]), slices.Concat(rows...))
		if pop, err = vibr.MapUpper(pop, fc); err != nil {
			return nil, err
		}
	}
	if len(pop) < n {
		return nil, fmt.Errorf("%w: %d rates for %d vibrational levels", vibr.ErrShape, n, len(pop))
	}
	return vibr.Normalize(pop[:n:n]), nil
}

func runEffective(cfg *config.Config, stem string, log logrus.FieldLogger) error {
	p := cfg.Effective
	if p == nil {
		return errors.New("config has no Effective section")
	}

	var reactions []*reaction.Reaction
	n := len(p.Fits)
	if n == 0 {
		specs := make([]reaction.Spec, 0, len(p.Reactions))
		for _, name := range p.Reactions {
			i := slices.IndexFunc(cfg.Reactions, func(s reaction.Spec) bool { return s.Name == name })
			specs = append(specs, cfg.Reactions[i])
		}
		var err error
		if reactions, err = buildReactions(specs, log); err != nil {
			return err
		}
		n = len(reactions)
	}
	weights, err := vibrationalWeights(p, n)
	if err != nil {
		return err
	}
	log.WithField("weights", weights).Debug("vibrational distribution")

	out := table{
		fileSuffix:  "effective",
		columnNames: []string{"Te (" + cfg.TemperatureUnit() + ")", "effective k (" + cfg.RateUnit() + ")"},
	}
	if p.Reference != nil {
		out.columnNames = append(out.columnNames, "tabulated k ("+cfg.RateUnit()+")")
	}

	rates := make([]float64, n)
	fromSI := []config.UnitElement{{Class: config.Rate, Power: 1}}
	for _, s := range cfg.States.States() {
		var k float64
		if reactions != nil {
			if k, err = vibr.EffectiveAt(reactions, weights, s); err != nil {
				return fmt.Errorf("effective rate at Te = %g eV: %w", s.Te, err)
			}
		} else {
			for v := range rates {
				rates[v] = config.Convert(vibr.EIRENE1D(p.Fits[v], s.Ti), fromSI, []string{"m3/s"}, true)
			}
			if k, err = vibr.Effective(rates, weights); err != nil {
				return err
			}
		}
		row := []string{formatFloat(cfg.Temperature(s.Te)), formatFloat(cfg.Rate(k))}
		if p.Reference != nil {
			ref := config.Convert(vibr.EIRENE1D(p.Reference, s.Te), fromSI, []string{"m3/s"}, true)
			row = append(row, formatFloat(cfg.Rate(ref)))
		}
		out.add(row...)
	}

	if err := out.save(cfg.OutputDir, stem); err != nil {
		return fmt.Errorf("saving %s: %w", out.fileSuffix, err)
	}
	log.WithField("levels", n).Info("effective rate saved")
	return nil
}
