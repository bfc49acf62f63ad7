package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wildstyl3r/crmrates/internal/config"
	"github.com/wildstyl3r/crmrates/internal/reaction"
	"github.com/wildstyl3r/crmrates/internal/sweep"
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Tabulate every configured reaction over the plasma state grid",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEval(cmd.Context(), cfg, stem(), log)
	},
}

func runEval(ctx context.Context, cfg *config.Config, stem string, log logrus.FieldLogger) error {
	reactions, err := buildReactions(cfg.Reactions, log)
	if err != nil {
		return err
	}
	states := cfg.States.States()
	res, err := sweep.Run(ctx, reactions, states, cfg.Workers, log)
	if err != nil {
		return err
	}

	rates := table{
		fileSuffix:  "rates",
		columnNames: []string{"reaction"},
		sorted:      true,
	}
	for _, s := range states {
		rates.columnNames = append(rates.columnNames, fmt.Sprintf("Te=%s %s", formatFloat(cfg.Temperature(s.Te)), cfg.TemperatureUnit()))
	}
	summary := table{
		fileSuffix: "summary",
		columnNames: []string{
			"reaction", "equation", "type",
			"peak Te (" + cfg.TemperatureUnit() + ")",
			"peak k (" + cfg.RateUnit() + ")",
			"skipped",
		},
		sorted: true,
	}

	lo, hi := cfg.States.Span()
	for i, r := range reactions {
		row := []string{r.ID()}
		for j := range states {
			row = append(row, formatFloat(cfg.Rate(res.Rates.At(i, j))))
		}
		rates.add(row...)

		if res.Skipped[i] {
			summary.add(r.ID(), r.String(), r.Tag, "", "", formatBool(true))
			continue
		}
		T, k, err := sweep.Peak(r, states[0], lo, hi)
		if err != nil {
			if !errors.Is(err, reaction.ErrMissingArgument) {
				return fmt.Errorf("peak of %s: %w", r.ID(), err)
			}
			log.WithField("reaction", r.ID()).WithError(err).Debug("no peak")
			summary.add(r.ID(), r.String(), r.Tag, "", "", formatBool(false))
			continue
		}
		summary.add(r.ID(), r.String(), r.Tag, formatFloat(cfg.Temperature(T)), formatFloat(cfg.Rate(k)), formatBool(false))
	}

	for _, t := range []*table{&rates, &summary} {
		if err := t.save(cfg.OutputDir, stem); err != nil {
			return fmt.Errorf("saving %s: %w", t.fileSuffix, err)
		}
	}
	log.WithFields(logrus.Fields{
		"reactions": len(reactions),
		"states":    len(states),
		"output":    cfg.OutputDir,
	}).Info("rates saved")
	return nil
}
