package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wildstyl3r/crmrates/internal/config"
	"github.com/wildstyl3r/crmrates/internal/xsec"
)

var xsecCmd = &cobra.Command{
	Use:   "xsec",
	Short: "Maxwellian rates of every process of an LXCat cross-section set",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runXsec(cmd.Context(), cfg, stem(), log)
	},
}

func runXsec(ctx context.Context, cfg *config.Config, stem string, log logrus.FieldLogger) error {
	if cfg.CrossSections == "" {
		return errors.New("config has no CrossSections file")
	}
	set, err := xsec.Load(cfg.CrossSections)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"file":      cfg.CrossSections,
		"processes": len(set.Labels),
	}).Info("cross sections loaded")

	out := table{
		fileSuffix:  "xsec",
		columnNames: []string{"Te (" + cfg.TemperatureUnit() + ")"},
	}
	for _, label := range set.Labels {
		out.columnNames = append(out.columnNames, label+" ("+cfg.RateUnit()+")")
	}
	for _, te := range cfg.States.Te {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := []string{formatFloat(cfg.Temperature(te))}
		for _, k := range set.Rates(te) {
			row = append(row, formatFloat(cfg.Rate(k)))
		}
		out.add(row...)
	}
	if err := out.save(cfg.OutputDir, stem); err != nil {
		return fmt.Errorf("saving %s: %w", out.fileSuffix, err)
	}
	return nil
}
