package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wildstyl3r/crmrates/internal/config"
	"github.com/wildstyl3r/crmrates/internal/reaction"
	"github.com/wildstyl3r/crmrates/internal/utils"
)

var (
	inputFile string
	verbose   bool
	workers   int

	cfg *config.Config
	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "crmrates",
	Short: "Rate coefficients of hydrogen and deuterium plasma reactions",
	Long: `crmrates evaluates EIRENE, ADAS, UEDGE, Sawada and Janev/Stotler fits of
atomic and molecular reaction rates over a grid of plasma states.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
		var err error
		cfg, err = config.LoadConfig(inputFile)
		if err != nil {
			return fmt.Errorf("unable to load config %s: %w", inputFile, err)
		}
		if cmd.Flags().Changed("workers") {
			cfg.Workers = workers
		}
		log.WithFields(logrus.Fields{
			"config":    inputFile,
			"reactions": len(cfg.Reactions),
			"states":    len(cfg.States.Te),
		}).Info("config loaded")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "crmrates.toml", "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug details")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "j", 0, "parallel evaluations, 0 for one per CPU")

	rootCmd.AddCommand(evalCmd, effectiveCmd, xsecCmd)
}

// stem names the output files after the config file.
func stem() string {
	return utils.GetFilename(inputFile)
}

func buildReactions(specs []reaction.Spec, log logrus.FieldLogger) ([]*reaction.Reaction, error) {
	reactions := make([]*reaction.Reaction, 0, len(specs))
	for i, spec := range specs {
		r, err := reaction.New(spec)
		if err != nil {
			return nil, fmt.Errorf("reaction #%d (%s %s): %w", i+1, spec.Database, spec.Name, err)
		}
		r.SetLogger(log)
		reactions = append(reactions, r)
	}
	return reactions, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
