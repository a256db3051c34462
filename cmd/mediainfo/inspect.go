package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thesyncim/mediainfo"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE...",
	Short: "Print stream properties of media files",
	Long: `Opens each file in its own libmediainfo session and prints the configured
fields of every stream. Files that cannot be opened are reported and make the
command exit non-zero.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

var (
	inspectFormat   string
	inspectParallel int
	inspectFields   []string
	inspectStats    bool
)

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "", "Output format: text, json, yaml")
	inspectCmd.Flags().IntVarP(&inspectParallel, "parallel", "p", 0, "Number of files inspected concurrently")
	inspectCmd.Flags().StringArrayVar(&inspectFields, "field", nil, "Field to extract as Kind=Parameter (repeatable)")
	inspectCmd.Flags().BoolVar(&inspectStats, "stats", false, "Print native call statistics to stderr")
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspectFormat != "" {
		cfg.Format = inspectFormat
	}
	if inspectParallel > 0 {
		cfg.Parallelism = inspectParallel
	}
	if len(inspectFields) > 0 {
		fields, err := parseFieldFlags(inspectFields)
		if err != nil {
			return err
		}
		cfg.Fields = fields
	}

	render, err := rendererFor(cfg.Format)
	if err != nil {
		return err
	}
	fields, err := cfg.fieldSet()
	if err != nil {
		return err
	}
	sc, err := cfg.sessionConfig()
	if err != nil {
		return err
	}

	var reg *prometheus.Registry
	if inspectStats {
		reg = prometheus.NewRegistry()
		sc.Metrics = mediainfo.NewMetrics(reg)
	}

	results, err := mediainfo.InspectAll(cmd.Context(), sc, args, fields, cfg.Parallelism)
	if err != nil {
		return err
	}
	if err := render(cmd.OutOrStdout(), results); err != nil {
		return err
	}
	if reg != nil {
		if err := writeStats(cmd.ErrOrStderr(), reg); err != nil {
			log.Warn("gather stats", zap.Error(err))
		}
	}

	if failed := mediainfo.Failed(results); len(failed) > 0 {
		for _, r := range failed {
			log.Debug("inspect failed", zap.String("path", r.Path), zap.Error(r.Err))
		}
		return fmt.Errorf("%d of %d files could not be inspected", len(failed), len(results))
	}
	return nil
}
