package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-neighbourhoods/pkg/config"
	"github.com/dd0wney/cluso-neighbourhoods/pkg/logging"
	"github.com/dd0wney/cluso-neighbourhoods/pkg/metrics"
	"github.com/dd0wney/cluso-neighbourhoods/pkg/pipeline"
	"github.com/dd0wney/cluso-neighbourhoods/pkg/report"
	"github.com/dd0wney/cluso-neighbourhoods/pkg/source"
)

func run(cmd *cobra.Command, args []string, flags *cliFlags, sections report.Section) error {
	cfg, err := resolveConfig(cmd, args, flags)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	logger := logging.NewJSONLogger(cmd.ErrOrStderr(), cfg.Level())

	var objects source.ObjectGetter
	if cfg.IsS3() {
		getter, err := source.NewS3GetterFromOptions(ctx, source.S3Options{
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			UsePathStyle:    cfg.S3.UsePathStyle,
		})
		if err != nil {
			return fmt.Errorf("configure S3: %w", err)
		}
		objects = getter
	}

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	reg := metrics.NewRegistry()
	p := pipeline.New(source.NewOpener(objects), logger, reg)

	result, runErr := p.Run(ctx, cfg.Source, pipeline.Options{
		Threshold:  float32(cfg.Threshold),
		Start:      cfg.Start,
		TopK:       cfg.TopK,
		Unreached:  policy,
		SampleSize: cfg.SampleSize,
	})

	if cfg.MetricsFile != "" {
		if err := reg.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("failed to write metrics", logging.Path(cfg.MetricsFile), logging.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}

	format := cfg.Output
	if format == "" {
		format = config.OutputText
	}
	return report.Write(cmd.OutOrStdout(), result, format, sections)
}
