package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-neighbourhoods/pkg/config"
	"github.com/dd0wney/cluso-neighbourhoods/pkg/report"
)

// cliFlags holds flag values; they override the config file when set.
type cliFlags struct {
	configPath  string
	threshold   float64
	start       string
	topK        int
	unreached   string
	output      string
	sampleSize  int
	logLevel    string
	metricsFile string
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:   "neighbourhood-graph",
		Short: "Build a price-similarity graph of neighbourhoods and analyse it",
		Long: `neighbourhood-graph reads rental listings (CSV, optionally snappy
compressed, from disk or S3), averages prices per neighbourhood, links
neighbourhoods whose averages differ by at most a threshold, and reports
graph connectivity and closeness centrality.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "YAML configuration file")
	pf.Float64Var(&flags.threshold, "threshold", config.DefaultThreshold, "largest average price difference that links two neighbourhoods")
	pf.StringVar(&flags.start, "start", "", "neighbourhood to start the traversal from (default: first seen)")
	pf.IntVarP(&flags.topK, "top", "k", config.DefaultTopK, "number of neighbourhoods to rank")
	pf.StringVar(&flags.unreached, "unreached", "zero", "closeness policy for unreachable nodes: zero or penalize")
	pf.StringVarP(&flags.output, "output", "o", config.OutputText, "output format: text or json")
	pf.IntVar(&flags.sampleSize, "sample", config.DefaultSampleSize, "nodes and edges shown in the summary")
	pf.StringVar(&flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVar(&flags.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")

	root.AddCommand(
		newAnalyzeCmd(flags),
		newSectionCmd(flags, "bfs", "Print the breadth-first traversal order", report.SectionTraversal),
		newSectionCmd(flags, "centrality", "Print the top neighbourhoods by closeness centrality", report.SectionCentrality),
	)
	return root
}

func newAnalyzeCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [source]",
		Short: "Print the graph summary, traversal and centrality ranking",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, flags, report.SectionAll)
		},
	}
}

func newSectionCmd(flags *cliFlags, use, short string, section report.Section) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [source]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, flags, section)
		},
	}
}

// resolveConfig loads the config file and applies explicitly set flags.
// LOG_LEVEL overrides the file but not --log-level.
func resolveConfig(cmd *cobra.Command, args []string, flags *cliFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return cfg, err
	}

	changed := cmd.Flags().Changed
	if len(args) == 1 {
		cfg.Source = args[0]
	}
	if changed("threshold") {
		cfg.Threshold = flags.threshold
	}
	if changed("start") {
		cfg.Start = flags.start
	}
	if changed("top") {
		cfg.TopK = flags.topK
	}
	if changed("unreached") {
		cfg.UnreachedPolicy = flags.unreached
	}
	if changed("output") {
		cfg.Output = flags.output
	}
	if changed("sample") {
		cfg.SampleSize = flags.sampleSize
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	} else if env, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = env
	}
	if changed("metrics-file") {
		cfg.MetricsFile = flags.metricsFile
	}

	return cfg, cfg.Validate()
}
