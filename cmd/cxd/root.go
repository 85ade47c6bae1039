package main

import (
	"fmt"

	"cxd/analyzer"
	"cxd/common/colorrange"
	"cxd/common/config"
	C "cxd/common/constant"
	"cxd/common/hexdump"
	"cxd/common/parser"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type dumpOptions struct {
	dataPath   string
	rangesPath string
	analyzer   string
	configPath string
	colorMode  string
	shift      int64
	verbose    int
}

func newRootCommand() *cobra.Command {
	opts := &dumpOptions{}
	cmd := &cobra.Command{
		Use:   "cxd -d DATA [-r RANGES | -a ANALYZER]",
		Short: "Colorized hex dump",
		Long: `cxd prints a hex dump of a file where byte ranges are painted with colors.
Ranges come from a descriptor file (one "start,length,color,comment" per line)
or from a format analyzer run on the data file.`,
		Version:       C.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(C.DefaultLogLevel, opts.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, opts)
		},
	}

	cmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "Verbose logging, -vv for debug")
	cmd.Flags().StringVarP(&opts.dataPath, "data", "d", "", "File to dump")
	cmd.Flags().StringVarP(&opts.rangesPath, "ranges", "r", "", "Range descriptor file")
	cmd.Flags().StringVarP(&opts.analyzer, "analyzer", "a", "", "Analyzer producing the ranges")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Configuration file (JSON or TOML)")
	cmd.Flags().StringVar(&opts.colorMode, "color", C.ColorModeAuto, "When to color: auto, always or never")
	cmd.Flags().Int64Var(&opts.shift, "shift", 0, "Value added to the displayed addresses")
	cmd.MarkFlagRequired("data")
	cmd.MarkFlagsMutuallyExclusive("ranges", "analyzer")

	cmd.AddCommand(newAnalyzeCommand(), newGenconfigCommand())
	return cmd
}

// loadConfig falls back to the defaults when the file cannot be read.
func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := parser.ParseConfig(path)
	if err != nil {
		log.Errorf("Failed to parse config file: %v", err)
		log.Warn("Using the default configuration")
		return config.Default()
	}
	log.Infof("Parsed config %s", path)
	return cfg
}

func runDump(cmd *cobra.Command, opts *dumpOptions) error {
	cfg := loadConfig(opts.configPath)
	if cmd.Flags().Changed("color") {
		cfg.ColorMode = opts.colorMode
	}
	if cmd.Flags().Changed("shift") {
		cfg.AddressShift = opts.shift
	}
	if err := parser.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	setupLogging(cfg.LogConfig.LogLevel, opts.verbose)

	var (
		ranges []colorrange.Range
		err    error
	)
	switch {
	case opts.rangesPath != "":
		ranges, err = colorrange.ParseFile(opts.rangesPath)
		if err != nil {
			return fmt.Errorf("failed to read ranges: %w", err)
		}
	case opts.analyzer != "":
		ranges, err = analyzer.Run(opts.analyzer, opts.dataPath)
		if err != nil {
			return err
		}
	}
	log.Debug("Loaded ranges", "count", len(ranges))

	dumper, err := hexdump.New(cfg, ranges, hexdump.WithWriter(cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	return dumper.PrintFile(opts.dataPath)
}
