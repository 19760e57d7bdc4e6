// Command pii-metamodel scans Go packages for PII data-holder types and
// writes their metamodel: for each type, the path of its subject id and
// the paths of its sensitive fields with their replacement values.
//
// Usage:
//
//	pii-metamodel [flags] [package patterns...]
//
// Package patterns given on the command line replace the ones of the
// config file. Settings are resolved from the config file, then the
// environment (PII_METAMODEL_*, also read from -env), then flags.
// -print-config shows the result of that resolution without generating.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"pii-metamodel/internal/analyze"
	"pii-metamodel/internal/common"
	"pii-metamodel/internal/config"
	"pii-metamodel/internal/metamodel"
	"pii-metamodel/internal/output"
)

const defaultConfigFile = "pii-metamodel.yaml"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath  string
	envFile     string
	out         string
	format      string
	ignore      string
	containers  string
	tagKey      string
	dir         string
	concurrency int
	verbose     bool
	printConfig bool
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options

	fs := flag.NewFlagSet("pii-metamodel", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "config file (default "+defaultConfigFile+" if present)")
	fs.StringVar(&opts.envFile, "env", ".env", "env file with PII_METAMODEL_* overrides")
	fs.StringVar(&opts.out, "out", "", "output file")
	fs.StringVar(&opts.format, "format", "", "output format: json, yaml, msgpack or bson")
	fs.StringVar(&opts.ignore, "ignore", "", "comma-separated types to skip (pkg.Name, pkg.*, pkg/...)")
	fs.StringVar(&opts.containers, "containers", "", "comma-separated generic types treated as containers")
	fs.StringVar(&opts.tagKey, "tag", "", "marker tag key (default pii)")
	fs.StringVar(&opts.dir, "C", "", "directory package patterns are resolved from")
	fs.IntVar(&opts.concurrency, "j", 0, "types generated in parallel (default GOMAXPROCS)")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")
	fs.BoolVar(&opts.printConfig, "print-config", false, "print the resolved configuration as YAML and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	logger := log.New(io.Discard, "pii-metamodel: ", 0)
	if opts.verbose {
		logger.SetOutput(stderr)
	}

	cfg, err := loadConfig(opts, fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	diags := config.Validate(cfg)
	_ = diags.Report(stderr, opts.verbose)

	if err := diags.Error(); err != nil {
		fmt.Fprintf(stderr, "error: invalid configuration: %v\n", err)
		return 1
	}

	if opts.printConfig {
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}

		_, _ = stdout.Write(data)

		return 0
	}

	if err := generate(cfg, opts, logger, stderr); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "wrote %s\n", cfg.Output)

	return 0
}

func loadConfig(opts options, patterns []string) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}

	cfg := config.Default()

	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if opts.envFile != "" {
		config.LoadEnv(opts.envFile)
	}

	cfg.ApplyEnv(nil)

	if len(patterns) > 0 {
		cfg.Packages = patterns
	}

	if opts.out != "" {
		cfg.Output = opts.out
	}

	if opts.format != "" {
		cfg.Format = output.Format(opts.format)
	}

	if opts.ignore != "" {
		cfg.Ignore = append(cfg.Ignore, common.SplitList(opts.ignore)...)
	}

	if opts.containers != "" {
		cfg.Containers = append(cfg.Containers, common.SplitList(opts.containers)...)
	}

	if opts.tagKey != "" {
		cfg.TagKey = opts.tagKey
	}

	return cfg, nil
}

func generate(cfg *config.Config, opts options, logger *log.Logger, stderr io.Writer) error {
	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}

	analyzer := analyze.NewAnalyzerWithMarkerKey(cfg.TagKey)
	analyzer.Dir = opts.dir

	graph, err := analyzer.LoadPackages(cfg.Packages...)
	if err != nil {
		return err
	}

	logger.Printf("loaded %d package(s)", len(graph.PackageOrder))

	gen := metamodel.NewGenerator(
		metamodel.WithIgnore(cfg.Ignore),
		metamodel.WithContainers(cfg.Containers),
		metamodel.WithMarkerKey(cfg.TagKey),
		metamodel.WithConcurrency(opts.concurrency),
		metamodel.WithLogger(logger),
	)

	list, diags, err := gen.GenerateAll(graph, nil)
	_ = diags.Report(stderr, opts.verbose)

	if err != nil {
		return err
	}

	logger.Printf("%d holder type(s)", len(list.Config))

	return output.WriteFile(list, cfg.Output, format)
}
