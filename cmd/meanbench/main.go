// Command meanbench compares the scalar, wide-vector and chunked mean
// strategies over a sweep of dataset sizes.
//
// Usage:
//
//	meanbench [flags]
//
// Without flags it generates 1e3 to 1e7 uniform samples in [20, 100) and
// prints a latency table plus one speedup line per strategy and size.
//
// Examples:
//
//	meanbench
//	meanbench -sizes 1k,1m -runs 10 -format csv
//	meanbench -dump samples.f64 -sizes 1m
//	meanbench -input samples.f64 -fft-check
//	meanbench -probe
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/cwbudde/algo-mean/internal/bench"
	"github.com/cwbudde/algo-mean/mean"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	cfg      bench.Config
	sizes    string
	input    string
	dump     string
	format   string
	out      string
	verbose  bool
	probe    bool
	explicit map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	def := bench.DefaultConfig()
	opts := &options{cfg: def}

	fs := flag.NewFlagSet("meanbench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.sizes, "sizes", joinSizes(def.Sizes), "comma-separated dataset sizes (k/m suffixes allowed)")
	fs.IntVar(&opts.cfg.Runs, "runs", def.Runs, "timed runs per strategy")
	fs.IntVar(&opts.cfg.Warmup, "warmup", def.Warmup, "untimed warm-up runs per strategy")
	fs.IntVar(&opts.cfg.ChunkSize, "chunk", def.ChunkSize, "sub-sequence length for the chunked strategy")
	fs.Uint64Var(&opts.cfg.Seed, "seed", def.Seed, "generator seed")
	fs.Float64Var(&opts.cfg.Low, "min", def.Low, "lower bound of generated samples")
	fs.Float64Var(&opts.cfg.High, "max", def.High, "upper bound of generated samples (exclusive)")
	fs.StringVar(&opts.input, "input", "", "benchmark a dataset file written by -dump instead of generated data")
	fs.StringVar(&opts.dump, "dump", "", "write the largest generated dataset to `file` and exit")
	fs.StringVar(&opts.format, "format", string(bench.FormatText), "report format: text, csv or json")
	fs.StringVar(&opts.out, "out", "", "write the report to `file` instead of stdout")
	fs.BoolVar(&opts.cfg.FFTCheck, "fft-check", false, "cross-check each mean against the FFT DC bin")
	fs.BoolVar(&opts.verbose, "v", false, "log progress and kernel selection to stderr")
	fs.BoolVar(&opts.probe, "probe", false, "print the detected wide-vector support and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: meanbench [flags]\n\n")
		fmt.Fprintf(stderr, "Compares scalar, wide-vector and chunked mean computation.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  meanbench -sizes 1k,1m -runs 10\n")
		fmt.Fprintf(stderr, "  meanbench -dump samples.f64 -sizes 1m\n")
		fmt.Fprintf(stderr, "  meanbench -input samples.f64 -format json\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	opts.explicit = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.explicit[f.Name] = true })

	sizes, err := bench.ParseSizes(opts.sizes)
	if err != nil {
		return nil, err
	}
	opts.cfg.Sizes = sizes

	if opts.input != "" && opts.dump != "" {
		return nil, errors.New("-input and -dump are mutually exclusive")
	}
	if _, err := bench.ParseFormat(opts.format); err != nil {
		return nil, err
	}
	return opts, opts.cfg.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	if opts.verbose {
		mean.SetLogger(logger)
		defer mean.SetLogger(nil)
	}

	if err := execute(ctx, opts, logger, stdout); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	return exitOK
}

func execute(ctx context.Context, opts *options, logger *slog.Logger, stdout io.Writer) error {
	if opts.probe {
		return printProbe(stdout)
	}
	if opts.dump != "" {
		return dump(opts, logger)
	}

	runner := &bench.Runner{Config: opts.cfg}
	if opts.verbose {
		runner.Logger = logger
	}

	var src bench.Source
	if opts.input != "" {
		d, err := bench.Open(opts.input)
		if err != nil {
			return err
		}
		defer d.Close()
		if d.Len() == 0 {
			return fmt.Errorf("%s: %w", opts.input, mean.ErrEmptyInput)
		}

		src = bench.Fixed(d.Samples())
		if !opts.explicit["sizes"] {
			runner.Config.Sizes = nil
		}
		logger.Debug("meanbench: dataset mapped", "path", opts.input, "samples", d.Len())
	} else {
		src = bench.Generated(opts.cfg)
	}

	report, err := runner.Run(ctx, src)
	if err != nil {
		return err
	}

	format, _ := bench.ParseFormat(opts.format)
	if opts.out == "" {
		return bench.Write(stdout, report, format)
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	if err := bench.Write(f, report, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printProbe(w io.Writer) error {
	host := bench.DetectHost()
	_, err := fmt.Fprintf(w, "wide vector: %t\nkernel:      %s\narch:        %s\ncpu:         %s\n",
		host.WideVector, host.Kernel, host.Arch, host.CPU)
	return err
}

func dump(opts *options, logger *slog.Logger) error {
	n := opts.cfg.Sizes[0]
	for _, s := range opts.cfg.Sizes[1:] {
		n = max(n, s)
	}

	x := bench.Generate(n, opts.cfg.Seed+uint64(n), opts.cfg.Low, opts.cfg.High)
	if err := bench.Save(opts.dump, x); err != nil {
		return err
	}
	logger.Info("meanbench: dataset written", "path", opts.dump, "samples", n)
	return nil
}

func joinSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, n := range sizes {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ",")
}
