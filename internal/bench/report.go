package bench

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrUnknownFormat = errors.New("bench: unknown report format")

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Write encodes r to w in the given format.
func Write(w io.Writer, r *Report, f Format) error {
	switch f {
	case FormatText:
		return WriteText(w, r)
	case FormatCSV:
		return WriteCSV(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// WriteText writes a human-readable table followed by one verdict line per
// non-scalar strategy and size.
func WriteText(w io.Writer, r *Report) error {
	p := message.NewPrinter(language.English)
	ew := &errWriter{w: w}

	ew.printf("Mean benchmark on %s (%s, %d cores)\n", r.Host.CPU, r.Host.Arch, r.Host.Cores)
	if len(r.Host.Features) > 0 {
		ew.printf("Features: %s\n", strings.Join(r.Host.Features, " "))
	}
	switch {
	case r.Host.ForcedGeneric:
		ew.printf("Kernel:   %s (wide vectors disabled)\n", r.Host.Kernel)
	case r.Host.WideVector:
		ew.printf("Kernel:   %s (%d lanes)\n", r.Host.Kernel, r.Host.Lanes)
	default:
		ew.printf("Kernel:   %s (no wide-vector support)\n", r.Host.Kernel)
	}
	ew.printf("Runs:     %d timed after %d warm-up\n\n", r.Config.Runs, r.Config.Warmup)
	if ew.err != nil {
		return ew.err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "size\tstrategy\timpl\tmean\tdiff scalar\tdiff ref\tmedian\tmin\tstddev\tspeedup\t")
	for _, step := range r.Steps {
		for _, row := range step.Rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.12f\t%.3g\t%.3g\t%s\t%s\t%s\t%.2fx\t\n",
				p.Sprintf("%d", row.Size),
				row.Strategy,
				row.Impl,
				row.Mean,
				row.DiffScalar,
				row.DiffRef,
				roundDuration(row.Timing.Median),
				roundDuration(row.Timing.Min),
				roundDuration(row.Timing.StdDev),
				row.Speedup)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	ew.printf("\n")
	for _, step := range r.Steps {
		ew.printf("%s samples: max diff %.3g", p.Sprintf("%d", step.Size), step.MaxDiff)
		if step.Spectral != nil {
			ew.printf(", spectral mean %.12f", *step.Spectral)
		}
		ew.printf("\n")
		for _, row := range step.Rows {
			if row.Strategy == "scalar" {
				continue
			}
			ew.printf("  %s\n", Verdict(row.Strategy, row.Speedup))
		}
	}
	return ew.err
}

// Verdict phrases a speedup against scalar as a percentage.
func Verdict(strategy string, speedup float64) string {
	switch {
	case speedup <= 0:
		return strategy + " was too fast to time"
	case speedup >= 1:
		return fmt.Sprintf("%s is %.1f%% faster than scalar", strategy, (speedup-1)*100)
	default:
		return fmt.Sprintf("scalar is %.1f%% faster than %s", (1/speedup-1)*100, strategy)
	}
}

var csvHeader = []string{
	"size", "strategy", "impl", "mean", "diff_scalar", "diff_reference",
	"median_ns", "min_ns", "mean_ns", "stddev_ns", "speedup",
}

// WriteCSV writes one record per row with durations in nanoseconds.
func WriteCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, step := range r.Steps {
		for _, row := range step.Rows {
			rec := []string{
				strconv.Itoa(row.Size),
				row.Strategy,
				row.Impl,
				strconv.FormatFloat(row.Mean, 'g', -1, 64),
				strconv.FormatFloat(row.DiffScalar, 'g', -1, 64),
				strconv.FormatFloat(row.DiffRef, 'g', -1, 64),
				strconv.FormatInt(row.Timing.Median.Nanoseconds(), 10),
				strconv.FormatInt(row.Timing.Min.Nanoseconds(), 10),
				strconv.FormatInt(row.Timing.Mean.Nanoseconds(), 10),
				strconv.FormatInt(row.Timing.StdDev.Nanoseconds(), 10),
				strconv.FormatFloat(row.Speedup, 'f', 4, 64),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the whole report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func roundDuration(d time.Duration) time.Duration {
	switch {
	case d >= time.Millisecond:
		return d.Round(time.Microsecond)
	case d >= time.Microsecond:
		return d.Round(10 * time.Nanosecond)
	default:
		return d
	}
}

// errWriter keeps the first write error so a run of prints can be checked once.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
