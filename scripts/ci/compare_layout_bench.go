// compare_layout_bench compares two `go test -bench BenchmarkResolve
// -benchmem` outputs and fails when a layout benchmark slowed down by more
// than the allowed percentage. The report goes to stdout and, on GitHub
// Actions, to the step summary.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	benchmarkLinePattern = regexp.MustCompile(`^(BenchmarkResolve/\S+)\s+\d+\s+(\d+(?:\.\d+)?) ns/op(?:.*?\s(\d+) allocs/op)?`)
	cpuSuffixPattern     = regexp.MustCompile(`-\d+$`)
	expectedBenchmarks   = []string{
		"BenchmarkResolve/medium/resolve",
		"BenchmarkResolve/medium/column-widths",
		"BenchmarkResolve/large/resolve",
		"BenchmarkResolve/large/column-widths",
	}
)

// benchResult is one parsed benchmark line. allocs is -1 without -benchmem.
type benchResult struct {
	ns     float64
	allocs int64
}

type comparisonRow struct {
	name     string
	baseline benchResult
	current  benchResult
	deltaPct float64
	pass     bool
}

func main() {
	baselinePath := flag.String("baseline", "", "path to baseline benchmark output")
	currentPath := flag.String("current", "", "path to current benchmark output")
	maxRegressionPct := flag.Float64("max-regression-pct", 20, "maximum allowed ns/op regression percent")
	flag.Parse()

	if *baselinePath == "" || *currentPath == "" {
		fatalf("both -baseline and -current are required")
	}
	if *maxRegressionPct < 0 {
		fatalf("-max-regression-pct must be non-negative")
	}

	baseline, err := parseBenchmarkFile(*baselinePath)
	if err != nil {
		fatalf("parse baseline: %v", err)
	}
	current, err := parseBenchmarkFile(*currentPath)
	if err != nil {
		fatalf("parse current: %v", err)
	}

	rows, err := compareBenchmarks(baseline, current, *maxRegressionPct)
	if err != nil {
		fatalf("compare benchmarks: %v", err)
	}

	writeMarkdownReport(os.Stdout, rows, *maxRegressionPct)
	if stepSummary := os.Getenv("GITHUB_STEP_SUMMARY"); stepSummary != "" {
		f, err := os.OpenFile(stepSummary, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
		if err != nil {
			fatalf("open step summary: %v", err)
		}
		defer f.Close()
		writeMarkdownReport(f, rows, *maxRegressionPct)
	}

	for _, row := range rows {
		if !row.pass {
			os.Exit(1)
		}
	}
}

func parseBenchmarkFile(path string) (map[string]benchResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer file.Close()

	results, err := parseBenchmarkOutput(file)
	if err != nil {
		return nil, fmt.Errorf("scan %q: %w", path, err)
	}
	return results, nil
}

func parseBenchmarkOutput(r io.Reader) (map[string]benchResult, error) {
	results := make(map[string]benchResult, len(expectedBenchmarks))
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		matches := benchmarkLinePattern.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if matches == nil {
			continue
		}

		name := cpuSuffixPattern.ReplaceAllString(matches[1], "")
		ns, err := strconv.ParseFloat(matches[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parse ns/op for %q: %w", name, err)
		}
		result := benchResult{ns: ns, allocs: -1}
		if matches[3] != "" {
			if result.allocs, err = strconv.ParseInt(matches[3], 10, 64); err != nil {
				return nil, fmt.Errorf("parse allocs/op for %q: %w", name, err)
			}
		}
		results[name] = result
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.New("no layout benchmark results found")
	}
	return results, nil
}

func compareBenchmarks(baseline, current map[string]benchResult, maxRegressionPct float64) ([]comparisonRow, error) {
	rows := make([]comparisonRow, 0, len(expectedBenchmarks))
	for _, name := range expectedBenchmarks {
		curr, ok := current[name]
		if !ok {
			return nil, fmt.Errorf("missing current benchmark %q", name)
		}
		// A benchmark without a baseline compares against itself until the
		// next baseline run records it.
		base, ok := baseline[name]
		if !ok {
			base = curr
		}
		if base.ns <= 0 {
			return nil, fmt.Errorf("non-positive baseline ns/op for %q", name)
		}
		delta := (curr.ns - base.ns) / base.ns * 100
		rows = append(rows, comparisonRow{
			name:     name,
			baseline: base,
			current:  curr,
			deltaPct: delta,
			pass:     delta <= maxRegressionPct,
		})
	}

	slices.SortFunc(rows, func(a, b comparisonRow) int {
		return strings.Compare(a.name, b.name)
	})
	return rows, nil
}

func writeMarkdownReport(out io.Writer, rows []comparisonRow, maxRegressionPct float64) {
	fmt.Fprintf(out, "## Layout Benchmarks\n\n")
	fmt.Fprintf(out, "Allowed ns/op regression: %.2f%%\n\n", maxRegressionPct)
	fmt.Fprintf(out, "| Benchmark | Baseline ns/op | Current ns/op | Delta | Allocs/op | Result |\n")
	fmt.Fprintf(out, "|---|---:|---:|---:|---:|---|\n")
	for _, row := range rows {
		result := "PASS"
		if !row.pass {
			result = "FAIL"
		}
		delta := row.deltaPct
		if math.IsNaN(delta) || math.IsInf(delta, 0) {
			delta = 0
		}
		fmt.Fprintf(out, "| %s | %.0f | %.0f | %+0.2f%% | %s | %s |\n",
			row.name, row.baseline.ns, row.current.ns, delta, allocsLabel(row), result)
	}
	fmt.Fprintln(out)
}

func allocsLabel(row comparisonRow) string {
	if row.current.allocs < 0 {
		return "-"
	}
	if row.baseline.allocs < 0 || row.baseline.allocs == row.current.allocs {
		return strconv.FormatInt(row.current.allocs, 10)
	}
	return fmt.Sprintf("%d → %d", row.baseline.allocs, row.current.allocs)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
