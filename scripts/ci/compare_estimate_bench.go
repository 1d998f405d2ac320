// compare_estimate_bench checks `go test -bench BenchmarkEstimate -benchmem`
// output against a baseline run. A run fails when a benchmark gets slower
// than the allowed percentage, allocates more per estimate than the baseline
// did, or when the cached pixel font falls too far behind plain cell
// counting.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	cellsLong       = "BenchmarkEstimate/cells/long"
	faceCachedLong  = "BenchmarkEstimate/face-cached/long"
	benchmarkPrefix = "BenchmarkEstimate/"
)

var (
	expectedBenchmarks = []string{
		"BenchmarkEstimate/cells/short",
		cellsLong,
		faceCachedLong,
	}
	cpuSuffixPattern = regexp.MustCompile(`-\d+$`)
)

// sample is one benchmark line. allocs is -1 when the run lacked -benchmem.
type sample struct {
	nsPerOp float64
	allocs  int64
}

type verdict struct {
	name     string
	baseline sample
	current  sample
	deltaPct float64
	problems []string
}

func (v verdict) pass() bool { return len(v.problems) == 0 }

type thresholds struct {
	maxRegressionPct float64
	// maxCachedRatio bounds face-cached/long ns/op divided by cells/long
	// ns/op. Zero disables the check.
	maxCachedRatio float64
}

func main() {
	baselinePath := flag.String("baseline", "", "path to baseline benchmark output")
	currentPath := flag.String("current", "", "path to current benchmark output")
	maxRegressionPct := flag.Float64("max-regression-pct", 20, "maximum allowed ns/op regression percent")
	maxCachedRatio := flag.Float64("max-cached-ratio", 4, "maximum face-cached/cells ns/op ratio on long text (0 disables)")
	flag.Parse()

	if *baselinePath == "" || *currentPath == "" {
		fatalf("both -baseline and -current are required")
	}
	if *maxRegressionPct < 0 || *maxCachedRatio < 0 {
		fatalf("thresholds must be non-negative")
	}

	baseline, err := readBenchmarkFile(*baselinePath)
	if err != nil {
		fatalf("baseline: %v", err)
	}
	current, err := readBenchmarkFile(*currentPath)
	if err != nil {
		fatalf("current: %v", err)
	}

	limits := thresholds{maxRegressionPct: *maxRegressionPct, maxCachedRatio: *maxCachedRatio}
	verdicts, err := judge(baseline, current, limits)
	if err != nil {
		fatalf("compare: %v", err)
	}

	out := io.Writer(os.Stdout)
	if path := os.Getenv("GITHUB_STEP_SUMMARY"); path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
		if err != nil {
			fatalf("open step summary: %v", err)
		}
		defer f.Close()
		out = io.MultiWriter(os.Stdout, f)
	}
	report(out, verdicts, current, limits)

	for _, v := range verdicts {
		if !v.pass() {
			os.Exit(1)
		}
	}
}

func readBenchmarkFile(path string) (map[string]sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()
	return parseBenchmarks(f)
}

// parseBenchmarks reads `go test -bench` output. Metrics come as value/unit
// pairs after the iteration count, so the ns/op and allocs/op columns are
// looked up by unit rather than position.
func parseBenchmarks(r io.Reader) (map[string]sample, error) {
	results := make(map[string]sample, len(expectedBenchmarks))
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || !strings.HasPrefix(fields[0], benchmarkPrefix) {
			continue
		}
		name := cpuSuffixPattern.ReplaceAllString(fields[0], "")
		s := sample{nsPerOp: -1, allocs: -1}
		for i := 2; i+1 < len(fields); i += 2 {
			value, unit := fields[i], fields[i+1]
			var err error
			switch unit {
			case "ns/op":
				s.nsPerOp, err = strconv.ParseFloat(value, 64)
			case "allocs/op":
				s.allocs, err = strconv.ParseInt(value, 10, 64)
			}
			if err != nil {
				return nil, fmt.Errorf("parse %s for %q: %w", unit, name, err)
			}
		}
		if s.nsPerOp < 0 {
			continue
		}
		results[name] = s
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(results) == 0 {
		return nil, errors.New("no BenchmarkEstimate results found")
	}
	return results, nil
}

func judge(baseline, current map[string]sample, limits thresholds) ([]verdict, error) {
	for _, name := range expectedBenchmarks {
		if _, ok := current[name]; !ok {
			return nil, fmt.Errorf("missing current benchmark %q", name)
		}
	}

	verdicts := make([]verdict, 0, len(expectedBenchmarks))
	for _, name := range expectedBenchmarks {
		curr := current[name]
		base, ok := baseline[name]
		if !ok {
			// New benchmark: it becomes its own baseline until the next run.
			base = curr
		}
		if base.nsPerOp <= 0 {
			return nil, fmt.Errorf("non-positive baseline ns/op for %q", name)
		}

		v := verdict{name: name, baseline: base, current: curr}
		v.deltaPct = (curr.nsPerOp - base.nsPerOp) / base.nsPerOp * 100
		if v.deltaPct > limits.maxRegressionPct {
			v.problems = append(v.problems, fmt.Sprintf("%+.2f%% ns/op", v.deltaPct))
		}
		if base.allocs >= 0 && curr.allocs > base.allocs {
			v.problems = append(v.problems, fmt.Sprintf("allocs/op %d > %d", curr.allocs, base.allocs))
		}
		verdicts = append(verdicts, v)
	}

	if ratio := cachedRatio(current); limits.maxCachedRatio > 0 && ratio > limits.maxCachedRatio {
		for i := range verdicts {
			if verdicts[i].name == faceCachedLong {
				verdicts[i].problems = append(verdicts[i].problems,
					fmt.Sprintf("%.2fx cells/long (limit %.2fx)", ratio, limits.maxCachedRatio))
			}
		}
	}

	sort.Slice(verdicts, func(i, j int) bool { return verdicts[i].name < verdicts[j].name })
	return verdicts, nil
}

// cachedRatio is how many times slower estimating long text with the cached
// pixel font is than counting terminal cells.
func cachedRatio(results map[string]sample) float64 {
	cells, face := results[cellsLong], results[faceCachedLong]
	if cells.nsPerOp <= 0 {
		return 0
	}
	return face.nsPerOp / cells.nsPerOp
}

func report(out io.Writer, verdicts []verdict, current map[string]sample, limits thresholds) {
	fmt.Fprintf(out, "## Height Estimator Benchmarks\n\n")
	fmt.Fprintf(out, "Allowed ns/op regression: %.2f%%. Allocations may not grow.\n\n", limits.maxRegressionPct)
	fmt.Fprintf(out, "| Benchmark | Baseline ns/op | Current ns/op | Delta | Allocs/op | Result |\n")
	fmt.Fprintf(out, "|---|---:|---:|---:|---:|---|\n")
	for _, v := range verdicts {
		result := "PASS"
		if !v.pass() {
			result = "FAIL: " + strings.Join(v.problems, "; ")
		}
		fmt.Fprintf(out, "| %s | %.0f | %.0f | %+.2f%% | %s | %s |\n",
			v.name, v.baseline.nsPerOp, v.current.nsPerOp, v.deltaPct, allocsColumn(v), result)
	}
	fmt.Fprintf(out, "\nface-cached/long runs at %.2fx cells/long.\n\n", cachedRatio(current))
}

func allocsColumn(v verdict) string {
	if v.current.allocs < 0 {
		return "n/a"
	}
	if v.baseline.allocs < 0 || v.baseline.allocs == v.current.allocs {
		return strconv.FormatInt(v.current.allocs, 10)
	}
	return fmt.Sprintf("%d → %d", v.baseline.allocs, v.current.allocs)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
