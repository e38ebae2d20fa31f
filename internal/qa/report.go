package qa

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Exit codes shared by every suite.
const (
	ExitPass      = 0
	ExitFail      = 1
	ExitFramework = 2
)

// StepResult is the outcome of one scripted step.
type StepResult struct {
	Index    int
	Step     Step
	Passed   bool
	Failure  string
	Duration time.Duration
}

// CaseResult is the outcome of one story or technical check.
type CaseResult struct {
	ID       string
	Name     string
	Passed   bool
	Failure  string
	Duration time.Duration
	Steps    []StepResult
}

// Report aggregates a suite run.
type Report struct {
	ID       string
	Suite    string
	Started  time.Time
	Duration time.Duration
	Cases    []CaseResult

	// FrameworkErr is set when the harness itself could not run.
	FrameworkErr error
}

func newReport(suite string) *Report {
	return &Report{
		ID:      uuid.NewString(),
		Suite:   suite,
		Started: time.Now(),
	}
}

func (r *Report) add(c CaseResult) {
	r.Cases = append(r.Cases, c)
}

func (r *Report) finish() {
	r.Duration = time.Since(r.Started)
}

// Passed counts passing cases.
func (r *Report) Passed() int {
	n := 0
	for _, c := range r.Cases {
		if c.Passed {
			n++
		}
	}
	return n
}

// Failed counts failing cases.
func (r *Report) Failed() int {
	return len(r.Cases) - r.Passed()
}

// SuccessRate is the passing share in percent; an empty run is 0.
func (r *Report) SuccessRate() float64 {
	if len(r.Cases) == 0 {
		return 0
	}
	return float64(r.Passed()) / float64(len(r.Cases)) * 100
}

// Failures returns the failing cases in run order.
func (r *Report) Failures() []CaseResult {
	var out []CaseResult
	for _, c := range r.Cases {
		if !c.Passed {
			out = append(out, c)
		}
	}
	return out
}

// ExitCode is 0 when everything passed, 1 on any failure, 2 when the
// harness could not run.
func (r *Report) ExitCode() int {
	switch {
	case r.FrameworkErr != nil:
		return ExitFramework
	case r.Failed() > 0:
		return ExitFail
	default:
		return ExitPass
	}
}

// Combine merges suite exit codes for a full run: any non-zero code makes
// the run fail, and a framework error outranks a test failure.
func Combine(codes ...int) int {
	out := ExitPass
	for _, c := range codes {
		out = max(out, c)
	}
	return out
}

// WriteText prints a human-readable summary.
func (r *Report) WriteText(w io.Writer) {
	bar := strings.Repeat("=", 60)
	fmt.Fprintf(w, "%s\nFIELD STATION QA REPORT: %s\n%s\n", bar, strings.ToUpper(r.Suite), bar)
	if r.FrameworkErr != nil {
		fmt.Fprintf(w, "FRAMEWORK ERROR: %v\n", r.FrameworkErr)
	}
	for _, c := range r.Cases {
		mark := "PASS"
		if !c.Passed {
			mark = "FAIL"
		}
		fmt.Fprintf(w, "[%s] %-6s %s (%s)\n", mark, c.ID, c.Name, c.Duration.Round(time.Microsecond))
		if !c.Passed {
			fmt.Fprintf(w, "       %s\n", c.Failure)
		}
	}
	fmt.Fprintf(w, "%s\nTotal: %d  Passed: %d  Failed: %d  Success rate: %.1f%%\n",
		strings.Repeat("-", 60), len(r.Cases), r.Passed(), r.Failed(), r.SuccessRate())
	fmt.Fprintf(w, "Run %s started %s, took %s\n",
		r.ID[:8], humanize.Time(r.Started), r.Duration.Round(time.Millisecond))
}
