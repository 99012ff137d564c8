package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/stakewise/proxy-deployer/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	statusRunning   = "running"
	statusCompleted = "completed"
	statusFailed    = "failed"
)

// SpinnerSink renders deployment progress as a spinner with a stage trail
type SpinnerSink struct {
	mu      sync.Mutex
	spinner *spinner.Spinner
	out     io.Writer
	stages  []stageInfo
	now     func() time.Time
}

type stageInfo struct {
	Stage     string
	Label     string
	Current   int
	Total     int
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

// NewSpinnerSink creates a spinner sink writing to stderr
func NewSpinnerSink() *SpinnerSink {
	return newSpinnerSink(os.Stderr)
}

func newSpinnerSink(w io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.HideCursor = false

	return &SpinnerSink{
		spinner: s,
		out:     w,
		now:     time.Now,
	}
}

// OnProgress records the stage and updates the spinner
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.Stage == "complete" {
		r.finish(statusCompleted)
		r.stopSpinner()
		return
	}

	if last := r.last(); last == nil || last.Stage != event.Stage {
		r.finish(statusCompleted)
		r.stages = append(r.stages, stageInfo{
			Stage:     event.Stage,
			Label:     stageLabel(event.Stage),
			Current:   event.Current,
			Total:     event.Total,
			StartTime: r.now(),
			Status:    statusRunning,
		})
	}

	if !event.Spinner {
		r.stopSpinner()
		return
	}

	r.spinner.Suffix = " " + r.display(event.Message)
	if !r.spinner.Active() {
		r.spinner.Start()
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.printPaused(color.New(color.FgCyan), message)
}

// Error prints an error message and marks the running stage failed
func (r *SpinnerSink) Error(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finish(statusFailed)
	r.stopSpinner()
	color.New(color.FgRed).Fprintln(r.out, message)
}

// Stop halts the spinner if it is still running
func (r *SpinnerSink) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopSpinner()
}

func (r *SpinnerSink) printPaused(c *color.Color, message string) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

func (r *SpinnerSink) stopSpinner() {
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

func (r *SpinnerSink) last() *stageInfo {
	if len(r.stages) == 0 {
		return nil
	}
	return &r.stages[len(r.stages)-1]
}

// finish closes the running stage with status
func (r *SpinnerSink) finish(status string) {
	if last := r.last(); last != nil && last.Status == statusRunning {
		last.EndTime = r.now()
		last.Status = status
	}
}

// display renders the stage trail followed by the current message
func (r *SpinnerSink) display(message string) string {
	parts := make([]string, 0, len(r.stages))
	for _, stage := range r.stages {
		var icon string
		var stageColor *color.Color

		switch stage.Status {
		case statusCompleted:
			icon = "✓"
			stageColor = color.New(color.FgGreen)
		case statusFailed:
			icon = "✗"
			stageColor = color.New(color.FgRed)
		default:
			icon = "●"
			stageColor = color.New(color.FgYellow)
		}

		duration := ""
		if !stage.EndTime.IsZero() {
			duration = fmt.Sprintf(" (%s)", stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond))
		}
		parts = append(parts, fmt.Sprintf("%s %s%s", icon, stageColor.Sprint(stage.Label), duration))
	}

	display := strings.Join(parts, " → ")
	if last := r.last(); last != nil && last.Total > 1 {
		display = fmt.Sprintf("[%d/%d] %s", last.Current, last.Total, display)
	}
	if message != "" {
		display += " " + color.New(color.Faint).Sprint(message)
	}
	return display
}

// stageLabel turns a stage key such as validators-registry into Validators Registry
func stageLabel(stage string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(stage, "-", " "))
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
