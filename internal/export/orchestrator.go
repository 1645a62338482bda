package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Status is the orchestrator's lifecycle state.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
)

var (
	// ErrNoContent indicates an export was requested on an empty composition.
	ErrNoContent = errors.New("nothing to export")
	// ErrAlreadyRunning indicates an export is already in progress.
	ErrAlreadyRunning = errors.New("export already running")
)

// stepsPerStage is how many progress samples each stage reports.
const stepsPerStage = 10

// defaultResetDelay is how long a failure stays visible before the
// orchestrator returns to idle.
const defaultResetDelay = 2 * time.Second

// Content summarizes what the composition holds, for export gating.
type Content struct {
	VideoClips int
	AudioClips int
	Captions   int
}

// Empty reports whether there is nothing to export.
func (c Content) Empty() bool {
	return c.VideoClips == 0 && c.AudioClips == 0 && c.Captions == 0
}

// Artifact is the finished export payload.
type Artifact struct {
	Filename string
	Data     []byte
}

// Report is a progress snapshot for polling.
type Report struct {
	Status     Status  `json:"status"`
	Stage      string  `json:"stage,omitempty"`
	StageLabel string  `json:"stage_label,omitempty"`
	Progress   float64 `json:"progress"` // 0..100, monotonically non-decreasing per run
	Message    string  `json:"message,omitempty"`
}

// StageRunner executes one stage, reporting completion fraction in
// [0,1]. The default runner simulates work by sleeping through the
// stage duration in fixed steps.
type StageRunner func(ctx context.Context, stage Stage, report func(fraction float64)) error

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithStages overrides the stage list.
func WithStages(stages []Stage) Option {
	return func(o *Orchestrator) { o.stages = stages }
}

// WithStageRunner overrides stage execution.
func WithStageRunner(run StageRunner) Option {
	return func(o *Orchestrator) { o.run = run }
}

// WithResetDelay overrides how long a failure stays visible.
func WithResetDelay(d time.Duration) Option {
	return func(o *Orchestrator) { o.resetDelay = d }
}

// Orchestrator drives the staged, cancellable export pipeline.
type Orchestrator struct {
	mu         sync.Mutex
	stages     []Stage
	run        StageRunner
	resetDelay time.Duration
	logger     *slog.Logger

	status     Status
	stageIndex int
	progress   float64
	message    string
	artifact   *Artifact
	cancel     context.CancelFunc
	runID      int
}

// NewOrchestrator creates an idle orchestrator.
func NewOrchestrator(logger *slog.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	o := &Orchestrator{
		stages:     DefaultStages(),
		run:        simulateStage,
		resetDelay: defaultResetDelay,
		logger:     logger,
		status:     StatusIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start begins an export. It is rejected when the composition is empty
// or an export is already running; in both cases state is unchanged.
func (o *Orchestrator) Start(ctx context.Context, content Content) error {
	o.mu.Lock()
	if o.status == StatusRunning {
		o.mu.Unlock()
		return ErrAlreadyRunning
	}
	if content.Empty() {
		o.mu.Unlock()
		return ErrNoContent
	}

	runCtx, cancel := context.WithCancel(ctx)
	o.status = StatusRunning
	o.stageIndex = 0
	o.progress = 0
	o.message = ""
	o.artifact = nil
	o.cancel = cancel
	o.runID++
	id := o.runID
	o.mu.Unlock()

	o.logger.Info("export started",
		"video_clips", content.VideoClips,
		"audio_clips", content.AudioClips,
		"captions", content.Captions)

	go o.pipeline(runCtx, id, content)
	return nil
}

func (o *Orchestrator) pipeline(ctx context.Context, id int, content Content) {
	weight := 100.0 / float64(len(o.stages))

	for i, stage := range o.stages {
		o.mu.Lock()
		if o.runID != id || o.status != StatusRunning {
			o.mu.Unlock()
			return
		}
		o.stageIndex = i
		o.mu.Unlock()

		base := float64(i) * weight
		err := o.run(ctx, stage, func(fraction float64) {
			o.reportProgress(id, base+weight*fraction)
		})
		if ctx.Err() != nil {
			// Cancelled; Cancel already reset the state.
			return
		}
		if err != nil {
			o.fail(id, stage, err)
			return
		}
	}

	artifact := &Artifact{
		Filename: fmt.Sprintf("video-%d.mp4", time.Now().UnixMilli()),
		Data: fmt.Appendf(nil, "cutline export: %d video, %d audio, %d captions\n",
			content.VideoClips, content.AudioClips, content.Captions),
	}

	o.mu.Lock()
	if o.runID != id || o.status != StatusRunning {
		o.mu.Unlock()
		return
	}
	o.status = StatusComplete
	o.progress = 100
	o.artifact = artifact
	o.cancel = nil
	o.mu.Unlock()

	o.logger.Info("export complete", "filename", artifact.Filename)
}

func (o *Orchestrator) reportProgress(id int, progress float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.runID != id || o.status != StatusRunning {
		return
	}
	if progress > 100 {
		progress = 100
	}
	// Progress never moves backwards within a run.
	if progress > o.progress {
		o.progress = progress
	}
}

func (o *Orchestrator) fail(id int, stage Stage, err error) {
	o.mu.Lock()
	if o.runID != id || o.status != StatusRunning {
		o.mu.Unlock()
		return
	}
	o.status = StatusFailed
	o.message = err.Error()
	o.cancel = nil
	delay := o.resetDelay
	o.mu.Unlock()

	o.logger.Error("export failed", "stage", stage.Name, "error", err)

	// Failure is displayed briefly, then the orchestrator recovers to
	// idle on its own.
	time.AfterFunc(delay, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if o.runID == id && o.status == StatusFailed {
			o.reset()
		}
	})
}

// Cancel aborts any in-flight export and returns to idle from any
// state. Partial artifacts are discarded.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
	}
	o.reset()
}

func (o *Orchestrator) reset() {
	o.status = StatusIdle
	o.stageIndex = 0
	o.progress = 0
	o.message = ""
	o.artifact = nil
	o.cancel = nil
	o.runID++
}

// Progress returns a snapshot of the current run.
func (o *Orchestrator) Progress() Report {
	o.mu.Lock()
	defer o.mu.Unlock()
	r := Report{
		Status:   o.status,
		Progress: o.progress,
		Message:  o.message,
	}
	if o.status == StatusRunning && o.stageIndex < len(o.stages) {
		r.Stage = o.stages[o.stageIndex].Name
		r.StageLabel = o.stages[o.stageIndex].Label
	}
	return r
}

// Artifact returns the finished payload, only once complete.
func (o *Orchestrator) Artifact() (*Artifact, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.status != StatusComplete || o.artifact == nil {
		return nil, false
	}
	copied := *o.artifact
	return &copied, true
}

// simulateStage sleeps through the stage duration in fixed steps,
// reporting fractional completion after each.
func simulateStage(ctx context.Context, stage Stage, report func(float64)) error {
	step := stage.Duration / stepsPerStage
	for i := 1; i <= stepsPerStage; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(step):
		}
		report(float64(i) / stepsPerStage)
	}
	return nil
}
