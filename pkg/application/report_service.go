// Package application orchestrates report runs: fetch, parse, compute,
// diff, render, persist. All policy lives in the domain packages; this
// layer only sequences the collaborators.
package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/boardpulse/pkg/domain/board"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/metrics"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/snapshot"
	"github.com/google/uuid"
)

// Fetcher pulls board metadata and raw rows from the data source.
type Fetcher interface {
	FetchProject(ctx context.Context) (board.Project, error)
	FetchItems(ctx context.Context) ([]board.RawItem, error)
}

// SnapshotRepository persists board captures between runs.
type SnapshotRepository interface {
	Save(snap snapshot.Snapshot) (string, error)
	LoadLatest() (*snapshot.Snapshot, error)
	LoadPrevious() (*snapshot.Snapshot, error)
}

// Renderer turns a finished report into one output representation.
// Renderers never recompute metrics; everything they show is in Report.
type Renderer interface {
	Render(report Report) ([]byte, error)
	Extension() string
}

// Report bundles everything a renderer needs for one run.
type Report struct {
	Project     board.Project    `json:"project"`
	GeneratedAt time.Time        `json:"generated_at"`
	Items       []board.WorkItem `json:"items"`
	Metrics     metrics.Record   `json:"metrics"`
	Diff        snapshot.Report  `json:"diff"`
	Policies    metrics.Policies `json:"-"`
}

// GenerateOptions control a single report run.
type GenerateOptions struct {
	Format       string
	OutputDir    string
	Since        time.Time
	Until        time.Time
	DateField    board.DateField
	SkipSnapshot bool
}

// RunResult is what a completed run hands back to the CLI.
type RunResult struct {
	Report       Report
	OutputPath   string
	SnapshotPath string
}

// ReportService runs the fetch → compute → render pipeline.
type ReportService struct {
	fetcher   Fetcher
	snapshots SnapshotRepository
	renderers map[string]Renderer
	policies  metrics.Policies
	now       func() time.Time
}

// ServiceOption configures a ReportService.
type ServiceOption func(*ReportService)

// WithClock substitutes the time source. Used by tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *ReportService) { s.now = now }
}

func NewReportService(fetcher Fetcher, snapshots SnapshotRepository, renderers map[string]Renderer, policies metrics.Policies, opts ...ServiceOption) *ReportService {
	s := &ReportService{
		fetcher:   fetcher,
		snapshots: snapshots,
		renderers: renderers,
		policies:  policies,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate runs one full report: fetch the board, parse and filter the
// rows, compute metrics, diff against the previous capture, render to
// opts.Format under opts.OutputDir, and persist a new snapshot unless
// opts.SkipSnapshot is set.
func (s *ReportService) Generate(ctx context.Context, opts GenerateOptions) (*RunResult, error) {
	renderer, ok := s.renderers[opts.Format]
	if !ok {
		return nil, fmt.Errorf("unknown report format %q", opts.Format)
	}

	project, err := s.fetcher.FetchProject(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch project: %w", err)
	}

	raw, err := s.fetcher.FetchItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}

	items, err := board.ParseWorkItems(raw)
	if err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}

	if !opts.Since.IsZero() || !opts.Until.IsZero() {
		field := opts.DateField
		if field == "" {
			field = board.DateFieldCreated
		}
		items = board.FilterByDateRange(items, opts.Since, opts.Until, field)
	}

	previous, err := s.snapshots.LoadLatest()
	if err != nil {
		return nil, fmt.Errorf("load previous snapshot: %w", err)
	}

	capturedAt := s.now().UTC()
	report := Report{
		Project:     project,
		GeneratedAt: capturedAt,
		Items:       items,
		Metrics:     metrics.Compute(items),
		Diff:        snapshot.Diff(items, previous),
		Policies:    s.policies,
	}

	rendered, err := renderer.Render(report)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	outputPath, err := s.writeOutput(opts.OutputDir, renderer.Extension(), capturedAt, rendered)
	if err != nil {
		return nil, err
	}

	result := &RunResult{Report: report, OutputPath: outputPath}

	if !opts.SkipSnapshot {
		snap := snapshot.New(uuid.NewString(), capturedAt, items)
		path, err := s.snapshots.Save(snap)
		if err != nil {
			return nil, fmt.Errorf("save snapshot: %w", err)
		}
		result.SnapshotPath = path
	}

	return result, nil
}

// Status summarizes the latest capture without touching the network. It
// diffs the two most recent snapshots so the CLI can show what moved.
func (s *ReportService) Status(project board.Project) (*Report, error) {
	latest, err := s.snapshots.LoadLatest()
	if err != nil {
		return nil, fmt.Errorf("load latest snapshot: %w", err)
	}
	if latest == nil {
		return nil, fmt.Errorf("no snapshots yet, run a report first")
	}

	previous, err := s.snapshots.LoadPrevious()
	if err != nil {
		return nil, fmt.Errorf("load previous snapshot: %w", err)
	}

	return &Report{
		Project:     project,
		GeneratedAt: latest.CapturedAt,
		Items:       latest.Items,
		Metrics:     metrics.Compute(latest.Items),
		Diff:        snapshot.Diff(latest.Items, previous),
		Policies:    s.policies,
	}, nil
}

func (s *ReportService) writeOutput(dir, ext string, capturedAt time.Time, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	name := fmt.Sprintf("report-%s.%s", capturedAt.Format("20060102-150405"), ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
