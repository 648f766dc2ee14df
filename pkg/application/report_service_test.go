package application_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/boardpulse/pkg/application"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/board"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/metrics"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/snapshot"
)

type fakeFetcher struct {
	project board.Project
	items   []board.RawItem
	err     error
}

func (f *fakeFetcher) FetchProject(context.Context) (board.Project, error) {
	return f.project, f.err
}

func (f *fakeFetcher) FetchItems(context.Context) ([]board.RawItem, error) {
	return f.items, f.err
}

type fakeSnapshots struct {
	saved    []snapshot.Snapshot
	latest   *snapshot.Snapshot
	previous *snapshot.Snapshot
	saveErr  error
}

func (f *fakeSnapshots) Save(snap snapshot.Snapshot) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved = append(f.saved, snap)
	return "/tmp/snapshots/snap.json", nil
}

func (f *fakeSnapshots) LoadLatest() (*snapshot.Snapshot, error)   { return f.latest, nil }
func (f *fakeSnapshots) LoadPrevious() (*snapshot.Snapshot, error) { return f.previous, nil }

type fakeRenderer struct {
	rendered *application.Report
}

func (f *fakeRenderer) Render(report application.Report) ([]byte, error) {
	f.rendered = &report
	return []byte("rendered"), nil
}

func (f *fakeRenderer) Extension() string { return "txt" }

func rawItem(id, status, priority string) board.RawItem {
	return board.RawItem{ID: id, Title: "Item " + id, Status: status, Priority: priority}
}

func newService(fetcher *fakeFetcher, snaps *fakeSnapshots, renderer *fakeRenderer) *application.ReportService {
	return application.NewReportService(
		fetcher,
		snaps,
		map[string]application.Renderer{"txt": renderer},
		metrics.DefaultPolicies(),
		application.WithClock(func() time.Time {
			return time.Date(2026, 8, 18, 9, 30, 0, 0, time.UTC)
		}),
	)
}

func TestGenerate(t *testing.T) {
	fetcher := &fakeFetcher{
		project: board.Project{Owner: "acme", Number: 7, Title: "Q3 Delivery"},
		items: []board.RawItem{
			rawItem("1", "Done", "P1"),
			rawItem("2", "In Progress", "P0"),
			rawItem("3", "Backlog", "P2"),
		},
	}
	snaps := &fakeSnapshots{}
	renderer := &fakeRenderer{}
	svc := newService(fetcher, snaps, renderer)

	outputDir := t.TempDir()
	result, err := svc.Generate(context.Background(), application.GenerateOptions{
		Format:    "txt",
		OutputDir: outputDir,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Base(result.OutputPath) != "report-20260818-093000.txt" {
		t.Errorf("unexpected output path: %q", result.OutputPath)
	}
	data, err := os.ReadFile(result.OutputPath)
	if err != nil || string(data) != "rendered" {
		t.Errorf("expected rendered output on disk, got %q, %v", data, err)
	}

	if renderer.rendered == nil {
		t.Fatal("renderer was not invoked")
	}
	if renderer.rendered.Metrics.TotalItems != 3 {
		t.Errorf("expected 3 items in metrics, got %d", renderer.rendered.Metrics.TotalItems)
	}
	// No history: every item is new, done items count completed.
	if renderer.rendered.Diff.Added != 3 || renderer.rendered.Diff.Completed != 1 {
		t.Errorf("unexpected diff: %+v", renderer.rendered.Diff)
	}

	if len(snaps.saved) != 1 {
		t.Fatalf("expected one snapshot save, got %d", len(snaps.saved))
	}
	if snaps.saved[0].ID == "" {
		t.Error("snapshot should get an id")
	}
	if result.SnapshotPath == "" {
		t.Error("expected snapshot path in result")
	}
}

func TestGenerateDiffsAgainstLatestSnapshot(t *testing.T) {
	prev := snapshot.New("prev", time.Date(2026, 8, 17, 9, 0, 0, 0, time.UTC), []board.WorkItem{
		{ID: "1", Title: "Item 1", Status: board.StatusInProgress, Priority: board.PriorityP1},
	})

	fetcher := &fakeFetcher{
		project: board.Project{Owner: "acme", Number: 7},
		items: []board.RawItem{
			rawItem("1", "Done", "P1"),
			rawItem("2", "Todo", "P2"),
		},
	}
	snaps := &fakeSnapshots{latest: &prev}
	renderer := &fakeRenderer{}
	svc := newService(fetcher, snaps, renderer)

	if _, err := svc.Generate(context.Background(), application.GenerateOptions{
		Format:    "txt",
		OutputDir: t.TempDir(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	diff := renderer.rendered.Diff
	if diff.Added != 1 || diff.Completed != 1 || len(diff.Transitions) != 1 {
		t.Errorf("unexpected diff: %+v", diff)
	}
	if diff.Transitions[0].From != board.StatusInProgress || diff.Transitions[0].To != board.StatusDone {
		t.Errorf("unexpected transition: %+v", diff.Transitions[0])
	}
}

func TestGenerateSkipSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{
		project: board.Project{Owner: "acme", Number: 7},
		items:   []board.RawItem{rawItem("1", "Todo", "P1")},
	}
	snaps := &fakeSnapshots{}
	svc := newService(fetcher, snaps, &fakeRenderer{})

	result, err := svc.Generate(context.Background(), application.GenerateOptions{
		Format:       "txt",
		OutputDir:    t.TempDir(),
		SkipSnapshot: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snaps.saved) != 0 {
		t.Errorf("expected no snapshot saves, got %d", len(snaps.saved))
	}
	if result.SnapshotPath != "" {
		t.Errorf("expected empty snapshot path, got %q", result.SnapshotPath)
	}
}

func TestGenerateDateFilter(t *testing.T) {
	old := rawItem("1", "Todo", "P1")
	old.CreatedAt = "2026-01-10T00:00:00Z"
	recent := rawItem("2", "Todo", "P1")
	recent.CreatedAt = "2026-08-10T00:00:00Z"

	fetcher := &fakeFetcher{
		project: board.Project{Owner: "acme", Number: 7},
		items:   []board.RawItem{old, recent},
	}
	renderer := &fakeRenderer{}
	svc := newService(fetcher, &fakeSnapshots{}, renderer)

	if _, err := svc.Generate(context.Background(), application.GenerateOptions{
		Format:    "txt",
		OutputDir: t.TempDir(),
		Since:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if renderer.rendered.Metrics.TotalItems != 1 {
		t.Errorf("expected filter to keep 1 item, got %d", renderer.rendered.Metrics.TotalItems)
	}
	if renderer.rendered.Items[0].ID != "2" {
		t.Errorf("expected recent item to survive, got %q", renderer.rendered.Items[0].ID)
	}
}

func TestGenerateUnknownFormat(t *testing.T) {
	svc := newService(&fakeFetcher{}, &fakeSnapshots{}, &fakeRenderer{})

	_, err := svc.Generate(context.Background(), application.GenerateOptions{Format: "pdf"})
	if err == nil || !strings.Contains(err.Error(), "unknown report format") {
		t.Errorf("expected unknown format error, got: %v", err)
	}
}

func TestGenerateMalformedRowAborts(t *testing.T) {
	fetcher := &fakeFetcher{
		project: board.Project{Owner: "acme", Number: 7},
		items: []board.RawItem{
			rawItem("1", "Todo", "P1"),
			rawItem("2", "Blocked", "P1"),
		},
	}
	snaps := &fakeSnapshots{}
	svc := newService(fetcher, snaps, &fakeRenderer{})

	_, err := svc.Generate(context.Background(), application.GenerateOptions{
		Format:    "txt",
		OutputDir: t.TempDir(),
	})
	if err == nil || !strings.Contains(err.Error(), `item "2"`) {
		t.Errorf("expected parse error naming the item, got: %v", err)
	}
	if len(snaps.saved) != 0 {
		t.Error("a failed run must not persist a snapshot")
	}
}

func TestGenerateFetchError(t *testing.T) {
	sentinel := errors.New("gh exploded")
	svc := newService(&fakeFetcher{err: sentinel}, &fakeSnapshots{}, &fakeRenderer{})

	_, err := svc.Generate(context.Background(), application.GenerateOptions{
		Format:    "txt",
		OutputDir: t.TempDir(),
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("expected wrapped fetch error, got: %v", err)
	}
}

func TestStatus(t *testing.T) {
	older := snapshot.New("a", time.Date(2026, 8, 17, 9, 0, 0, 0, time.UTC), []board.WorkItem{
		{ID: "1", Title: "Item 1", Status: board.StatusTodo, Priority: board.PriorityP1},
	})
	newer := snapshot.New("b", time.Date(2026, 8, 18, 9, 0, 0, 0, time.UTC), []board.WorkItem{
		{ID: "1", Title: "Item 1", Status: board.StatusDone, Priority: board.PriorityP1},
	})

	snaps := &fakeSnapshots{latest: &newer, previous: &older}
	svc := newService(&fakeFetcher{}, snaps, &fakeRenderer{})

	report, err := svc.Status(board.Project{Owner: "acme", Number: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Metrics.DoneItems != 1 {
		t.Errorf("unexpected metrics: %+v", report.Metrics)
	}
	if report.Diff.Completed != 1 {
		t.Errorf("expected completion in diff, got %+v", report.Diff)
	}
	if !report.GeneratedAt.Equal(newer.CapturedAt) {
		t.Errorf("status should carry the capture time, got %v", report.GeneratedAt)
	}
}

func TestStatusWithoutHistory(t *testing.T) {
	svc := newService(&fakeFetcher{}, &fakeSnapshots{}, &fakeRenderer{})

	if _, err := svc.Status(board.Project{}); err == nil {
		t.Error("expected error when no snapshots exist")
	}
}
