// Package storage persists board snapshots on the local filesystem so the
// next report run has a baseline to diff against.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/felixgeelhaar/boardpulse/pkg/domain/snapshot"
	"github.com/felixgeelhaar/fortify/retry"
)

const SnapshotsDir = "snapshots"

// snapshotTimeLayout names snapshot files so lexical order is capture order.
const snapshotTimeLayout = "20060102-150405"

// FilesystemRepository stores snapshots as JSON files under
// <root>/snapshots/. The core never touches it beyond Save and the Load
// calls around a single diff.
type FilesystemRepository struct {
	root        string
	retryConfig retry.Config
}

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// ResolvePath ensures the filename stays within the snapshots directory and
// prevents traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := filepath.Join(r.root, SnapshotsDir)
	cleanPath := filepath.Clean(filepath.Join(baseDir, filename))

	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid snapshot path: %s", filename)
	}

	return cleanPath, nil
}

func (r *FilesystemRepository) Initialize() error {
	path := filepath.Join(r.root, SnapshotsDir)
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create snapshots directory: %w", err)
	}
	return nil
}

// Save writes the snapshot and returns the path it was written to.
func (r *FilesystemRepository) Save(snap snapshot.Snapshot) (string, error) {
	if err := r.Initialize(); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("snapshot-%s.json", snap.CapturedAt.Format(snapshotTimeLayout))
	path, err := r.ResolvePath(filename)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	return path, nil
}

// LoadLatest returns the most recent snapshot, or nil when no history
// exists. Absence is not an error.
func (r *FilesystemRepository) LoadLatest() (*snapshot.Snapshot, error) {
	return r.loadNth(0)
}

// LoadPrevious returns the second most recent snapshot. After a run has
// saved its own capture, this is the baseline for the next diff.
func (r *FilesystemRepository) LoadPrevious() (*snapshot.Snapshot, error) {
	return r.loadNth(1)
}

// loadNth loads the nth snapshot counting back from the newest.
func (r *FilesystemRepository) loadNth(n int) (*snapshot.Snapshot, error) {
	files, err := r.snapshotFiles()
	if err != nil {
		return nil, err
	}
	if len(files) <= n {
		return nil, nil
	}

	path := files[len(files)-1-n]
	retryer := retry.New[*snapshot.Snapshot](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (*snapshot.Snapshot, error) {
		// #nosec G304 -- path comes from a directory listing under root
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot file: %w", err)
		}

		var snap snapshot.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot %s: %w", filepath.Base(path), err)
		}

		return &snap, nil
	})
}

// Prune removes all but the newest keep snapshots.
func (r *FilesystemRepository) Prune(keep int) error {
	if keep < 0 {
		return fmt.Errorf("keep must be non-negative, got %d", keep)
	}

	files, err := r.snapshotFiles()
	if err != nil {
		return err
	}
	if len(files) <= keep {
		return nil
	}

	for _, path := range files[:len(files)-keep] {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to prune snapshot %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

// snapshotFiles lists snapshot files sorted oldest first. The timestamped
// filenames make lexical order chronological.
func (r *FilesystemRepository) snapshotFiles() ([]string, error) {
	pattern := filepath.Join(r.root, SnapshotsDir, "snapshot-*.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	sort.Strings(files)
	return files, nil
}
