package videos

import (
	"context"
	"io/fs"
	"testing"
	"time"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
)

func TestReconcileRemovesStaleOrphans(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeReconcilerRepo{paths: []string{"kept.bin"}}
	blobs := &fakeBlobLister{
		names: []string{"kept.bin", "orphan-old.bin", "orphan-new.bin"},
		mtimes: map[string]time.Time{
			"kept.bin":       now.Add(-48 * time.Hour),
			"orphan-old.bin": now.Add(-2 * time.Hour),
			"orphan-new.bin": now.Add(-time.Minute),
		},
	}
	reconciler := newTestReconciler(t, repo, blobs)
	reconciler.now = func() time.Time { return now }

	removed, err := reconciler.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if len(blobs.deleted) != 1 || blobs.deleted[0] != "orphan-old.bin" {
		t.Fatalf("expected only the stale orphan removed, got %v", blobs.deleted)
	}
}

func TestReconcileToleratesVanishedBlobs(t *testing.T) {
	t.Parallel()

	repo := &fakeReconcilerRepo{}
	blobs := &fakeBlobLister{
		names:    []string{"gone.bin"},
		vanished: map[string]bool{"gone.bin": true},
	}
	reconciler := newTestReconciler(t, repo, blobs)

	removed, err := reconciler.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if removed != 0 {
		t.Fatalf("expected 0 removed, got %d", removed)
	}
}

func newTestReconciler(t *testing.T, repo *fakeReconcilerRepo, blobs *fakeBlobLister) *Reconciler {
	t.Helper()
	reconciler, err := NewReconciler(ReconcilerParams{
		Logger: logger.New(logger.Options{ServiceName: "test"}),
		Repo:   repo,
		Blobs:  blobs,
	})
	if err != nil {
		t.Fatalf("NewReconciler: %v", err)
	}
	return reconciler
}

type fakeReconcilerRepo struct {
	paths []string
}

func (f *fakeReconcilerRepo) ListLivePaths(ctx context.Context) ([]string, error) {
	return f.paths, nil
}

type fakeBlobLister struct {
	names    []string
	mtimes   map[string]time.Time
	vanished map[string]bool
	deleted  []string
}

func (f *fakeBlobLister) List(ctx context.Context) ([]string, error) {
	return f.names, nil
}

func (f *fakeBlobLister) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	if f.vanished[name] {
		return nil, fs.ErrNotExist
	}
	return fakeFileInfo{name: name, mtime: f.mtimes[name]}, nil
}

func (f *fakeBlobLister) Delete(ctx context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return nil
}

type fakeFileInfo struct {
	name  string
	mtime time.Time
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() fs.FileMode  { return 0o600 }
func (f fakeFileInfo) ModTime() time.Time { return f.mtime }
func (f fakeFileInfo) IsDir() bool        { return false }
func (f fakeFileInfo) Sys() any           { return nil }
