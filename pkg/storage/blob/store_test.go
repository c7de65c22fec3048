package blob

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(context.Background(), config.VideoConfig{StorageDir: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestWriteReadDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	payload := []byte("encrypted clip bytes")

	if err := store.Write(ctx, "user-1/clip.bin", payload); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := store.Read(ctx, "user-1/clip.bin")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("read bytes differ from written bytes")
	}

	info, err := os.Stat(filepath.Join(store.Root(), "user-1", "clip.bin"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected mode 0600, got %o", perm)
	}

	if err := store.Delete(ctx, "user-1/clip.bin"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Read(ctx, "user-1/clip.bin"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist after delete, got %v", err)
	}
}

func TestDeleteMissingSucceeds(t *testing.T) {
	store := newTestStore(t)
	if err := store.Delete(context.Background(), "never-written.bin"); err != nil {
		t.Fatalf("expected missing delete to succeed, got %v", err)
	}
	if err := store.Delete(context.Background(), "never-written.bin"); err != nil {
		t.Fatalf("expected repeated delete to succeed, got %v", err)
	}
}

func TestWriteOverwritesExisting(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Write(ctx, "clip.bin", []byte("first")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := store.Write(ctx, "clip.bin", []byte("second")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := store.Read(ctx, "clip.bin")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "second" {
		t.Fatalf("expected overwritten content, got %q", got)
	}
}

func TestResolveRejectsTraversal(t *testing.T) {
	store := newTestStore(t)
	for _, name := range []string{"../escape.bin", "/abs/path.bin", "..", "a/../../b"} {
		if err := store.Write(context.Background(), name, []byte("x")); err == nil {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}

func TestExistsAndList(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	ok, err := store.Exists(ctx, "a/b.bin")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Fatal("expected missing blob to not exist")
	}

	for _, name := range []string{"a/b.bin", "c.bin"} {
		if err := store.Write(ctx, name, []byte("data")); err != nil {
			t.Fatalf("Write %s: %v", name, err)
		}
	}

	ok, err = store.Exists(ctx, "a/b.bin")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !ok {
		t.Fatal("expected written blob to exist")
	}

	names, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 blobs, got %v", names)
	}
}

func TestPing(t *testing.T) {
	store := newTestStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
