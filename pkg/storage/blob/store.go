package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/config"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
)

// Store persists encrypted clip blobs on the local filesystem. Object names
// are opaque relative paths handed out by the caller; traversal outside the
// root is rejected.
type Store struct {
	root string
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewStore prepares the storage root and verifies it is writable.
func NewStore(ctx context.Context, cfg config.VideoConfig, logg *logger.Logger) (*Store, error) {
	if cfg.StorageDir == "" {
		return nil, errors.New("storage dir is required")
	}
	root, err := filepath.Abs(cfg.StorageDir)
	if err != nil {
		return nil, fmt.Errorf("resolving storage dir: %w", err)
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}

	store := &Store{root: root}
	if err := store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("blob store health check failed: %w", err)
	}
	if logg != nil {
		logg.Info(ctx, "blob store initialized")
	}
	return store, nil
}

// Root returns the absolute storage root.
func (s *Store) Root() string {
	if s == nil {
		return ""
	}
	return s.root
}

// Write persists data at name, creating parent directories as needed. The
// blob lands via a temp file plus rename so a crash never leaves a partial
// object at the final path.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating blob dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp blob: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("writing blob: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("syncing blob: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		cleanup()
		return fmt.Errorf("setting blob mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing blob: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("placing blob: %w", err)
	}
	return nil
}

// Read returns the blob stored at name. A missing object yields fs.ErrNotExist.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("blob %s: %w", name, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("reading blob: %w", err)
	}
	return data, nil
}

// Delete removes the blob at name. Deleting an object that is already gone
// succeeds, so retries and sweeper re-runs stay idempotent.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting blob: %w", err)
	}
	return nil
}

// Exists reports whether a blob is present at name.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	path, err := s.resolve(name)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat blob: %w", err)
	}
	return true, nil
}

// Stat returns file info for the blob at name. A missing object yields
// fs.ErrNotExist.
func (s *Store) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("blob %s: %w", name, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("stat blob: %w", err)
	}
	return info, nil
}

// List walks the root and returns every stored object name.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if s == nil || s.root == "" {
		return nil, errors.New("blob store not initialized")
	}
	var names []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}
		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			return relErr
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing blobs: %w", err)
	}
	return names, nil
}

// Ping verifies the storage root is present and writable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.root == "" {
		return errors.New("blob store not initialized")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.root, ".ping-*")
	if err != nil {
		return fmt.Errorf("storage root not writable: %w", err)
	}
	name := tmp.Name()
	_ = tmp.Close()
	return os.Remove(name)
}

func (s *Store) resolve(name string) (string, error) {
	if s == nil || s.root == "" {
		return "", errors.New("blob store not initialized")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("blob name is required")
	}
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid blob name %q", name)
	}
	return filepath.Join(s.root, cleaned), nil
}
