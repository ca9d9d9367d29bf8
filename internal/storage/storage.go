package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/pkg/config"
	"github.com/orgball2608/insta-profile-sync/pkg/errors"
	"github.com/orgball2608/insta-profile-sync/pkg/logger"
	"github.com/spf13/afero"
	"go.uber.org/fx"
)

const (
	tempDir   = ".tmp"
	tempExt   = ".part"
	dirPerm   = 0o755
	filePerm  = 0o644
	timeStamp = "20060102T150405Z"
)

// Staged is a fully written temp file that is not yet visible under its
// final name.
type Staged struct {
	Username string
	TempPath string
	// RelPath is the final location relative to the download directory.
	RelPath string
	Size    int64
}

// Store lays media out as <root>/<username>/<file>. Files only appear under
// their final name through Promote, so a crash never leaves a partial file
// that looks complete.
type Store struct {
	fs     afero.Fs
	root   string
	logger logger.Logger
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

func New(opts Opts) *Store {
	return NewWithFs(afero.NewOsFs(), opts.Config.Storage.DownloadDir, opts.Logger)
}

func NewWithFs(fs afero.Fs, root string, log logger.Logger) *Store {
	return &Store{
		fs:     fs,
		root:   root,
		logger: log.WithComponent("Storage"),
	}
}

// FileName is deterministic so a re-download of the same item lands on the
// same path.
func FileName(username string, media domain.RemoteMedia) string {
	return fmt.Sprintf("%s_%s_%s%s", username, media.CapturedAt.UTC().Format(timeStamp), media.RemoteID, media.Extension())
}

func (s *Store) Path(relPath string) string {
	return filepath.Join(s.root, relPath)
}

// Stage streams r into a temp file under the target directory and fsyncs
// it. expected is the announced size, or -1 when unknown.
func (s *Store) Stage(ctx context.Context, username string, media domain.RemoteMedia, r io.Reader, expected int64) (*Staged, error) {
	dir := filepath.Join(s.root, username, tempDir)
	if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
		return nil, errors.Classify(fmt.Errorf("failed to create %s: %w", dir, err), errors.KindStorage)
	}

	tempPath := filepath.Join(dir, fmt.Sprintf("%s-%s%s", media.RemoteID, uuid.NewString(), tempExt))
	f, err := s.fs.OpenFile(tempPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, filePerm)
	if err != nil {
		return nil, errors.Classify(fmt.Errorf("failed to create temp file: %w", err), errors.KindStorage)
	}

	src := &ctxReader{ctx: ctx, r: r}
	written, err := io.Copy(f, src)
	if err == nil {
		err = f.Sync()
		if err != nil {
			err = errors.Classify(fmt.Errorf("failed to sync %s: %w", tempPath, err), errors.KindStorage)
		}
	} else if src.err != nil {
		err = readError(ctx, src.err)
	} else {
		err = errors.Classify(fmt.Errorf("failed to write %s: %w", tempPath, err), errors.KindStorage)
	}

	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = errors.Classify(fmt.Errorf("failed to close %s: %w", tempPath, closeErr), errors.KindStorage)
	}

	if err == nil {
		switch {
		case expected >= 0 && written != expected:
			err = errors.Classify(fmt.Errorf("truncated download: got %d of %d bytes", written, expected), errors.KindTransient)
		case written == 0:
			err = errors.Classify(fmt.Errorf("empty download for %s", media.RemoteID), errors.KindTransient)
		}
	}

	if err != nil {
		s.removeQuietly(tempPath)
		return nil, err
	}

	return &Staged{
		Username: username,
		TempPath: tempPath,
		RelPath:  filepath.Join(username, FileName(username, media)),
		Size:     written,
	}, nil
}

// Promote atomically renames a staged file to its final name.
func (s *Store) Promote(staged *Staged) error {
	final := s.Path(staged.RelPath)
	if err := s.fs.Rename(staged.TempPath, final); err != nil {
		return errors.Classify(fmt.Errorf("failed to promote %s: %w", staged.RelPath, err), errors.KindStorage)
	}
	return nil
}

func (s *Store) Discard(staged *Staged) {
	if staged != nil {
		s.removeQuietly(staged.TempPath)
	}
}

// Remove deletes a promoted file. A file that is already gone is not an error.
func (s *Store) Remove(relPath string) error {
	err := s.fs.Remove(s.Path(relPath))
	if err != nil && !os.IsNotExist(err) {
		return errors.Classify(fmt.Errorf("failed to remove %s: %w", relPath, err), errors.KindStorage)
	}
	return nil
}

// SweepTemp removes temp files left behind by an interrupted run.
func (s *Store) SweepTemp(username string) (int, error) {
	dir := filepath.Join(s.root, username, tempDir)
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.Classify(fmt.Errorf("failed to read %s: %w", dir, err), errors.KindStorage)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), tempExt) {
			continue
		}
		if err := s.fs.Remove(filepath.Join(dir, entry.Name())); err == nil {
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("Removed leftover temp files", "username", username, "count", removed)
	}
	return removed, nil
}

func (s *Store) Exists(relPath string) (bool, error) {
	return afero.Exists(s.fs, s.Path(relPath))
}

// CheckWritable fails early when the download directory cannot be used.
func (s *Store) CheckWritable() error {
	if err := s.fs.MkdirAll(s.root, dirPerm); err != nil {
		return errors.Classify(fmt.Errorf("download directory %s is not usable: %w", s.root, err), errors.KindStorage)
	}

	probe := filepath.Join(s.root, fmt.Sprintf(".probe-%d", time.Now().UnixNano()))
	if err := afero.WriteFile(s.fs, probe, nil, filePerm); err != nil {
		return errors.Classify(fmt.Errorf("download directory %s is not writable: %w", s.root, err), errors.KindStorage)
	}
	s.removeQuietly(probe)
	return nil
}

func (s *Store) removeQuietly(path string) {
	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("Failed to remove file", "path", path, "error", err)
	}
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
	err error
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		c.err = err
		return 0, err
	}
	n, err := c.r.Read(p)
	if err != nil && err != io.EOF {
		c.err = err
	}
	return n, err
}

func readError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.KindOf(err) != errors.KindUnknown {
		return err
	}
	return errors.Classify(fmt.Errorf("download interrupted: %w", err), errors.KindTransient)
}
