package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/atomic"

	"eventbooking/internal/domain"
)

// maxNameBytes caps a sanitized name so "<stamp>-<name>" stays under the 255-byte filename limit.
const maxNameBytes = 200

// maxLinkAttempts bounds how often Save bumps the stamp when the target name already exists.
const maxLinkAttempts = 8

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9.\-_]`)

// Config describes one upload directory and the URL prefix it is served under.
type Config struct {
	// Root is the directory files are written to. Relative paths resolve against the working directory.
	Root string
	// PublicPrefix is prepended to stored filenames, e.g. "/uploads/events".
	PublicPrefix string
	// MaxBytes caps a single upload. Zero means domain.MaxUploadBytes.
	MaxBytes int64
}

type filesystemStore struct {
	root     string
	prefix   string
	maxBytes int64
	logger   *slog.Logger
	now      func() time.Time
	last     *atomic.Int64
}

// NewFilesystemStore resolves cfg.Root to an absolute path and creates it if absent.
func NewFilesystemStore(cfg Config, logger *slog.Logger) (domain.FileStore, error) {
	return newFilesystemStore(cfg, logger, time.Now)
}

func newFilesystemStore(cfg Config, logger *slog.Logger, now func() time.Time) (*filesystemStore, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root %q: %w", cfg.Root, err)
	}
	root = filepath.Clean(root)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("could not initialize storage (create directories) %s: %w", root, err)
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = domain.MaxUploadBytes
	}
	logger.Info("storage initialized", "root", root, "public_prefix", cfg.PublicPrefix)
	return &filesystemStore{
		root:     root,
		prefix:   strings.TrimSuffix(cfg.PublicPrefix, "/"),
		maxBytes: maxBytes,
		logger:   logger,
		now:      now,
		last:     atomic.NewInt64(0),
	}, nil
}

func (s *filesystemStore) Save(ctx context.Context, src io.Reader, originalName string, size int64) (string, error) {
	if src == nil || size <= 0 {
		return "", nil
	}
	if size > s.maxBytes {
		return "", fmt.Errorf("%w (max %d MB)", domain.ErrTooLarge, s.maxBytes>>20)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	base := SanitizeFilename(originalName)
	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %v", domain.ErrIOFailure, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	// Read one byte past the cap so an understated size is still caught.
	n, err := io.Copy(tmp, io.LimitReader(src, s.maxBytes+1))
	closeErr := tmp.Close()
	if err != nil {
		return "", fmt.Errorf("%w: write %s: %v", domain.ErrIOFailure, base, err)
	}
	if closeErr != nil {
		return "", fmt.Errorf("%w: close %s: %v", domain.ErrIOFailure, base, closeErr)
	}
	if n > s.maxBytes {
		return "", fmt.Errorf("%w (max %d MB)", domain.ErrTooLarge, s.maxBytes>>20)
	}

	for attempt := 0; attempt < maxLinkAttempts; attempt++ {
		filename := strconv.FormatInt(s.nextStamp(), 10) + "-" + base
		target, err := s.resolve(filename)
		if err != nil {
			return "", err
		}
		if err := os.Link(tmpName, target); err != nil {
			if errors.Is(err, fs.ErrExist) {
				continue
			}
			s.logger.Error("failed to store file", "file", filename, "err", err)
			return "", fmt.Errorf("%w %s: %v", domain.ErrIOFailure, filename, err)
		}
		return s.prefix + "/" + filename, nil
	}
	return "", fmt.Errorf("%w: no free name for %s", domain.ErrIOFailure, base)
}

func (s *filesystemStore) Remove(ctx context.Context, publicPath string) error {
	if publicPath == "" {
		return nil
	}
	name := strings.TrimPrefix(publicPath, s.prefix+"/")
	if name == publicPath || name == "" || strings.ContainsAny(name, `/\`) {
		return domain.ErrInvalidPath
	}
	target, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove %s: %v", domain.ErrIOFailure, name, err)
	}
	return nil
}

// resolve joins name onto the root and rejects anything whose parent is not the root itself.
func (s *filesystemStore) resolve(name string) (string, error) {
	target := filepath.Clean(filepath.Join(s.root, name))
	if filepath.Dir(target) != s.root {
		return "", domain.ErrInvalidPath
	}
	return target, nil
}

// nextStamp returns the current unix millisecond, moved forward past the last
// stamp handed out so two saves never share one.
func (s *filesystemStore) nextStamp() int64 {
	now := s.now().UnixMilli()
	for {
		last := s.last.Load()
		next := now
		if next <= last {
			next = last + 1
		}
		if s.last.CompareAndSwap(last, next) {
			return next
		}
	}
}

// SanitizeFilename reduces a client-supplied name to its final path element and
// replaces every character outside [A-Za-z0-9.-_] with an underscore. Long names are
// truncated to maxNameBytes, keeping a short extension.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(path.Clean("/" + name))
	if name == "/" {
		return "file"
	}
	name = strings.ReplaceAll(name, "..", "")
	name = unsafeChars.ReplaceAllString(name, "_")
	if name == "" {
		return "file"
	}
	if len(name) > maxNameBytes {
		ext := path.Ext(name)
		if len(ext) > 16 {
			ext = ""
		}
		name = name[:maxNameBytes-len(ext)] + ext
	}
	return name
}
