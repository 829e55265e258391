package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/ArmanAleqyan/langtrio/internal/model"

	"github.com/google/uuid"
)

// Kind selects the allowlist a saved file must satisfy.
type Kind int

const (
	KindImage Kind = iota
	KindAudio
)

var imageExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
}

var audioExts = map[string]bool{
	".mp3": true, ".wav": true, ".mpeg": true, ".mpga": true,
}

var imageMimes = map[string]bool{
	"image/jpeg": true, "image/png": true, "image/jpg": true,
	"image/gif": true, "image/webp": true,
}

var audioMimes = map[string]bool{
	"audio/mpeg": true, "audio/wav": true, "audio/mp3": true,
	"audio/x-wav": true,
}

// AllowedImage reports whether the upload passes the image allowlist, by
// extension or declared content type.
func AllowedImage(h *multipart.FileHeader) bool {
	if imageExts[strings.ToLower(filepath.Ext(h.Filename))] {
		return true
	}
	return imageMimes[strings.ToLower(h.Header.Get("Content-Type"))]
}

// AllowedAudio reports whether the upload passes the audio allowlist.
func AllowedAudio(h *multipart.FileHeader) bool {
	if audioExts[strings.ToLower(filepath.Ext(h.Filename))] {
		return true
	}
	return audioMimes[strings.ToLower(h.Header.Get("Content-Type"))]
}

// FileStore persists uploads under a single flat directory and hands back
// bare filenames; the database stores only those names. Names are
// uuid + original extension, replacing the legacy timestamp scheme that
// could collide across concurrent requests in the same second.
type FileStore struct {
	root   string
	logger *slog.Logger
}

func NewFileStore(root string, logger *slog.Logger) (*FileStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage.NewFileStore: %w", err)
	}
	return &FileStore{root: root, logger: logger}, nil
}

// Save writes the upload into the store root and returns the generated
// filename. The allowlist is re-checked here so a service cannot be handed a
// file the declarative validation missed.
func (s *FileStore) Save(u *model.Upload, kind Kind) (string, error) {
	if u == nil || u.File == nil || u.Header == nil {
		return "", model.ErrInvalidInput
	}
	// The upload is consumed here either way; close it so the store never
	// leaks descriptors when used outside an HTTP request lifecycle.
	defer u.File.Close()
	switch kind {
	case KindImage:
		if !AllowedImage(u.Header) {
			return "", model.ErrInvalidInput
		}
	case KindAudio:
		if !AllowedAudio(u.Header) {
			return "", model.ErrInvalidInput
		}
	}

	ext := strings.ToLower(filepath.Ext(u.Header.Filename))
	name := uuid.New().String() + ext

	dst, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return "", fmt.Errorf("storage.Save: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, u.File); err != nil {
		os.Remove(filepath.Join(s.root, name))
		return "", fmt.Errorf("storage.Save: %w", err)
	}
	return name, nil
}

// Remove unlinks a stored file by name. A missing file is fine (idempotent
// delete); other failures are logged and swallowed so a row delete never
// fails on disk cleanup.
func (s *FileStore) Remove(name string) {
	if name == "" {
		return
	}
	// Stored names are bare; Base guards against traversal from stale rows.
	path := filepath.Join(s.root, filepath.Base(name))
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("Failed to remove stored file", slog.String("file", name), slog.Any("error", err))
	}
}

// RemoveAll removes several stored files best-effort.
func (s *FileStore) RemoveAll(names ...string) {
	for _, n := range names {
		s.Remove(n)
	}
}

// Path returns the on-disk path of a stored name.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.root, filepath.Base(name))
}
