// Package upload stores user-submitted images on local disk and hands back
// the public URL path they are served under.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/pkordes/panda-market/internal/domain"
)

// MaxFileSize is the upload size cap in bytes.
const MaxFileSize = 5 << 20 // 5 MB

// Store saves uploaded files under a single directory. Filenames are
// random, so uploads never collide and the original name is never trusted.
type Store struct {
	dir string
}

// NewStore creates the upload directory if needed and returns a Store over it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload.NewStore: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory files are stored in, for static serving.
func (s *Store) Dir() string {
	return s.dir
}

// SaveImage persists an uploaded image and returns its public URL path
// ("/uploads/<name>"). Non-image content is rejected with
// domain.ErrValidation — the check sniffs the actual bytes, not the
// client-supplied content type.
func (s *Store) SaveImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > MaxFileSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrValidation, MaxFileSize)
	}

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("upload.Store.SaveImage: read: %w", err)
	}
	if ct := http.DetectContentType(head[:n]); !isImage(ct) {
		return "", fmt.Errorf("%w: only image files can be uploaded", domain.ErrValidation)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("upload.Store.SaveImage: seek: %w", err)
	}

	name := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("upload.Store.SaveImage: create: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, MaxFileSize)); err != nil {
		return "", fmt.Errorf("upload.Store.SaveImage: copy: %w", err)
	}
	return "/uploads/" + name, nil
}

func isImage(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}
