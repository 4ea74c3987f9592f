package media

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalUploader stores rendered images on the local filesystem and exposes
// them under the /media/ route served by the API.
type LocalUploader struct {
	BaseDir string
}

// NewLocalUploader constructs an uploader that writes to the provided
// directory, creating it if needed. If baseDir is empty, "media" is used.
func NewLocalUploader(baseDir string) (*LocalUploader, error) {
	dir := baseDir
	if dir == "" {
		dir = "media"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create local media dir: %w", err)
	}
	return &LocalUploader{BaseDir: dir}, nil
}

// Upload writes the incoming content to disk and returns its served URL.
func (l *LocalUploader) Upload(_ context.Context, input UploadInput) (UploadResult, error) {
	if input.Body == nil {
		return UploadResult{}, fmt.Errorf("upload body is required")
	}

	name := uuid.NewString() + extensionFor(input)
	path := filepath.Join(l.BaseDir, name)

	file, err := os.Create(path)
	if err != nil {
		return UploadResult{}, fmt.Errorf("create media file: %w", err)
	}
	defer file.Close()

	if _, err := file.ReadFrom(input.Body); err != nil {
		os.Remove(path)
		return UploadResult{}, fmt.Errorf("write media file: %w", err)
	}

	return UploadResult{
		Key: name,
		URL: "/media/" + name,
	}, nil
}

func extensionFor(input UploadInput) string {
	if ext := filepath.Ext(input.Filename); ext != "" && len(ext) <= 10 {
		return ext
	}
	if exts, err := mime.ExtensionsByType(input.ContentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".png"
}
