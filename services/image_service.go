package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"hotel-nepal/store"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// ImageService stores uploaded images under one directory with generated
// names. Only the file name is handed back; callers build URLs from it.
type ImageService struct {
	dir      string
	maxBytes int64
}

func NewImageService(dir string, maxBytes int64) *ImageService {
	return &ImageService{dir: dir, maxBytes: maxBytes}
}

func (s *ImageService) MaxBytes() int64 { return s.maxBytes }
func URLFor(filename string) string     { return "/uploads/" + filename }

// Save stores a multipart upload after checking its size and sniffing its
// content type.
func (s *ImageService) Save(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNoImage
	}
	if fh.Size > s.maxBytes {
		return "", ErrImageTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	return s.write(data)
}

// SaveBase64 accepts raw base64 or a data URL ("data:image/png;base64,...").
func (s *ImageService) SaveBase64(b64 string) (string, error) {
	if idx := strings.Index(b64, "base64,"); idx >= 0 {
		b64 = b64[idx+7:]
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return "", fmt.Errorf("%w: decode base64: %v", ErrNotAnImage, err)
	}
	return s.write(data)
}

func (s *ImageService) Remove(filename string) error {
	return store.RemoveUpload(s.dir, filename)
}

func (s *ImageService) write(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNoImage
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrImageTooLarge
	}
	ext, ok := imageExtensions[http.DetectContentType(data)]
	if !ok {
		return "", ErrNotAnImage
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	filename := uuid.NewString() + ext
	out, err := os.OpenFile(filepath.Join(s.dir, filename), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(out, bytes.NewReader(data)); err != nil {
		out.Close()
		_ = os.Remove(out.Name())
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}
	return filename, nil
}
