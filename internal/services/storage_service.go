package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrNotAnImage is returned when an uploaded file is not an image.
	ErrNotAnImage = errors.New("file is not an image")

	// ErrFileTooLarge is returned when an uploaded file exceeds the
	// configured size limit.
	ErrFileTooLarge = errors.New("file exceeds the maximum upload size")
)

// StorageService stores uploaded product images under a randomized path
// and returns their public URLs.
type StorageService struct {
	uploadPath    string
	publicBaseURL string
	maxSize       int64
}

// NewStorageService creates a new storage service
func NewStorageService(uploadPath, publicBaseURL string, maxSize int64) *StorageService {
	return &StorageService{
		uploadPath:    uploadPath,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		maxSize:       maxSize,
	}
}

// ValidateImage checks the declared content type and size. It reads
// nothing from disk so it can run over a whole batch before any file is
// stored.
func (s *StorageService) ValidateImage(header *multipart.FileHeader) error {
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%w: %s", ErrNotAnImage, header.Filename)
	}
	if header.Size > s.maxSize {
		return fmt.Errorf("%w: %s (%d bytes)", ErrFileTooLarge, header.Filename, header.Size)
	}
	return nil
}

// SaveImage writes one uploaded file under a random name and returns its
// public URL. The original filename only contributes its extension.
func (s *StorageService) SaveImage(header *multipart.FileHeader) (string, error) {
	dir := filepath.Join(s.uploadPath, "products")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := uuid.New().String() + ext

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.publicBaseURL + "/uploads/products/" + name, nil
}

// SaveAll validates every file first, then stores them concurrently.
// URLs come back in input order; the first is the cover image. The
// batch is not transactional: if one store fails the call errors but
// files already written stay on disk.
func (s *StorageService) SaveAll(headers []*multipart.FileHeader) ([]string, error) {
	for _, header := range headers {
		if err := s.ValidateImage(header); err != nil {
			return nil, err
		}
	}

	urls := make([]string, len(headers))
	errs := make([]error, len(headers))

	var wg sync.WaitGroup
	for i, header := range headers {
		wg.Add(1)
		go func(i int, header *multipart.FileHeader) {
			defer wg.Done()
			urls[i], errs[i] = s.SaveImage(header)
		}(i, header)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return urls, nil
}
