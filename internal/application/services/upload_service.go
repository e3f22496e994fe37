package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"mannequin/internal/domain"
)

const (
	PhotoField               = "image"
	DefaultUploadMemoryBytes = 32 << 20
)

// PhotoUpload is one file taken from a multipart request. The caller closes File.
type PhotoUpload struct {
	File         multipart.File
	Filename     string
	DeclaredType string
	Size         int64
}

func (p *PhotoUpload) Close() error {
	if p.File == nil {
		return nil
	}
	return p.File.Close()
}

type UploadService struct {
	maxMemory int64
}

// NewUploadService parses multipart bodies keeping up to maxMemory bytes in
// memory; larger parts spill to temporary files. No size limit is enforced.
func NewUploadService(maxMemory int64) *UploadService {
	if maxMemory <= 0 {
		maxMemory = DefaultUploadMemoryBytes
	}
	return &UploadService{maxMemory: maxMemory}
}

func (s *UploadService) ParsePhoto(r *http.Request) (*PhotoUpload, error) {
	if err := r.ParseMultipartForm(s.maxMemory); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFileRead, err)
	}

	file, header, err := r.FormFile(PhotoField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, fmt.Errorf("%w: no %q part in the form", domain.ErrFileRead, PhotoField)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrFileRead, err)
	}

	return &PhotoUpload{
		File:         file,
		Filename:     header.Filename,
		DeclaredType: s.getString(header.Header.Get("Content-Type"), ""),
		Size:         header.Size,
	}, nil
}

// Cleanup removes temporary files left by ParsePhoto.
func (s *UploadService) Cleanup(r *http.Request) {
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}

func (s *UploadService) getString(value, defaultValue string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultValue
	}
	return value
}
