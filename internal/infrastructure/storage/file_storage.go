package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"medisafe/pkg/apperror"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const megabyte = 1 << 20

// Policy is the extension allow-list and size ceiling of one upload kind
type Policy struct {
	Extensions []string
	MaxBytes   int64
}

var (
	PrescriptionPolicy = Policy{Extensions: []string{"pdf", "jpg", "jpeg", "png", "gif", "bmp"}, MaxBytes: 10 * megabyte}
	LabResultPolicy    = Policy{Extensions: []string{"pdf", "jpg", "jpeg", "png"}, MaxBytes: 10 * megabyte}
	PhotoPolicy        = Policy{Extensions: []string{"jpeg", "jpg", "png", "gif"}, MaxBytes: 5 * megabyte}
)

// Check validates name and size against the policy
func (p Policy) Check(name string, size int64) error {
	ext := Extension(name)
	allowed := false
	for _, e := range p.Extensions {
		if e == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		return apperror.Validationf("File type .%s not allowed. Allowed types: %s", ext, strings.Join(p.Extensions, ", "))
	}
	if size > p.MaxBytes {
		return apperror.Validationf("File size exceeds %dMB limit", p.MaxBytes/megabyte)
	}
	return nil
}

// Upload is an incoming file as received from a multipart form
type Upload struct {
	Name   string
	Size   int64
	Reader io.Reader
}

// StoredFile describes a file written to storage
type StoredFile struct {
	Path        string
	Name        string
	ContentType string
	Size        int64
}

// FileStorage keeps uploaded documents under a root directory of an afero filesystem.
// Stored paths are relative to the root and use forward slashes.
type FileStorage struct {
	fs afero.Fs
}

func NewFileStorage(root string) (*FileStorage, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &FileStorage{fs: afero.NewBasePathFs(osFs, root)}, nil
}

// NewMemoryStorage is backed by an in-memory filesystem
func NewMemoryStorage() *FileStorage {
	return &FileStorage{fs: afero.NewMemMapFs()}
}

// Read checks the upload against policy and buffers its content.
// The declared size is re-checked against the bytes actually read.
func (s *FileStorage) Read(upload Upload, policy Policy) ([]byte, error) {
	if upload.Reader == nil {
		return nil, apperror.Validation("File is required")
	}
	if err := policy.Check(upload.Name, upload.Size); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(upload.Reader, policy.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > policy.MaxBytes {
		return nil, apperror.Validationf("File size exceeds %dMB limit", policy.MaxBytes/megabyte)
	}
	return data, nil
}

// Save validates and stores an upload in dir under a fresh random name
func (s *FileStorage) Save(dir string, upload Upload, policy Policy) (*StoredFile, error) {
	data, err := s.Read(upload, policy)
	if err != nil {
		return nil, err
	}
	return s.Write(dir, upload.Name, data)
}

// Write stores data in dir, keeping only the extension of name
func (s *FileStorage) Write(dir, name string, data []byte) (*StoredFile, error) {
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	stored := path.Join(dir, uuid.NewString()+"."+Extension(name))
	if err := afero.WriteReader(s.fs, stored, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", stored, err)
	}

	return &StoredFile{
		Path:        stored,
		Name:        filepath.Base(name),
		ContentType: mimetype.Detect(data).String(),
		Size:        int64(len(data)),
	}, nil
}

func (s *FileStorage) Open(stored string) (afero.File, error) {
	clean, err := cleanPath(stored)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(clean)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperror.NotFound("File not found")
		}
		return nil, err
	}
	return f, nil
}

// ContentType sniffs the stored file's MIME type from its header bytes
func (s *FileStorage) ContentType(stored string) (string, error) {
	f, err := s.Open(stored)
	if err != nil {
		return "", err
	}
	defer f.Close()
	m, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

// Download is an opened stored file ready to be streamed to a client
type Download struct {
	Name        string
	ContentType string
	File        afero.File
}

// Fetch opens a stored file for download. An empty name falls back to the stored base name.
func (s *FileStorage) Fetch(stored, name string) (*Download, error) {
	contentType, err := s.ContentType(stored)
	if err != nil {
		return nil, err
	}
	f, err := s.Open(stored)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = path.Base(stored)
	}
	return &Download{Name: name, ContentType: contentType, File: f}, nil
}

// Remove deletes a stored file; a missing file is not an error
func (s *FileStorage) Remove(stored string) error {
	if stored == "" {
		return nil
	}
	clean, err := cleanPath(stored)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(clean); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FileStorage) Exists(stored string) bool {
	clean, err := cleanPath(stored)
	if err != nil {
		return false
	}
	ok, _ := afero.Exists(s.fs, clean)
	return ok
}

// Extension returns the lowercased extension of name without the dot
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

func cleanPath(stored string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(stored, "\\", "/"))
	if strings.Contains(stored, "..") {
		return "", apperror.Validation("Invalid file path")
	}
	return strings.TrimPrefix(clean, "/"), nil
}
