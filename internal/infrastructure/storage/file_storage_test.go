package storage

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"medisafe/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

func TestPolicyCheck(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		file    string
		size    int64
		wantMsg string
	}{
		{"allowed pdf", PrescriptionPolicy, "rx.pdf", 1024, ""},
		{"uppercase extension", PrescriptionPolicy, "SCAN.BMP", 1024, ""},
		{"disallowed extension", PrescriptionPolicy, "notes.docx", 10, "File type .docx not allowed. Allowed types: pdf, jpg, jpeg, png, gif, bmp"},
		{"too large", PrescriptionPolicy, "rx.pdf", 10*megabyte + 1, "File size exceeds 10MB limit"},
		{"exactly at limit", PrescriptionPolicy, "rx.pdf", 10 * megabyte, ""},
		{"photo too large", PhotoPolicy, "me.png", 6 * megabyte, "File size exceeds 5MB limit"},
		{"lab result rejects gif", LabResultPolicy, "cbc.gif", 10, "File type .gif not allowed. Allowed types: pdf, jpg, jpeg, png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Check(tt.file, tt.size)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.KindValidation))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestSaveOpenRemove(t *testing.T) {
	s := NewMemoryStorage()

	stored, err := s.Save("prescriptions", Upload{Name: "scan.png", Size: int64(len(pngHeader)), Reader: bytes.NewReader(pngHeader)}, PrescriptionPolicy)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.Path, "prescriptions/"))
	assert.True(t, strings.HasSuffix(stored.Path, ".png"))
	assert.Equal(t, "image/png", stored.ContentType)
	assert.Equal(t, "scan.png", stored.Name)

	f, err := s.Open(stored.Path)
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, pngHeader, data)

	contentType, err := s.ContentType(stored.Path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	require.NoError(t, s.Remove(stored.Path))
	assert.False(t, s.Exists(stored.Path))
	assert.NoError(t, s.Remove(stored.Path), "removing twice is harmless")
}

func TestReadRejectsUnderstatedSize(t *testing.T) {
	s := NewMemoryStorage()
	policy := Policy{Extensions: []string{"txt"}, MaxBytes: 4}

	_, err := s.Read(Upload{Name: "a.txt", Size: 1, Reader: strings.NewReader("too long")}, policy)

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestWriteProducesIndependentCopies(t *testing.T) {
	s := NewMemoryStorage()

	first, err := s.Write("password_resets", "id.png", pngHeader)
	require.NoError(t, err)
	second, err := s.Write("password_resets", "id.png", pngHeader)
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
	require.NoError(t, s.Remove(first.Path))
	assert.True(t, s.Exists(second.Path))
}

func TestOpenRejectsTraversal(t *testing.T) {
	s := NewMemoryStorage()

	_, err := s.Open("../etc/passwd")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = s.Open("missing/file.pdf")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestFetchSniffsContentType(t *testing.T) {
	s := NewMemoryStorage()
	stored, err := s.Write("lab_results", "scan.png", pngHeader)
	require.NoError(t, err)

	download, err := s.Fetch(stored.Path, "scan.png")
	require.NoError(t, err)
	defer download.File.Close()

	assert.Equal(t, "scan.png", download.Name)
	assert.Equal(t, "image/png", download.ContentType)
}
