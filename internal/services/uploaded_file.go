package services

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// UploadedFile is an in-memory or multipart upload payload that has not been
// written to storage yet.
type UploadedFile struct {
	Filename string
	Size     int64

	open     func() (io.ReadCloser, error)
	hashName string
	mimeType string
}

func NewUploadedFile(header *multipart.FileHeader) *UploadedFile {
	return &UploadedFile{
		Filename: header.Filename,
		Size:     header.Size,
		open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}

func NewUploadedFileFromBytes(filename string, data []byte) *UploadedFile {
	return &UploadedFile{
		Filename: filename,
		Size:     int64(len(data)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func (f *UploadedFile) Open() (io.ReadCloser, error) {
	return f.open()
}

// HashName derives the storage name from the payload: the first 40 hex
// characters of its SHA-256 digest followed by the lower-cased extension.
func (f *UploadedFile) HashName() (string, error) {
	if f.hashName != "" {
		return f.hashName, nil
	}

	r, err := f.open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", f.Filename, err)
	}
	defer r.Close()

	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hash upload %s: %w", f.Filename, err)
	}

	f.hashName = hex.EncodeToString(h.Sum(nil))[:40] + strings.ToLower(filepath.Ext(f.Filename))
	return f.hashName, nil
}

// MIMEType sniffs the payload content.
func (f *UploadedFile) MIMEType() (string, error) {
	if f.mimeType != "" {
		return f.mimeType, nil
	}

	r, err := f.open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", f.Filename, err)
	}
	defer r.Close()

	mt, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("detect mime type of %s: %w", f.Filename, err)
	}

	f.mimeType = mt.String()
	return f.mimeType, nil
}
