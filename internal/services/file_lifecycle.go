package services

import (
	"context"
	"path"

	"catalog-backend/internal/apperrors"

	"github.com/sirupsen/logrus"
)

// FileValue is the submitted value of a file field: either the name of an
// already stored file or a new upload.
type FileValue struct {
	Name   string
	Upload *UploadedFile
}

// FileSet maps file field names to submitted values. Fields absent from the
// set keep their current value.
type FileSet map[string]FileValue

// StagedUpload is an upload extracted from a FileSet, waiting to be stored.
type StagedUpload struct {
	Field string
	Name  string
	File  *UploadedFile
}

// FileOwner is an entity with file-valued fields stored under FilesDir.
type FileOwner interface {
	FileFields() []string
	FileNames() map[string]string
	SetFileName(field, name string)
	FilesDir() string
}

type FileLifecycleManager struct {
	storage Storage
	logger  *logrus.Logger
}

func NewFileLifecycleManager(storage Storage, logger *logrus.Logger) *FileLifecycleManager {
	return &FileLifecycleManager{
		storage: storage,
		logger:  logger,
	}
}

// CaptureChangedFileFields returns field -> previous stored name for every
// declared file field whose previous value is set and differs from the new one.
func (m *FileLifecycleManager) CaptureChangedFileFields(before map[string]string, after FileSet, fileFields []string) map[string]string {
	changed := make(map[string]string)
	for _, field := range fileFields {
		value, ok := after[field]
		if !ok {
			continue
		}
		old := before[field]
		if old == "" || old == value.Name {
			continue
		}
		changed[field] = old
	}
	return changed
}

// ExtractUploads replaces every upload payload in files with its
// content-derived storage name and returns the payloads. Fields holding a
// plain name are left as they are.
func (m *FileLifecycleManager) ExtractUploads(files FileSet, fileFields []string) ([]StagedUpload, error) {
	var uploads []StagedUpload
	for _, field := range fileFields {
		value, ok := files[field]
		if !ok || value.Upload == nil {
			continue
		}

		name, err := value.Upload.HashName()
		if err != nil {
			return nil, err
		}

		uploads = append(uploads, StagedUpload{Field: field, Name: name, File: value.Upload})
		files[field] = FileValue{Name: name}
	}
	return uploads, nil
}

func (m *FileLifecycleManager) Store(ctx context.Context, parentPath string, upload StagedUpload) error {
	key := path.Join(parentPath, upload.Name)

	r, err := upload.File.Open()
	if err != nil {
		return &apperrors.StorageError{Op: "put", Path: key, Err: err}
	}
	defer r.Close()

	contentType, err := upload.File.MIMEType()
	if err != nil {
		contentType = "application/octet-stream"
	}

	if err := m.storage.Put(ctx, key, r, upload.File.Size, contentType); err != nil {
		return &apperrors.StorageError{Op: "put", Path: key, Err: err}
	}
	return nil
}

func (m *FileLifecycleManager) Delete(ctx context.Context, parentPath, storedName string) error {
	key := path.Join(parentPath, storedName)
	if err := m.storage.Remove(ctx, key); err != nil {
		return &apperrors.StorageError{Op: "delete", Path: key, Err: err}
	}
	return nil
}

// DeleteAll removes every named file, logging failures instead of returning
// them. It backs the compensating and post-commit deletions.
func (m *FileLifecycleManager) DeleteAll(ctx context.Context, parentPath string, names []string) {
	for _, name := range names {
		if err := m.Delete(ctx, parentPath, name); err != nil {
			m.logger.WithError(err).WithFields(logrus.Fields{
				"path": parentPath,
				"file": name,
			}).Warn("Failed to delete file from storage")
		}
	}
}

// URL returns the public URL of a stored file, or nil when name is empty.
func (m *FileLifecycleManager) URL(parentPath string, name *string) *string {
	if name == nil || *name == "" {
		return nil
	}
	url := m.storage.URL(path.Join(parentPath, *name))
	return &url
}
