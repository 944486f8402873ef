package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStorage persists uploaded images on the local filesystem. Paths
// returned by Save are relative to the base directory and are what gets
// stored on the Event document and served under /uploads.
type FileStorage interface {
	Save(originalName string, data io.Reader) (string, error)
	Delete(path string) error
	Exists(path string) bool
}

type fileStorage struct {
	basePath string
}

func NewFileStorage(basePath string) FileStorage {
	return &fileStorage{basePath: basePath}
}

// Save writes the upload under a uuid-based name, keeping the original
// extension so content type can be inferred when serving.
func (s *fileStorage) Save(originalName string, data io.Reader) (string, error) {
	name := uuid.NewString() + filepath.Ext(originalName)
	fullPath := filepath.Join(s.basePath, name)

	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return "", err
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		return "", err
	}
	return name, nil
}

func (s *fileStorage) Delete(path string) error {
	return os.Remove(filepath.Join(s.basePath, path))
}

func (s *fileStorage) Exists(path string) bool {
	_, err := os.Stat(filepath.Join(s.basePath, path))
	return !os.IsNotExist(err)
}
