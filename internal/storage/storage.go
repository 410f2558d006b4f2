// Package storage keeps uploaded media files on local disk. Files are
// renamed to a uuid so user-supplied names never reach the filesystem, and
// the returned path is relative to the upload root so records stay valid
// when the root moves.
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/classlog/classlog/internal/model"
)

// FileStore saves and removes media files.
type FileStore interface {
	Save(mediaType model.MediaType, originalFilename string, src io.Reader) (relativePath, storedName string, size int64, err error)
	Remove(relativePath string) error
	Root() string
}

type diskStore struct {
	root string
}

// NewDiskStore creates the upload root and its photos/ and videos/
// subdirectories if they do not exist yet.
func NewDiskStore(root string) (FileStore, error) {
	for _, dir := range []string{root, filepath.Join(root, "photos"), filepath.Join(root, "videos")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create upload directory")
		}
	}
	return &diskStore{root: root}, nil
}

func (s *diskStore) Root() string {
	return s.root
}

func (s *diskStore) Save(mediaType model.MediaType, originalFilename string, src io.Reader) (string, string, int64, error) {
	subdir := "photos"
	if mediaType == model.MediaTypeVideo {
		subdir = "videos"
	}

	ext := strings.ToLower(filepath.Ext(originalFilename))
	storedName := uuid.New().String() + ext
	relativePath := filepath.ToSlash(filepath.Join(subdir, storedName))

	dst, err := os.Create(filepath.Join(s.root, subdir, storedName))
	if err != nil {
		return "", "", 0, errors.Wrap(err, errors.CategoryInternal, "failed to create media file")
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(dst.Name())
		return "", "", 0, errors.Wrap(err, errors.CategoryInternal, "failed to write media file")
	}

	return relativePath, storedName, size, nil
}

// Remove deletes a stored file. A path that escapes the upload root is
// rejected; a file already gone is not an error so record deletion can
// proceed.
func (s *diskStore) Remove(relativePath string) error {
	clean := filepath.Clean(filepath.FromSlash(relativePath))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return errors.New("invalid media path", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest).
			WithTextCode("INVALID_PATH")
	}

	err := os.Remove(filepath.Join(s.root, clean))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, errors.CategoryInternal, "failed to remove media file")
	}
	return nil
}
