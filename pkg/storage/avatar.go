// Package storage keeps uploaded avatar images on local disk, one file per
// user keyed by user id. The stored path lands in users.avatar_path.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"staffly/internal/apperrors"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type AvatarStore struct {
	dir string
	log *zap.Logger
}

func NewAvatarStore(dir string, log *zap.Logger) (*AvatarStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create avatar dir %s: %w", dir, err)
	}
	return &AvatarStore{
		dir: dir,
		log: log.With(zap.String("storage", "avatar")),
	}, nil
}

// Save writes the image under <dir>/<user id><ext>, replacing any previous
// avatar for the user, and returns the stored file name.
func (s *AvatarStore) Save(userID uuid.UUID, ext string, r io.Reader) (string, error) {
	if !allowedExtensions[ext] {
		return "", apperrors.Validationf("unsupported image type %q", ext)
	}

	// Drop an earlier upload with a different extension.
	if err := s.Remove(userID); err != nil {
		return "", err
	}

	name := userID.String() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		s.log.Error("Failed to create avatar file", zap.Error(err), zap.String("path", path))
		return "", fmt.Errorf("create avatar file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		s.log.Error("Failed to write avatar file", zap.Error(err), zap.String("path", path))
		return "", fmt.Errorf("write avatar file: %w", err)
	}

	return name, nil
}

// Remove deletes every stored avatar of the user. Missing files are not
// an error.
func (s *AvatarStore) Remove(userID uuid.UUID) error {
	matches, err := filepath.Glob(filepath.Join(s.dir, userID.String()+".*"))
	if err != nil {
		return fmt.Errorf("glob avatars: %w", err)
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			s.log.Error("Failed to remove avatar", zap.Error(err), zap.String("path", m))
			return fmt.Errorf("remove avatar: %w", err)
		}
	}
	return nil
}
