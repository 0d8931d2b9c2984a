package profiles

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sidz1235/TaskRabbit/model"
)

type Storage interface {
	GetUser(username string) (model.User, bool)
	SetProfile(username, path string) error
	ProfileDir() string
}

type Profiles struct {
	storage Storage
}

func New(storage Storage) *Profiles {
	return &Profiles{
		storage: storage,
	}
}

// PicturePath is fixed per user: one picture, always a .jpg name, whatever
// bytes were actually uploaded.
func (p *Profiles) PicturePath(username string) string {
	return filepath.Join(p.storage.ProfileDir(), username+"_profile.jpg")
}

// Upload writes the image bytes verbatim, replacing any prior picture, and
// points the in-memory profile field at the file.
func (p *Profiles) Upload(username string, image []byte) (string, error) {
	if _, ok := p.storage.GetUser(username); !ok {
		return "", fmt.Errorf("unknown user %q", username)
	}

	path := p.PicturePath(username)

	if err := os.WriteFile(path, image, 0o644); err != nil {
		return "", fmt.Errorf("write picture: %w", err)
	}

	if err := p.storage.SetProfile(username, path); err != nil {
		return "", fmt.Errorf("setProfile: %w", err)
	}

	return path, nil
}

// Lookup reports the picture path when the file exists on disk. Going by
// the file rather than the profile pointer keeps uploads visible after a
// restart, even though the pointer itself is never persisted.
func (p *Profiles) Lookup(username string) (string, bool) {
	path := p.PicturePath(username)

	if _, err := os.Stat(path); err != nil {
		return "", false
	}

	return path, true
}
