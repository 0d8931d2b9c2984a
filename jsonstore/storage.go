package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sidz1235/TaskRabbit/config"
	"github.com/sidz1235/TaskRabbit/model"
	"github.com/sidz1235/TaskRabbit/transform"
)

// Storage keeps the whole user directory in memory and rewrites the store
// file in full after every mutation. The mutex only makes individual calls
// safe under concurrent handlers; read-modify-write sequences across calls
// stay last-writer-wins.
type Storage struct {
	mu         sync.RWMutex
	storeFile  string
	profileDir string
	users      map[string]*model.User
}

func New(cfg *config.Config) (*Storage, error) {
	users, err := loadUsers(cfg.StoreFile)
	if err != nil {
		return nil, fmt.Errorf("loadUsers: %w", err)
	}

	if err := os.MkdirAll(cfg.ProfileDir, 0o755); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}

	return &Storage{
		storeFile:  cfg.StoreFile,
		profileDir: cfg.ProfileDir,
		users:      users,
	}, nil
}

// loadUsers treats a missing store file as an empty directory.
func loadUsers(path string) (map[string]*model.User, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]*model.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	var stored map[string]model.StoredUser
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decode store: %w", err)
	}

	return transform.StoredToUsers(stored), nil
}

func (s *Storage) ProfileDir() string {
	return s.profileDir
}

func (s *Storage) GetUser(username string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return model.User{}, false
	}

	return copyUser(user), true
}

// InsertUser reports false without touching the store when the username is
// already taken.
func (s *Storage) InsertUser(username string, user model.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return false, nil
	}

	inserted := copyUser(&user)
	s.users[username] = &inserted

	if err := s.saveLocked(); err != nil {
		return false, err
	}

	return true, nil
}

func (s *Storage) AppendTask(username string, task model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return fmt.Errorf("unknown user %q", username)
	}

	user.Tasks = append(user.Tasks, task)

	return s.saveLocked()
}

func (s *Storage) ReplaceTasks(username string, tasks []model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return fmt.Errorf("unknown user %q", username)
	}

	user.Tasks = append([]model.Task(nil), tasks...)

	return s.saveLocked()
}

// SetProfile updates the in-memory profile pointer. The written copy still
// carries a null profile, so the pointer does not survive a restart.
func (s *Storage) SetProfile(username, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return fmt.Errorf("unknown user %q", username)
	}

	user.Profile = path

	return s.saveLocked()
}

// saveLocked rewrites the store file through a temp file and rename so a
// crash mid-write cannot leave a truncated store behind.
func (s *Storage) saveLocked() error {
	stored := transform.UsersToStored(s.users)

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	dir := filepath.Dir(s.storeFile)

	tmp, err := os.CreateTemp(dir, filepath.Base(s.storeFile)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("write store: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("close temp store: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.storeFile); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("replace store: %w", err)
	}

	return nil
}

func copyUser(user *model.User) model.User {
	copied := *user
	copied.Tasks = append([]model.Task(nil), user.Tasks...)

	return copied
}
