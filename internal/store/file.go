package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pageza/recipe-nexus/backend/internal/model"
)

const (
	recipesFile = "recipes.json"
	usersFile   = "users.json"
)

// FileStore keeps recipes and users in two JSON array files. Every
// read-modify-write holds the file's mutex, and writes replace the file
// through a temp file and rename.
type FileStore struct {
	dir string

	recipesMu sync.Mutex
	usersMu   sync.Mutex
}

// NewFileStore opens (creating if needed) the store in dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &FileStore{dir: dir}
	for _, name := range []string{recipesFile, usersFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			if err := writeFileAtomic(path, []byte("[]")); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}
	}
	return s, nil
}

func (s *FileStore) List(_ context.Context) ([]model.LocalRecipe, error) {
	s.recipesMu.Lock()
	defer s.recipesMu.Unlock()
	return s.readRecipes()
}

func (s *FileStore) Get(_ context.Context, id string) (*model.LocalRecipe, error) {
	s.recipesMu.Lock()
	defer s.recipesMu.Unlock()

	recipes, err := s.readRecipes()
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		if recipes[i].ID == id {
			return &recipes[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) Create(_ context.Context, recipe *model.LocalRecipe) error {
	s.recipesMu.Lock()
	defer s.recipesMu.Unlock()

	recipes, err := s.readRecipes()
	if err != nil {
		return err
	}
	for _, r := range recipes {
		if r.ID == recipe.ID {
			return ErrDuplicate
		}
	}
	return s.writeJSON(recipesFile, append(recipes, *recipe))
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	s.recipesMu.Lock()
	defer s.recipesMu.Unlock()

	recipes, err := s.readRecipes()
	if err != nil {
		return err
	}
	for i := range recipes {
		if recipes[i].ID == id {
			return s.writeJSON(recipesFile, append(recipes[:i], recipes[i+1:]...))
		}
	}
	return ErrNotFound
}

func (s *FileStore) FindByUsername(_ context.Context, username string) (*model.User, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := s.readUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) CreateUser(_ context.Context, user *model.User) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := s.readUsers()
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Username == user.Username {
			return ErrDuplicate
		}
	}
	return s.writeJSON(usersFile, append(users, *user))
}

func (s *FileStore) ListUsers(_ context.Context) ([]model.User, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	return s.readUsers()
}

// Ping checks that the data directory is still readable.
func (s *FileStore) Ping(context.Context) error {
	_, err := os.Stat(filepath.Join(s.dir, recipesFile))
	return err
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) readRecipes() ([]model.LocalRecipe, error) {
	var recipes []model.LocalRecipe
	if err := s.readJSON(recipesFile, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *FileStore) readUsers() ([]model.User, error) {
	var users []model.User
	if err := s.readJSON(usersFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *FileStore) readJSON(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return writeFileAtomic(filepath.Join(s.dir, name), data)
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
