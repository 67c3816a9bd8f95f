// Package filestore keeps one JSON file per record:
// {dir}/{collection}/{key}.json.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"uptime-monitor/pkg/apperror"

	"github.com/spf13/afero"
)

const recordExt = ".json"

type Store struct {
	fs  afero.Fs
	dir string
}

func New(fs afero.Fs, dir string) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure data directory: %w", err)
	}
	return &Store{fs: fs, dir: dir}, nil
}

func (s *Store) Create(_ context.Context, collection, key string, data []byte) error {
	const op string = "store.file.create"

	path, err := s.recordPath(collection, key)
	if err != nil {
		return apperror.New(apperror.InvalidInput, op, err)
	}
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperror.New(apperror.StorageErr, op, err)
	}

	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return &apperror.Error{Kind: apperror.AlreadyExists, Op: op, Message: "record already exists"}
		}
		return apperror.New(apperror.StorageErr, op, err)
	}

	_, werr := f.Write(data)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		return apperror.New(apperror.StorageErr, op, err)
	}
	return nil
}

func (s *Store) Read(_ context.Context, collection, key string) ([]byte, error) {
	const op string = "store.file.read"

	path, err := s.recordPath(collection, key)
	if err != nil {
		return nil, apperror.New(apperror.InvalidInput, op, err)
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &apperror.Error{Kind: apperror.NotFound, Op: op, Message: "record not found"}
		}
		return nil, apperror.New(apperror.StorageErr, op, err)
	}
	return data, nil
}

// Update replaces an existing record. The new content is written to a
// temporary file and renamed over the old one so readers never observe a
// partially written record.
func (s *Store) Update(_ context.Context, collection, key string, data []byte) error {
	const op string = "store.file.update"

	path, err := s.recordPath(collection, key)
	if err != nil {
		return apperror.New(apperror.InvalidInput, op, err)
	}

	if _, err := s.fs.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &apperror.Error{Kind: apperror.NotFound, Op: op, Message: "record not found"}
		}
		return apperror.New(apperror.StorageErr, op, err)
	}

	tmpPath := fmt.Sprintf("%s.%d.tmp", path, time.Now().UnixNano())
	if err := afero.WriteFile(s.fs, tmpPath, data, 0o644); err != nil {
		return apperror.New(apperror.StorageErr, op, err)
	}
	if err := s.fs.Rename(tmpPath, path); err != nil {
		_ = s.fs.Remove(tmpPath)
		return apperror.New(apperror.StorageErr, op, err)
	}
	return nil
}

func (s *Store) Delete(_ context.Context, collection, key string) error {
	const op string = "store.file.delete"

	path, err := s.recordPath(collection, key)
	if err != nil {
		return apperror.New(apperror.InvalidInput, op, err)
	}

	if err := s.fs.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return &apperror.Error{Kind: apperror.NotFound, Op: op, Message: "record not found"}
		}
		return apperror.New(apperror.StorageErr, op, err)
	}
	return nil
}

func (s *Store) List(_ context.Context, collection string) ([]string, error) {
	const op string = "store.file.list"

	if err := validName(collection); err != nil {
		return nil, apperror.New(apperror.InvalidInput, op, err)
	}

	infos, err := afero.ReadDir(s.fs, filepath.Join(s.dir, collection))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, apperror.New(apperror.StorageErr, op, err)
	}

	keys := make([]string, 0, len(infos))
	for _, info := range infos {
		name := info.Name()
		if info.IsDir() || !strings.HasSuffix(name, recordExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, recordExt))
	}
	return keys, nil
}

func (s *Store) recordPath(collection, key string) (string, error) {
	if err := validName(collection); err != nil {
		return "", err
	}
	if err := validName(key); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, collection, key+recordExt), nil
}

// validName keeps keys inside their collection directory.
func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid record name %q", name)
	}
	return nil
}
