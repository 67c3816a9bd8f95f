// Package checklog manages the append-only log file of every check and its
// compressed archives.
//
// Active logs are {dir}/{id}.log. Rotation writes {dir}/{id}-{unixMillis}.gz.b64
// and truncates the active log. Appends and rotations of the same id are
// serialised; different ids never block each other.
package checklog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"uptime-monitor/pkg/apperror"

	"github.com/spf13/afero"
)

const (
	LogExt     = ".log"
	ArchiveExt = ".gz.b64"
)

type Store struct {
	fs    afero.Fs
	dir   string
	locks *keyedMutex
}

func New(fs afero.Fs, dir string) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	return &Store{fs: fs, dir: dir, locks: newKeyedMutex()}, nil
}

// ArchiveID names the archive produced by rotating id at t.
func ArchiveID(id string, t time.Time) string {
	return fmt.Sprintf("%s-%d", id, t.UnixMilli())
}

// Append writes line plus a newline to the end of id's log, creating it.
func (s *Store) Append(id string, line []byte) error {
	const op string = "checklog.append"

	path, err := s.path(id, LogExt)
	if err != nil {
		return apperror.New(apperror.InvalidInput, op, err)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return apperror.New(apperror.StorageErr, op, err)
	}

	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')

	_, werr := f.Write(buf)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		return apperror.New(apperror.StorageErr, op, err)
	}
	return nil
}

// List returns the ids of active logs, plus archive ids when
// includeArchives is set.
func (s *Store) List(includeArchives bool) ([]string, error) {
	const op string = "checklog.list"

	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, apperror.New(apperror.StorageErr, op, err)
	}

	ids := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		name := info.Name()
		switch {
		case strings.HasSuffix(name, LogExt):
			ids = append(ids, strings.TrimSuffix(name, LogExt))
		case includeArchives && strings.HasSuffix(name, ArchiveExt):
			ids = append(ids, strings.TrimSuffix(name, ArchiveExt))
		}
	}
	return ids, nil
}

// Read returns the current content of id's active log.
func (s *Store) Read(id string) ([]byte, error) {
	const op string = "checklog.read"

	path, err := s.path(id, LogExt)
	if err != nil {
		return nil, apperror.New(apperror.InvalidInput, op, err)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &apperror.Error{Kind: apperror.NotFound, Op: op, Message: "log not found"}
		}
		return nil, apperror.New(apperror.StorageErr, op, err)
	}
	return data, nil
}

// Compress writes the archive archiveID from the current content of id's
// log. An existing archive is never overwritten.
func (s *Store) Compress(id, archiveID string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	return s.compress(id, archiveID)
}

// Truncate empties id's log but keeps the file.
func (s *Store) Truncate(id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	return s.truncate(id)
}

// Rotate compresses id's log into a timestamped archive and truncates it,
// holding the id's lock across both steps so no append lands in between. The
// log is left untouched when compression fails.
func (s *Store) Rotate(id string, at time.Time) (string, error) {
	archiveID := ArchiveID(id, at)

	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.compress(id, archiveID); err != nil {
		return "", err
	}
	if err := s.truncate(id); err != nil {
		return archiveID, err
	}
	return archiveID, nil
}

// Decompress returns the original log content stored in archiveID.
func (s *Store) Decompress(archiveID string) ([]byte, error) {
	const op string = "checklog.decompress"

	path, err := s.path(archiveID, ArchiveExt)
	if err != nil {
		return nil, apperror.New(apperror.InvalidInput, op, err)
	}

	archived, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &apperror.Error{Kind: apperror.NotFound, Op: op, Message: "archive not found"}
		}
		return nil, apperror.New(apperror.StorageErr, op, err)
	}

	raw, err := Decode(archived)
	if err != nil {
		return nil, apperror.New(apperror.StorageErr, op, err)
	}
	return raw, nil
}

func (s *Store) compress(id, archiveID string) error {
	const op string = "checklog.compress"

	src, err := s.path(id, LogExt)
	if err != nil {
		return apperror.New(apperror.InvalidInput, op, err)
	}
	dst, err := s.path(archiveID, ArchiveExt)
	if err != nil {
		return apperror.New(apperror.InvalidInput, op, err)
	}

	raw, err := afero.ReadFile(s.fs, src)
	if err != nil {
		return apperror.New(apperror.StorageErr, op, err)
	}

	archived, err := Encode(raw)
	if err != nil {
		return apperror.New(apperror.StorageErr, op, err)
	}

	f, err := s.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return apperror.New(apperror.StorageErr, op, err)
	}

	_, werr := f.Write(archived)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = s.fs.Remove(dst)
		return apperror.New(apperror.StorageErr, op, err)
	}
	return nil
}

func (s *Store) truncate(id string) error {
	const op string = "checklog.truncate"

	path, err := s.path(id, LogExt)
	if err != nil {
		return apperror.New(apperror.InvalidInput, op, err)
	}

	// O_CREATE is left out on purpose: truncating a missing log is an error.
	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return apperror.New(apperror.StorageErr, op, err)
	}
	if err := f.Close(); err != nil {
		return apperror.New(apperror.StorageErr, op, err)
	}
	return nil
}

func (s *Store) path(id, ext string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("invalid log id %q", id)
	}
	return filepath.Join(s.dir, id+ext), nil
}
