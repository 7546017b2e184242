package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Local keeps objects as files below a root directory.
type Local struct {
	root string
}

// NewLocal creates root if needed.
func NewLocal(root string) (*Local, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty root directory", ErrInvalidConfig)
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return &Local{root: root}, nil
}

// Put writes data through a temporary file and a rename, so readers never
// see a partial object. contentType is ignored.
func (l *Local) Put(ctx context.Context, key string, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrOperationCanceled, err)
	}
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	dst := filepath.Join(l.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".tmp-*")
	if err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Join(ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

func (l *Local) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrOperationCanceled, err)
	}
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(l.root, filepath.FromSlash(key)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, errors.Join(ErrReadFailed, err)
	}
	return data, nil
}

// Ping checks that the root is a writable directory.
func (l *Local) Ping(context.Context) error {
	f, err := os.CreateTemp(l.root, ".ping-*")
	if err != nil {
		return errors.Join(ErrServiceUnavailable, err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
