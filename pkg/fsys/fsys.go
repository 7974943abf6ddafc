// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fsys

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// 💾 FileSystem is everything a migration needs from the disk.
// Paths are slash separated and relative to the filesystem root.
type FileSystem interface {
	// Glob returns the regular files matching a doublestar pattern, leaving
	// out hidden files and anything under a hidden directory
	Glob(ctx context.Context, pattern string) ([]string, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
	// WriteFile overwrites the content of an existing file in place
	WriteFile(ctx context.Context, path string, content []byte) error
}

var _ FileSystem = (*AferoFileSystem)(nil)

// AferoFileSystem implements FileSystem on top of an afero.Fs
type AferoFileSystem struct {
	fs afero.Fs
}

// 🏭 New roots base at dir
func New(base afero.Fs, dir string) *AferoFileSystem {
	return &AferoFileSystem{
		fs: afero.NewBasePathFs(base, filepath.Clean(dir)),
	}
}

// 🏭 NewOS roots the operating system filesystem at dir
func NewOS(dir string) (*AferoFileSystem, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Errorf("resolving %s: %w", dir, err)
	}

	info, err := afero.NewOsFs().Stat(abs)
	if err != nil {
		return nil, errors.Errorf("checking root: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("root %s is not a directory", abs)
	}

	return New(afero.NewOsFs(), abs), nil
}

func (a *AferoFileSystem) Glob(ctx context.Context, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(afero.NewIOFS(a.fs), pattern,
		doublestar.WithFilesOnly(),
		doublestar.WithFailOnIOErrors(),
	)
	if err != nil {
		return nil, errors.Errorf("globbing %q: %w", pattern, err)
	}

	visible := matches[:0]
	for _, match := range matches {
		if !isHidden(match) {
			visible = append(visible, match)
		}
	}
	return visible, nil
}

// isHidden reports whether any segment of a slash separated path is a dotfile
func isHidden(path string) bool {
	for _, segment := range strings.Split(path, "/") {
		if strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}

func (a *AferoFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// WriteFile truncates and rewrites path. Symlinks are written through, so
// links, hard links and ownership stay as they were. A file without the owner
// write bit is refused with os.ErrPermission.
func (a *AferoFileSystem) WriteFile(ctx context.Context, path string, content []byte) error {
	info, err := a.fs.Stat(path)
	if err != nil {
		return errors.Errorf("checking file: %w", err)
	}
	if info.Mode().Perm()&0o200 == 0 {
		return errors.Errorf("writing file: %s is read-only: %w", path, os.ErrPermission)
	}

	f, err := a.fs.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return errors.Errorf("opening file: %w", err)
	}

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return errors.Errorf("writing file: %w", err)
	}

	if err := f.Close(); err != nil {
		return errors.Errorf("closing file: %w", err)
	}

	return nil
}
