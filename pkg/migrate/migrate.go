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

package migrate

import (
	"bytes"
	"context"
	"sort"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/importshift/pkg/fsys"
	"github.com/walteh/importshift/pkg/log"
	"github.com/walteh/importshift/pkg/rules"
	"github.com/walteh/importshift/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains the dependencies of a Migrator
type Options struct {
	// FS is where files are listed, read and written
	FS fsys.FileSystem
	// Manifest holds the file patterns and rewrite rules
	Manifest *rules.Manifest
	// Logger reports per-file outcomes
	Logger *log.Logger
	// Replacer defaults to text.SimpleTextReplacer
	Replacer text.TextReplacer
}

// 📊 Summary counts the outcomes of a run
type Summary struct {
	Scanned   int
	Updated   int
	Unchanged int
	Failed    int
}

// 🎮 Migrator applies a manifest to a filesystem
type Migrator struct {
	fs       fsys.FileSystem
	manifest *rules.Manifest
	logger   *log.Logger
	replacer text.TextReplacer
}

// 🏭 New creates a migrator with the given options
func New(opts Options) (*Migrator, error) {
	if opts.FS == nil {
		return nil, errors.Errorf("filesystem is required")
	}
	if opts.Manifest == nil {
		return nil, errors.Errorf("manifest is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	if opts.Replacer == nil {
		opts.Replacer = text.NewSimpleTextReplacer()
	}
	return &Migrator{
		fs:       opts.FS,
		manifest: opts.Manifest,
		logger:   opts.Logger,
		replacer: opts.Replacer,
	}, nil
}

// 🔍 Enumerate lists the files to migrate. Matches are concatenated in
// pattern order, each pattern's matches sorted; a file matched twice keeps
// its first position.
func (m *Migrator) Enumerate(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	for _, pattern := range m.manifest.Files {
		matches, err := m.fs.Glob(ctx, pattern)
		if err != nil {
			return nil, errors.Errorf("enumerating files: %w", err)
		}
		sort.Strings(matches)

		zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Int("matches", len(matches)).Msg("expanded pattern")

		for _, match := range matches {
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			files = append(files, match)
		}
	}

	return files, nil
}

// 📄 ProcessFile rewrites one file and reports whether it was updated
func (m *Migrator) ProcessFile(ctx context.Context, path string) (bool, error) {
	content, err := m.fs.ReadFile(ctx, path)
	if err != nil {
		return false, err
	}

	if !utf8.Valid(content) {
		return false, errors.Errorf("decoding file: content is not valid UTF-8")
	}

	result, err := m.replacer.ReplaceText(ctx, bytes.NewReader(content), m.manifest.Rules)
	if err != nil {
		return false, errors.Errorf("replacing imports: %w", err)
	}

	if !result.WasModified {
		m.logger.FileUnchanged(ctx, path)
		return false, nil
	}

	if err := m.fs.WriteFile(ctx, path, result.ModifiedContent); err != nil {
		return false, err
	}

	m.logger.FileUpdated(ctx, path, result.ReplacementCount)
	return true, nil
}

// 🏃 Run migrates every enumerated file. Per-file errors are reported and
// counted; only an enumeration error is returned.
func (m *Migrator) Run(ctx context.Context) (*Summary, error) {
	files, err := m.Enumerate(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, path := range files {
		summary.Scanned++

		updated, err := m.ProcessFile(ctx, path)
		switch {
		case err != nil:
			summary.Failed++
			m.logger.FileFailed(ctx, path, err)
		case updated:
			summary.Updated++
		default:
			summary.Unchanged++
		}
	}

	m.logger.RunFinished(ctx, summary.Scanned, summary.Updated, summary.Unchanged, summary.Failed)
	return summary, nil
}
