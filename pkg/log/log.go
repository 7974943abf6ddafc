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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎯 Logger reports migration progress: one console line per updated or
// failed file. The structured zerolog mirror of those lines is debug level so
// a normal run prints each outcome once.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 📝 FileUpdated reports a file that was rewritten
func (l *Logger) FileUpdated(ctx context.Context, path string, replacements int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s %s\n", color.New(color.FgGreen).Sprint("Updated imports in:"), path)

	l.zlog.Debug().
		Str("file", path).
		Int("replacements", replacements).
		Msg("updated imports")
}

// 📝 FileFailed reports a file that could not be processed
func (l *Logger) FileFailed(ctx context.Context, path string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s %s: %v\n", color.New(color.FgRed).Sprint("Error processing file"), path, err)

	l.zlog.Debug().
		Err(err).
		Str("file", path).
		Msg("processing file")
}

// FileUnchanged has no console line
func (l *Logger) FileUnchanged(ctx context.Context, path string) {
	l.zlog.Debug().Str("file", path).Msg("no imports to update")
}

// 📊 RunFinished logs the totals of a migration run
func (l *Logger) RunFinished(ctx context.Context, scanned, updated, unchanged, failed int) {
	l.zlog.Debug().
		Int("scanned", scanned).
		Int("updated", updated).
		Int("unchanged", unchanged).
		Int("failed", failed).
		Msg("migration finished")
}

// 📝 Error logs a fatal error message
func (l *Logger) Error(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(err.Error()))
	l.zlog.Error().Err(err).Msg("migration failed")
}
