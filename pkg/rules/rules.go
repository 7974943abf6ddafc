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

// Package rules holds the import migration compiled into the binary: which
// files to visit and which import prefixes to rewrite in them.
package rules

import (
	"bytes"
	_ "embed"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/importshift/pkg/text"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

//go:embed imports.yaml
var importsYAML []byte

// 📦 Manifest is a complete migration: file patterns plus ordered rules
type Manifest struct {
	// Files are doublestar patterns, expanded in order
	Files []string `yaml:"files"`

	// Rules are applied in order to every matched file
	Rules []text.ReplacementRule `yaml:"rules"`
}

// 🏭 Default returns the embedded import migration
func Default() (*Manifest, error) {
	m, err := Parse(importsYAML)
	if err != nil {
		return nil, errors.Errorf("loading embedded manifest: %w", err)
	}
	return m, nil
}

// 📝 Parse decodes and validates a manifest
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, errors.Errorf("validating manifest: %w", err)
	}

	return &m, nil
}

// ✅ Validate checks the patterns and the rule order
func (m *Manifest) Validate() error {
	if len(m.Files) == 0 {
		return errors.Errorf("at least one file pattern is required")
	}
	for i, pattern := range m.Files {
		if pattern == "" {
			return errors.Errorf("file pattern %d is empty", i)
		}
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("file pattern %d: %q is not a valid pattern", i, pattern)
		}
	}
	if len(m.Rules) == 0 {
		return errors.Errorf("at least one rule is required")
	}
	return text.NewSimpleTextReplacer().ValidateRules(m.Rules)
}
