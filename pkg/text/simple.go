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

package text

import (
	"context"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

var _ TextReplacer = (*SimpleTextReplacer)(nil)

// SimpleTextReplacer implements TextReplacer using literal string replacement
type SimpleTextReplacer struct{}

// NewSimpleTextReplacer creates a new SimpleTextReplacer
func NewSimpleTextReplacer() *SimpleTextReplacer {
	return &SimpleTextReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *SimpleTextReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	currentContent := string(originalContent)
	for _, rule := range rules {
		if rule.FromText == "" {
			continue
		}

		count := strings.Count(currentContent, rule.FromText)
		if count == 0 {
			continue
		}

		result.ReplacementCount += count
		currentContent = strings.ReplaceAll(currentContent, rule.FromText, rule.ToText)
	}

	// a rule mapping text onto itself counts as a match but is not a modification
	result.WasModified = currentContent != string(originalContent)
	if result.WasModified {
		result.ModifiedContent = []byte(currentContent)
	}

	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules.
//
// Rules are matched literally and in order, so a rule list is only accepted
// when no rule can be starved by an earlier one and no replacement can be
// matched again on a later run.
func (r *SimpleTextReplacer) ValidateRules(rules []ReplacementRule) error {
	seen := make(map[string]int, len(rules))
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d: from text is required", i)
		}
		if prev, ok := seen[rule.FromText]; ok {
			return errors.Errorf("rule %d: from text %q duplicates rule %d", i, rule.FromText, prev)
		}
		seen[rule.FromText] = i

		for j := 0; j < i; j++ {
			if strings.Contains(rule.FromText, rules[j].FromText) {
				return errors.Errorf("rule %d: from text %q is shadowed by rule %d (%q)", i, rule.FromText, j, rules[j].FromText)
			}
		}
	}

	for i, rule := range rules {
		for j, other := range rules {
			if strings.Contains(rule.ToText, other.FromText) {
				return errors.Errorf("rule %d: to text %q is matched again by rule %d (%q)", i, rule.ToText, j, other.FromText)
			}
		}
	}

	return nil
}
